package main

import (
	"fmt"
	"os"

	"github.com/tsawler/go-metal/checkpoints"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: modelcheck <model.onnx>")
		fmt.Println("\nThis tool checks whether an ONNX model's operations are")
		fmt.Println("supported by the go-metal importer before you point the")
		fmt.Println("tracker at it.")
		fmt.Println("\nExamples:")
		fmt.Println("  go run ./cmd/modelcheck models/scrfd_10g.onnx")
		fmt.Println("  go run ./cmd/modelcheck models/2d106det.onnx")
		os.Exit(1)
	}

	modelPath := os.Args[1]
	fmt.Printf("Checking ONNX model: %s\n", modelPath)

	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		fmt.Printf("Error: File not found: %s\n", modelPath)
		os.Exit(1)
	}

	importer := checkpoints.NewONNXImporter()
	checkpoint, err := importer.ImportFromONNX(modelPath)
	if err != nil {
		fmt.Printf("\nFAILED to import ONNX model:\n%v\n", err)
		fmt.Println("\nThis likely means the model uses unsupported operations.")
		fmt.Println("go-metal only supports: Conv, MatMul, Add, Relu, LeakyRelu,")
		fmt.Println("Sigmoid, Tanh, BatchNorm, Dropout, Softmax, Flatten")
		os.Exit(1)
	}

	fmt.Println("\nModel imported successfully.")
	fmt.Printf("  Layers: %d\n", len(checkpoint.ModelSpec.Layers))
	fmt.Printf("  Weights: %d tensors\n", len(checkpoint.Weights))

	fmt.Println("\nLayers:")
	for i, layer := range checkpoint.ModelSpec.Layers {
		fmt.Printf("  %d: %s (%s)\n", i+1, layer.Name, layer.Type)
	}
}
