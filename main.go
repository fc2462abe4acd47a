// Package main provides the entry point for RegBank.
// RegBank is a cycle-accurate model of a memory-mapped register-file
// controller with independent read/write bus channels, per-byte
// read-only protection, and a direct-load side channel.
//
// For the full CLI, use: go run ./cmd/regbank
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("RegBank - Memory-Mapped Register-File Controller Model")
	fmt.Println("")
	fmt.Println("Usage: regbank -script <script.json> [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to bank configuration JSON file")
	fmt.Println("  -script    Path to transaction script JSON file")
	fmt.Println("  -dump      Dump the register array after the replay")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/regbank' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/regbank' instead.")
	}
}
