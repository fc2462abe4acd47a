// Package main provides the RegBank command-line interface. RegBank is
// a cycle-accurate memory-mapped register-file controller model.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/regbank/bank"
	"github.com/sarchlab/regbank/script"
)

var (
	configPath = flag.String("config", "", "Path to bank configuration JSON file")
	scriptPath = flag.String("script", "", "Path to transaction script JSON file")
	dumpState  = flag.Bool("dump", false, "Dump the register array after the replay")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: regbank -script <script.json> [options]\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := bank.DefaultConfig()
	if *configPath != "" {
		loaded, err := bank.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	b, err := bank.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building bank: %v\n", err)
		os.Exit(1)
	}

	s, err := script.Load(*scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Bank: %d bytes, %d-byte bus, %d chunks\n",
			cfg.Size, cfg.DataWidth, cfg.NumChunks())
		fmt.Printf("Script: %d steps\n", len(s.Steps))
	}

	result, err := script.NewPlayer(b).Run(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Replay failed: %v\n", err)
		os.Exit(1)
	}

	for _, ev := range result.Events {
		if ev.Channel == "R" {
			fmt.Printf("cycle %4d  R %-6s %s\n",
				ev.Cycle, ev.Status, hex.EncodeToString(ev.Data))
			continue
		}
		fmt.Printf("cycle %4d  B %-6s\n", ev.Cycle, ev.Status)
	}

	if *dumpState {
		fmt.Printf("registers: %s\n", hex.EncodeToString(b.Bytes()))
	}

	stats := b.Stats()
	fmt.Printf("\nCycles:          %d\n", stats.Cycles)
	fmt.Printf("Writes accepted: %d\n", stats.WritesAccepted)
	fmt.Printf("Reads accepted:  %d\n", stats.ReadsAccepted)
	fmt.Printf("Write stalls:    %d\n", stats.WriteStalls)
	fmt.Printf("Slave errors:    %d\n", stats.SlaveErrors)
	fmt.Printf("Bytes loaded:    %d\n", stats.BytesLoaded)
	fmt.Printf("Simulated time:  %.3e s\n", float64(b.SimulatedTime()))
}
