package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jjppp/misri/internal/logger"
	"github.com/jjppp/misri/internal/runner"
)

// Main entry point for the misri IR interpreter.
func main() {
	options := runner.Runner{}
	var file string

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.Trace, "t", false, "Trace every executed instruction")
	flag.BoolVar(&options.DumpIR, "d", false, "Dump the resolved program before running")
	flag.StringVar(&file, "f", "", "IR file (alternative to the positional argument)")
	flag.StringVar(&options.InputFile, "i", "", "Read program input from a file instead of stdin")
	flag.StringVar(&options.ConfigFile, "c", "", "YAML config file")
	flag.IntVar(&options.MaxSteps, "s", 0, "Maximum instructions to execute (0 = unlimited)")
	flag.IntVar(&options.MaxDepth, "depth", 0, "Maximum call depth (0 = unlimited)")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	switch {
	case file != "":
		options.SourceFile = file
	case len(args) > 0:
		options.SourceFile = args[0]
	default:
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	if err := options.Run(); err != nil {
		log.Fatal("Run failed", "error", err)
	}
}
