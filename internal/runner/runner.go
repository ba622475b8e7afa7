package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jjppp/misri/internal/config"
	"github.com/jjppp/misri/internal/logger"
	"github.com/jjppp/misri/pkg/color"
	"github.com/jjppp/misri/pkg/interpreter"
	"github.com/jjppp/misri/pkg/ir"
	"github.com/jjppp/misri/pkg/lexer"
	"github.com/jjppp/misri/pkg/parser"
	"github.com/muesli/termenv"
)

type Runner struct {
	Help       bool   // Show help message
	Verbose    bool   // Enable verbose output
	NoColor    bool   // Disable colored output
	Trace      bool   // Log every executed instruction
	DumpIR     bool   // Print the resolved program before running it
	MaxSteps   int    // Instruction budget, 0 = unlimited
	MaxDepth   int    // Call depth limit, 0 = unlimited
	ConfigFile string // Path to a YAML config file
	SourceFile string // Path to the IR file
	InputFile  string // File read by READ instead of stdin

	Stdin  io.Reader // defaults to os.Stdin
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
}

// Apply fills every option still at its zero value from cfg
func (opts *Runner) Apply(cfg *config.Config) {
	if opts.MaxSteps == 0 {
		opts.MaxSteps = cfg.MaxSteps
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = cfg.MaxDepth
	}
	if opts.InputFile == "" {
		opts.InputFile = cfg.Input
	}
	opts.Trace = opts.Trace || cfg.Trace
	opts.DumpIR = opts.DumpIR || cfg.DumpIR
	opts.NoColor = opts.NoColor || cfg.NoColor
}

// Run loads, resolves and executes the source file
func (opts *Runner) Run() error {
	opts.defaults()

	if opts.ConfigFile != "" {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			return err
		}
		opts.Apply(cfg)
		log.Info("Loaded config", "file", cfg.Path)
	}

	if opts.NoColor {
		color.EnableColor(false)
		log.SetColorProfile(termenv.Ascii)
	}

	log.Info("Processing file", "file", opts.SourceFile)

	input, err := os.ReadFile(opts.SourceFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.SourceFile, err)
	}

	prog, err := opts.Load(string(input))
	if err != nil {
		return err
	}
	log.Info("Resolved program", "functions", len(prog.Funcs), "entry", prog.Func(prog.Entry).Name)

	if opts.DumpIR {
		opts.dump(prog)
	}

	in := opts.Stdin
	if opts.InputFile != "" {
		f, err := os.Open(opts.InputFile)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	options := []interpreter.Option{
		interpreter.WithReader(in),
		interpreter.WithWriter(opts.Stdout),
		interpreter.WithMaxSteps(opts.MaxSteps),
		interpreter.WithMaxDepth(opts.MaxDepth),
	}
	if opts.Trace {
		options = append(options, interpreter.WithLogger(logger.Tracer(opts.Stderr, opts.NoColor)))
	}

	intr := interpreter.New(prog, options...)
	if err := intr.Run(); err != nil {
		return fmt.Errorf("execution failed after %d steps: %w", intr.Steps(), err)
	}
	log.Info("Program finished", "steps", intr.Steps(), "exit", intr.ExitValue())

	return nil
}

// Load parses and resolves IR source text. Syntax errors are printed to Stderr.
func (opts *Runner) Load(src string) (*ir.Program, error) {
	opts.defaults()

	p := parser.NewParser(lexer.NewLexer(src))
	funcs := p.Parse()

	syntaxErrors := p.Errors()
	if len(syntaxErrors) > 0 {
		fmt.Fprintln(opts.Stderr, color.BrightRedText("=== Syntax Errors ==="))
		fmt.Fprintln(opts.Stderr, strings.Join(syntaxErrors, "\n"))
		return nil, fmt.Errorf("parsing failed with %d errors", len(syntaxErrors))
	}

	prog, err := ir.Resolve(funcs)
	if err != nil {
		return nil, fmt.Errorf("resolution failed: %w", err)
	}

	return prog, nil
}

// dump prints the resolved program with instruction indices and register slots
func (opts *Runner) dump(prog *ir.Program) {
	fmt.Fprintln(opts.Stderr, color.GreenText("=== Resolved Program ==="))
	for _, f := range prog.Funcs {
		header := fmt.Sprintf("FUNCTION %s : ", f.Name)
		meta := fmt.Sprintf("; id=%d slots=%d", f.ID, f.NReg)
		if f.ID == prog.Entry {
			meta += " entry"
		}
		fmt.Fprintln(opts.Stderr, color.YellowText(header)+color.GrayText(meta))

		for pc, in := range f.Body {
			line := "  " + in.String()
			switch in.Op {
			case ir.OpGoto, ir.OpCond:
				line += color.GrayText(fmt.Sprintf("  ; -> %d", in.TargetID))
			case ir.OpCall:
				line += color.GrayText(fmt.Sprintf("  ; -> fn %d", in.TargetID))
			}
			fmt.Fprintf(opts.Stderr, "%s %s\n", color.CyanText(fmt.Sprintf("%4d", pc)), line)
		}
	}
	fmt.Fprintln(opts.Stderr)
}

func (opts *Runner) defaults() {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
}
