package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs the default logger. Debug enables info and trace output.
func Init(debug, noColor bool) {
	InitWriter(os.Stderr, debug, noColor)
}

// InitWriter is Init with an explicit destination
func InitWriter(w io.Writer, debug, noColor bool) {
	log.SetDefault(log.NewWithOptions(w,
		log.Options{
			ReportCaller:    debug,
			ReportTimestamp: false, // program output is interleaved, timestamps add noise
			Prefix:          "MISRI",
		}))

	log.SetLevel(log.WarnLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}

// Tracer returns a logger for per-instruction traces, writing next to the default logger
func Tracer(w io.Writer, noColor bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Level:  log.DebugLevel,
		Prefix: "TRACE",
	})
	if noColor {
		l.SetColorProfile(termenv.Ascii)
	}
	return l
}
