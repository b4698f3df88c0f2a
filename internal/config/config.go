package config

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"
)

// StdStream selects stdin or stdout in place of a file path.
const StdStream = "-"

// Default values applied when flags are not given.
const (
	DefaultInput     = StdStream
	DefaultOutput    = StdStream
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Options is the full set of run options.
type Options struct {
	// Input is the path of the Alert stream, or "-" for stdin.
	Input string

	// Output is the path the PrometheusRule stream is written to, or "-" for
	// stdout. A file is only created once the whole batch converted.
	Output string

	// MetricsFile is an optional node_exporter textfile-collector path.
	MetricsFile string

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string

	// LogFormat is one of: text | json.
	LogFormat string

	PrintVersion bool
}

// New returns Options pre-populated with default values.
func New() *Options {
	return &Options{
		Input:     DefaultInput,
		Output:    DefaultOutput,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// AddFlags binds every option to fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Input, "input", "f", o.Input, `path of the Alert YAML stream, "-" reads stdin`)
	fs.StringVarP(&o.Output, "output", "o", o.Output, `path to write the PrometheusRule YAML stream to, "-" writes stdout`)
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "write run metrics in Prometheus text format to this path (textfile collector)")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&o.LogFormat, "log-format", o.LogFormat, "log format on stderr: text or json")
	fs.BoolVar(&o.PrintVersion, "version", o.PrintVersion, "print the version and exit")
}

// Validate checks enums and path combinations.
func (o *Options) Validate() error {
	if o.Input == "" {
		return fmt.Errorf("config: input is required")
	}
	if o.Output == "" {
		return fmt.Errorf("config: output is required")
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	switch o.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", o.LogFormat)
	}
	if o.MetricsFile == StdStream {
		return fmt.Errorf("config: metrics file must be a path")
	}
	if o.MetricsFile != "" && (o.MetricsFile == o.Output || o.MetricsFile == o.Input) {
		return fmt.Errorf("config: metrics file %q clashes with input or output", o.MetricsFile)
	}
	return nil
}

// Level parses LogLevel.
func (o *Options) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return lvl, fmt.Errorf("config: unknown log level %q", o.LogLevel)
	}
	return lvl, nil
}
