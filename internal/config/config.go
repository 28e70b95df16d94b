package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Version is injected at build-time with
// -ldflags="-X github.com/j-fro/greprs/internal/config.Version=$(git describe --tags --always --dirty)"
var Version = "dev"

// CaseInsensitiveVar switches matching to case-insensitive when present.
const CaseInsensitiveVar = "CASE_INSENSITIVE"

// Output modes.
const (
	OutputPlain = "plain"
	OutputNull  = "null"
	OutputJSONL = "jsonl"
)

// Config captures one invocation's inputs.
type Config struct {
	Search        string
	Filename      string
	CaseSensitive bool

	// Output and diagnostics
	Output    string
	LogLevel  string
	LogFormat string
	LogFile   string
}

// ErrMissingArgument is wrapped by every *MissingArgumentError.
var ErrMissingArgument = errors.New("missing argument")

// MissingArgumentError names the positional argument that was not supplied.
type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string { return "missing " + e.Name }

func (e *MissingArgumentError) Unwrap() error { return ErrMissingArgument }

// UsageError reports an invalid flag value or settings file.
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UsageError) Unwrap() error { return e.Err }

// Env is an injected view of the process environment.
type Env map[string]string

// Environ builds an Env from KEY=VALUE pairs as returned by os.Environ.
// Entries without '=' are kept with an empty value.
func Environ(kv []string) Env {
	env := make(Env, len(kv))
	for _, pair := range kv {
		name, value, _ := strings.Cut(pair, "=")
		if name == "" {
			continue
		}
		env[name] = value
	}
	return env
}

// Has reports whether name is set, regardless of its value.
func (e Env) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// CaseSensitive is false iff CASE_INSENSITIVE is present in env.
func CaseSensitive(env Env) bool {
	return !env.Has(CaseInsensitiveVar)
}

// Parse resolves a Config from args (program name first) and env.
// Only an explicit -help or -version writes to stdout; flag errors are
// returned and stdout is left for results.
func Parse(args []string, env Env, stdout io.Writer) (*Config, error) {
	name := "greprs"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	usage := func(w io.Writer) {
		fmt.Fprintf(w, "Usage: %s [options] [--] SEARCH FILE\n\n", name)
		fmt.Fprintf(w, "Set %s to any value to ignore case.\n\nOptions:\n", CaseInsensitiveVar)
		fs.SetOutput(w)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
	}

	var (
		settingsPath = fs.String("config", "", "YAML settings file")
		ignoreCase   = fs.Bool("i", false, "ignore case (same as setting "+CaseInsensitiveVar+")")
		output       = fs.String("output", "", "result encoding: plain, null or jsonl")
		logLevel     = fs.String("log-level", "", "diagnostic level: debug, info, warn or error")
		logFormat    = fs.String("log-format", "", "diagnostic format: text or json")
		logFile      = fs.String("log-file", "", "write diagnostics to a rotated file instead of stderr")
		verbose      = fs.Bool("verbose", false, "enable debug logging")
		showVer      = fs.Bool("version", false, "print greprs version and exit")
	)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout)
			return nil, flag.ErrHelp
		}
		return nil, &UsageError{Message: "invalid flags (use -- before a search term starting with '-')", Err: err}
	}

	if *showVer {
		_, _ = io.WriteString(stdout, name+" "+Version+"\n")
		return nil, flag.ErrHelp
	}

	// Positional arguments are validated before anything else is loaded.
	switch fs.NArg() {
	case 0:
		return nil, &MissingArgumentError{Name: "search string"}
	case 1:
		return nil, &MissingArgumentError{Name: "filename"}
	}
	if fs.Arg(1) == "" {
		return nil, &MissingArgumentError{Name: "filename"}
	}

	s := defaultSettings()
	if *settingsPath != "" {
		loaded, err := LoadSettings(*settingsPath)
		if err != nil {
			return nil, err
		}
		s = loaded
	}

	// Explicit flags override the settings file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			s.Output = *output
		case "log-level":
			s.LogLevel = *logLevel
		case "log-format":
			s.LogFormat = *logFormat
		case "log-file":
			s.LogFile = *logFile
		}
	})
	if *verbose {
		s.LogLevel = "debug"
	}

	cfg := &Config{
		Search:        fs.Arg(0),
		Filename:      fs.Arg(1),
		CaseSensitive: CaseSensitive(env) && !*ignoreCase && !s.CaseInsensitive,
		Output:        strings.ToLower(s.Output),
		LogLevel:      strings.ToLower(s.LogLevel),
		LogFormat:     strings.ToLower(s.LogFormat),
		LogFile:       s.LogFile,
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Output {
	case OutputPlain, OutputNull, OutputJSONL:
	default:
		return &UsageError{Message: fmt.Sprintf("invalid output %q: must be plain, null or jsonl", c.Output)}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &UsageError{Message: fmt.Sprintf("invalid log-level %q: must be debug, info, warn or error", c.LogLevel)}
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return &UsageError{Message: fmt.Sprintf("invalid log-format %q: must be text or json", c.LogFormat)}
	}
	return nil
}
