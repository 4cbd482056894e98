// Package main provides the smac command, which lexes input with a
// configurable set of matchers and prints the resulting tokens.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/orizon-lang/smac/internal/cli"
	"github.com/orizon-lang/smac/internal/profile"
)

const toolName = "smac"

var commands = []cli.CommandInfo{
	{
		Name:        "lex",
		Usage:       "smac lex [-profile name|file] [-json] [-skip-whitespace] [-start] [-jobs n] [file...]",
		Description: "Lex files (or stdin) and print one token per line",
		Examples:    []string{"smac lex program.lisp", "echo '(1 2)' | smac lex -json"},
	},
	{
		Name:        "watch",
		Usage:       "smac watch [-profile name|file] [-skip-whitespace] <file>",
		Description: "Lex a file again every time it changes",
		Examples:    []string{"smac watch -profile lisp program.lisp"},
	},
	{
		Name:        "profile",
		Usage:       "smac profile [-profile name|file]",
		Description: "Validate a matcher profile and print it as JSON",
		Examples:    []string{"smac profile -profile ./calc.json"},
	},
	{
		Name:        "version",
		Usage:       "smac version [-json]",
		Description: "Show version information",
	},
	{
		Name:        "config",
		Usage:       "smac config init [-config file] [-profile name|file] [-force]",
		Description: "Write a config file with the default settings",
		Examples:    []string{"smac config init", "smac config init -profile lisp -force"},
	},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		cli.PrintUsage(stderr, toolName, commands)
		return 1
	}

	sub := args[0]
	args = args[1:]

	switch sub {
	case "help", "-h", "--help":
		if len(args) > 0 {
			for _, c := range commands {
				if c.Name == args[0] {
					cli.PrintCommandUsage(stdout, toolName, c)
					return 0
				}
			}
		}
		cli.PrintUsage(stdout, toolName, commands)
		return 0
	case "version", "-v", "--version":
		fs := flag.NewFlagSet("version", flag.ContinueOnError)
		fs.SetOutput(stderr)
		jsonOutput := fs.Bool("json", false, "print version information as JSON")
		if err := fs.Parse(args); err != nil {
			return 2
		}
		cli.PrintVersion(stdout, toolName, *jsonOutput)
		return 0
	case "lex":
		return runLex(args, stdin, stdout, stderr)
	case "watch":
		return runWatch(args, stdout, stderr)
	case "profile":
		return runProfile(args, stdout, stderr)
	case "config":
		return runConfig(args, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", sub)
		cli.PrintUsage(stderr, toolName, commands)
		return 2
	}
}

// options are the settings shared by all lexing subcommands.
type options struct {
	cfg        *cli.Config
	configPath string
	logger     *cli.Logger
	startPos   bool
}

// bindFlags registers the shared flags on fs. The returned function must be
// called after fs.Parse; it loads the config file and lets flags that were
// set explicitly override it.
func bindFlags(fs *flag.FlagSet, stderr io.Writer) (*options, func() error) {
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", cli.DefaultConfigFile, "config file")
	profileName := fs.String("profile", "smac", "built-in profile name or profile file")
	skipWS := fs.Bool("skip-whitespace", false, "do not print whitespace tokens")
	jsonOut := fs.Bool("json", false, "print tokens as JSON lines")
	jobs := fs.Int("jobs", 0, "number of files lexed in parallel")
	verbose := fs.Bool("verbose", false, "verbose logging")
	debug := fs.Bool("debug", false, "debug logging")
	fs.BoolVar(&opts.startPos, "start", false, "print the start position of each token")

	return opts, func() error {
		cfg, err := cli.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "profile":
				cfg.Profile = *profileName
			case "skip-whitespace":
				cfg.SkipWhitespace = *skipWS
			case "json":
				cfg.JSON = *jsonOut
			case "jobs":
				cfg.Jobs = max(1, *jobs)
			case "verbose":
				cfg.Verbose = *verbose
			case "debug":
				cfg.Debug = *debug
			}
		})
		opts.cfg = cfg
		opts.logger = cli.NewLoggerTo(stderr, cfg.Verbose, cfg.Debug)
		return nil
	}
}

// loadProfile resolves the configured profile and checks it against this
// tool's version.
func (o *options) loadProfile() (*profile.Profile, error) {
	p, err := profile.Load(o.cfg.Profile)
	if err != nil {
		return nil, err
	}
	if err := p.CheckVersion(cli.Version); err != nil {
		return nil, err
	}
	for _, w := range p.Lint() {
		o.logger.Warn("profile %s: %s", p.Name, w)
	}
	o.logger.Debug("using profile %s with %d matchers", p.Name, len(p.Matchers))
	return p, nil
}

func runProfile(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts, finish := bindFlags(fs, stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := finish(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	p, err := opts.loadProfile()
	if err != nil {
		opts.logger.Error("%v", err)
		return 1
	}
	data, err := p.Marshal()
	if err != nil {
		opts.logger.Error("%v", err)
		return 1
	}
	fmt.Fprintln(stdout, string(data))
	return 0
}
