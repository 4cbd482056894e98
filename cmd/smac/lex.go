package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/smac/internal/cli"
	"github.com/orizon-lang/smac/internal/lexer"
	"github.com/orizon-lang/smac/internal/profile"
)

// result is the outcome of lexing one input.
type result struct {
	name   string
	source string
	tokens []lexer.Token
	err    error
}

// jsonToken is the JSON lines representation of a token.
type jsonToken struct {
	File   string `json:"file,omitempty"`
	Type   string `json:"type"`
	Lexeme string `json:"lexeme"`
	Pos    int    `json:"pos"`
	Start  int    `json:"start"`
}

func runLex(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lex", flag.ContinueOnError)
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

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	// stdin can only be consumed once, so it is read up front and shared
	// by every "-" argument.
	var stdinSource string
	if slices.Contains(files, "-") {
		data, err := io.ReadAll(stdin)
		if err != nil {
			opts.logger.Error("failed to read stdin: %v", err)
			return 1
		}
		stdinSource = string(data)
	}

	results := make([]result, len(files))
	var g errgroup.Group
	g.SetLimit(opts.cfg.Jobs)
	for i, name := range files {
		g.Go(func() error {
			source := stdinSource
			if name != "-" {
				var err error
				if source, err = readFile(name); err != nil {
					return err
				}
			}
			opts.logger.Debug("lexing %s (%d bytes)", name, len(source))
			results[i] = lexSource(p, name, source)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		opts.logger.Error("%v", err)
		return 1
	}

	status := 0
	color := cli.IsTerminal(stderr)
	for _, r := range results {
		if err := printTokens(stdout, opts, r, len(files) > 1); err != nil {
			opts.logger.Error("writing output: %v", err)
			return 1
		}
		if r.err != nil {
			fmt.Fprint(stderr, cli.FormatDiagnostic(r.err, r.source, color))
			status = 1
			continue
		}
		opts.logger.Info("%s: %d tokens", r.name, len(r.tokens))
	}
	return status
}

func readFile(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// lexSource lexes one input with a fresh lexer built from p.
func lexSource(p *profile.Profile, name, source string) result {
	filename := name
	if name == "-" {
		filename = "<stdin>"
	}
	r := result{name: filename, source: source}

	l, err := p.NewLexer(lexer.NewTokenizerWithFilename(source, filename))
	if err != nil {
		r.err = err
		return r
	}
	r.tokens, r.err = l.Collect()
	return r
}

func printTokens(w io.Writer, opts *options, r result, withFile bool) error {
	enc := json.NewEncoder(w)
	for _, tok := range r.tokens {
		if opts.cfg.SkipWhitespace && tok.Type == lexer.TokenWhitespace {
			continue
		}

		var err error
		switch {
		case opts.cfg.JSON:
			jt := jsonToken{Type: tok.Type.String(), Lexeme: tok.Lexeme, Pos: tok.Pos.Offset, Start: tok.Start.Offset}
			if withFile {
				jt.File = r.name
			}
			err = enc.Encode(jt)
		case withFile && opts.startPos:
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", r.name, tok.Span(), tok)
		case withFile:
			_, err = fmt.Fprintf(w, "%s\t%s\n", r.name, tok)
		case opts.startPos:
			_, err = fmt.Fprintf(w, "%s\t%s\n", tok.Span(), tok)
		default:
			_, err = fmt.Fprintln(w, tok)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
