// Package profile describes an ordered set of matchers as data, so a lexer
// configuration can be stored in a JSON file and checked before use.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	semver "github.com/Masterminds/semver/v3"

	"github.com/orizon-lang/smac/internal/lexer"
)

// Matcher kinds understood in a profile.
const (
	KindWhitespace = "whitespace"
	KindInt        = "int"
	KindString     = "string"
	KindIdentifier = "identifier"
	KindConstant   = "constant"
)

// TokenSymbol is the token type the built-in profiles use for punctuation.
const TokenSymbol lexer.TokenType = "SYMBOL"

// MatcherSpec describes one matcher. TokenType and Constants are only
// meaningful for the constant kind.
type MatcherSpec struct {
	Kind      string   `json:"kind"`
	TokenType string   `json:"token_type,omitempty"`
	Constants []string `json:"constants,omitempty"`
}

// Profile is a named, ordered matcher configuration.
type Profile struct {
	Name string `json:"name"`
	// Requires is a semver constraint on the tool version, e.g. ">= 0.1.0".
	Requires string        `json:"requires,omitempty"`
	Matchers []MatcherSpec `json:"matchers"`
}

// Default returns the profile used by smac when none is given: whitespace,
// integers, identifiers and parentheses.
func Default() *Profile {
	return &Profile{
		Name: "smac",
		Matchers: []MatcherSpec{
			{Kind: KindWhitespace},
			{Kind: KindInt},
			{Kind: KindIdentifier},
			{Kind: KindConstant, TokenType: string(TokenSymbol), Constants: []string{"(", ")"}},
		},
	}
}

// Lisp returns a richer built-in profile with string literals, quoting
// punctuation and arithmetic and comparison operators. Symbols come before
// the string matcher so that ' is a quote; strings are double-quoted only.
func Lisp() *Profile {
	return &Profile{
		Name: "lisp",
		Matchers: []MatcherSpec{
			{Kind: KindWhitespace},
			{Kind: KindConstant, TokenType: string(TokenSymbol), Constants: []string{
				"(", ")", "[", "]", "'", "`", ",@", ",",
				"<=", ">=", "<", ">", "=", "+", "-", "*", "/",
			}},
			{Kind: KindString},
			{Kind: KindInt},
			{Kind: KindIdentifier},
		},
	}
}

var builtins = map[string]func() *Profile{
	"smac": Default,
	"lisp": Lisp,
}

// Builtin returns the built-in profile with the given name.
func Builtin(name string) (*Profile, bool) {
	f, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// BuiltinNames lists the built-in profile names.
func BuiltinNames() []string {
	return []string{"lisp", "smac"}
}

// Load reads a profile from a JSON file. A name that is not an existing
// file but matches a built-in profile selects that profile.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if p, ok := Builtin(path); ok {
				return p, nil
			}
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a JSON profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the profile for structural errors.
func (p *Profile) Validate() error {
	if len(p.Matchers) == 0 {
		return fmt.Errorf("profile %q: no matchers", p.Name)
	}
	if p.Requires != "" {
		if _, err := semver.NewConstraint(p.Requires); err != nil {
			return fmt.Errorf("profile %q: invalid version constraint %q: %w", p.Name, p.Requires, err)
		}
	}
	for i, m := range p.Matchers {
		switch m.Kind {
		case KindWhitespace, KindInt, KindString, KindIdentifier:
			if m.TokenType != "" || len(m.Constants) > 0 {
				return fmt.Errorf("profile %q: matcher %d (%s) takes no token_type or constants", p.Name, i, m.Kind)
			}
		case KindConstant:
			if m.TokenType == "" {
				return fmt.Errorf("profile %q: matcher %d: constant matcher needs a token_type", p.Name, i)
			}
			if len(m.Constants) == 0 {
				return fmt.Errorf("profile %q: matcher %d: constant matcher needs constants", p.Name, i)
			}
			for _, c := range m.Constants {
				if c == "" {
					return fmt.Errorf("profile %q: matcher %d: empty constant", p.Name, i)
				}
			}
		default:
			return fmt.Errorf("profile %q: matcher %d: unknown kind %q", p.Name, i, m.Kind)
		}
	}
	return nil
}

// CheckVersion reports whether the tool version satisfies Requires.
func (p *Profile) CheckVersion(version string) error {
	if p.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(p.Requires)
	if err != nil {
		return fmt.Errorf("profile %q: invalid version constraint %q: %w", p.Name, p.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", version, err)
	}
	if ok, errs := c.Validate(v); !ok {
		return fmt.Errorf("profile %q requires %s: %w", p.Name, p.Requires, errors.Join(errs...))
	}
	return nil
}

// Lint returns warnings for constants that can never match, either because
// an earlier constant in the same matcher is a prefix of them or because an
// earlier built-in matcher always claims their first character. The order
// is kept as written; callers decide whether to reorder.
func (p *Profile) Lint() []string {
	var warnings []string
	var claimed []string
	for i, m := range p.Matchers {
		if m.Kind != KindConstant {
			claimed = append(claimed, m.Kind)
			continue
		}
		for j, c := range m.Constants {
			if kind, ok := claimedBy(claimed, c); ok {
				warnings = append(warnings, fmt.Sprintf(
					"matcher %d: constant %q is shadowed by the earlier %s matcher", i, c, kind))
				continue
			}
			for _, earlier := range m.Constants[:j] {
				if strings.HasPrefix(c, earlier) {
					warnings = append(warnings, fmt.Sprintf(
						"matcher %d: constant %q is shadowed by earlier constant %q", i, c, earlier))
					break
				}
			}
		}
	}
	return warnings
}

// claimedBy reports the first of the given built-in matcher kinds that
// always consumes input starting with c.
func claimedBy(kinds []string, c string) (string, bool) {
	first, _ := utf8.DecodeRuneInString(c)
	for _, kind := range kinds {
		var ok bool
		switch kind {
		case KindWhitespace:
			ok = unicode.IsSpace(first)
		case KindInt:
			// A bare "0x" or "0b" prefix is declined by the int matcher.
			ok = '0' <= first && first <= '9' && !strings.HasPrefix(c, "0x") && !strings.HasPrefix(c, "0b")
		case KindString:
			ok = first == '"' || first == '\''
		case KindIdentifier:
			ok = lexer.IsIdentifierStart(first)
		}
		if ok {
			return kind, true
		}
	}
	return "", false
}

// Build creates the matchers in profile order.
func (p *Profile) Build() ([]lexer.Matcher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	matchers := make([]lexer.Matcher, 0, len(p.Matchers))
	for _, m := range p.Matchers {
		switch m.Kind {
		case KindWhitespace:
			matchers = append(matchers, lexer.WhitespaceMatcher{})
		case KindInt:
			matchers = append(matchers, lexer.IntLiteralMatcher{})
		case KindString:
			matchers = append(matchers, lexer.StringLiteralMatcher{})
		case KindIdentifier:
			matchers = append(matchers, lexer.IdentifierMatcher{})
		case KindConstant:
			matchers = append(matchers, lexer.NewConstantMatcher(lexer.TokenType(m.TokenType), m.Constants...))
		}
	}
	return matchers, nil
}

// NewLexer builds the matchers and returns a lexer over t.
func (p *Profile) NewLexer(t *lexer.Tokenizer) (*lexer.Lexer, error) {
	matchers, err := p.Build()
	if err != nil {
		return nil, err
	}
	return lexer.New(t, matchers...), nil
}

// Marshal encodes the profile as indented JSON.
func (p *Profile) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return data, nil
}
