// Package equation models the symbolic equations a student assembles from
// coloured triangle sides and operators, and checks them against fixed sets
// of accepted token sequences.
package equation

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Token is one key of the equation keyboard.
type Token int

const (
	BlueSide Token = iota
	GreenSide
	RedSide
	Plus
	Multiply
	Equal
	Square
	TwoTimes
	OpenParen
	CloseParen

	tokenCount
)

var keywords = [tokenCount]string{
	BlueSide:   "blue",
	GreenSide:  "green",
	RedSide:    "red",
	Plus:       "plus",
	Multiply:   "times",
	Equal:      "equals",
	Square:     "squared",
	TwoTimes:   "two",
	OpenParen:  "open",
	CloseParen: "close",
}

var symbols = [tokenCount]string{
	BlueSide:   "blue",
	GreenSide:  "green",
	RedSide:    "red",
	Plus:       "+",
	Multiply:   "×",
	Equal:      "=",
	Square:     "²",
	TwoTimes:   "2",
	OpenParen:  "(",
	CloseParen: ")",
}

// aliases maps every accepted spelling to its token.
var aliases = map[string]Token{
	"b": BlueSide, "g": GreenSide, "r": RedSide,
	"+": Plus, "*": Multiply, "x": Multiply, "×": Multiply, "multiply": Multiply,
	"=": Equal, "equal": Equal,
	"^2": Square, "²": Square, "square": Square,
	"2": TwoTimes, "2x": TwoTimes,
	"(": OpenParen, ")": CloseParen,
}

func init() {
	for t := Token(0); t < tokenCount; t++ {
		aliases[keywords[t]] = t
	}
}

// Tokens returns every token in keyboard order.
func Tokens() []Token {
	out := make([]Token, tokenCount)
	for i := range out {
		out[i] = Token(i)
	}
	return out
}

// Valid reports whether t is a known token.
func (t Token) Valid() bool { return t >= 0 && t < tokenCount }

// IsTriangleSide reports whether t is one of the three coloured sides.
func (t Token) IsTriangleSide() bool { return t >= BlueSide && t <= RedSide }

// IsOperator reports whether t is +, × or =.
func (t Token) IsOperator() bool { return t >= Plus && t <= Equal }

// IsOther reports whether t is a modifier: square, the factor two or a
// parenthesis.
func (t Token) IsOther() bool { return t >= Square && t < tokenCount }

// String returns the keyword used in configuration and on the command line.
func (t Token) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Token(%d)", int(t))
	}
	return keywords[t]
}

// Symbol returns the glyph shown when the equation is rendered.
func (t Token) Symbol() string {
	if !t.Valid() {
		return "?"
	}
	return symbols[t]
}

// ParseToken accepts a keyword, its symbol or a short alias, case-insensitively.
func ParseToken(s string) (Token, error) {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownToken, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Token) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownToken, int(t))
	}
	return []byte(keywords[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Token) UnmarshalText(b []byte) error {
	parsed, err := ParseToken(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML writes the keyword.
func (t Token) MarshalYAML() (any, error) {
	b, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// UnmarshalYAML reads any spelling ParseToken accepts.
func (t *Token) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: token must be a scalar", node.Line)
	}
	if err := t.UnmarshalText([]byte(node.Value)); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}
