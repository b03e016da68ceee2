package equation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownToken is returned when a spelling matches no token.
	ErrUnknownToken = errors.New("unknown token")
	// ErrUnavailable is returned when a token is not on the current keyboard.
	ErrUnavailable = errors.New("token not available")
)

// Equation is an ordered token sequence.
type Equation []Token

// ParseEquation reads whitespace separated tokens. Glyphs may be glued to a
// side, so "(red+blue)²" and "red ^2 = blue ^2 + green ^2" both parse.
func ParseEquation(s string) (Equation, error) {
	var eq Equation
	for _, field := range strings.Fields(s) {
		toks, err := splitField(field)
		if err != nil {
			return nil, err
		}
		eq = append(eq, toks...)
	}
	return eq, nil
}

// splitField breaks a field into punctuation glyphs and words.
func splitField(field string) (Equation, error) {
	var out Equation
	rest := field
	for rest != "" {
		if tok, n, ok := leadingGlyph(rest); ok {
			out = append(out, tok)
			rest = rest[n:]
			continue
		}
		end := len(rest)
		for i := 1; i < len(rest); i++ {
			if _, _, ok := leadingGlyph(rest[i:]); ok {
				end = i
				break
			}
		}
		tok, err := ParseToken(rest[:end])
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		rest = rest[end:]
	}
	return out, nil
}

var glyphs = []struct {
	text string
	tok  Token
}{
	{"^2", Square},
	{"²", Square},
	{"×", Multiply},
	{"+", Plus},
	{"*", Multiply},
	{"=", Equal},
	{"(", OpenParen},
	{")", CloseParen},
}

func leadingGlyph(s string) (Token, int, bool) {
	for _, g := range glyphs {
		if strings.HasPrefix(s, g.text) {
			return g.tok, len(g.text), true
		}
	}
	return 0, 0, false
}

// MustParse is ParseEquation for literals known to be valid.
func MustParse(s string) Equation {
	eq, err := ParseEquation(s)
	if err != nil {
		panic(err)
	}
	return eq
}

// Equal reports whether e and o hold the same tokens in the same order.
func (e Equation) Equal(o Equation) bool { return slices.Equal(e, o) }

// String renders the equation with its glyphs, e.g. "red² = blue² + green²".
func (e Equation) String() string {
	var b strings.Builder
	for i, t := range e {
		if i > 0 && !glued(e[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.Symbol())
	}
	return b.String()
}

func glued(prev, next Token) bool {
	return next == Square || next == CloseParen || prev == OpenParen
}

// Keywords renders the equation as space separated keywords, the inverse of
// ParseEquation.
func (e Equation) Keywords() string {
	words := make([]string, len(e))
	for i, t := range e {
		words[i] = t.String()
	}
	return strings.Join(words, " ")
}

// MarshalYAML writes the keyword form as a single string.
func (e Equation) MarshalYAML() (any, error) {
	for _, t := range e {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownToken, int(t))
		}
	}
	return e.Keywords(), nil
}

// UnmarshalYAML accepts either a string for ParseEquation or a sequence of
// token spellings.
func (e *Equation) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		eq, err := ParseEquation(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*e = eq
		return nil
	case yaml.SequenceNode:
		var toks []Token
		if err := node.Decode(&toks); err != nil {
			return err
		}
		*e = toks
		return nil
	}
	return fmt.Errorf("line %d: equation must be a string or a list of tokens", node.Line)
}

// AnswerSet is the allow-list for one challenge. Only the listed sequences
// are accepted; algebraically equivalent reorderings that are not listed are
// rejected.
type AnswerSet struct {
	Name     string     `yaml:"name"`
	Accepted []Equation `yaml:"accepted"`
}

// Accepts reports whether eq exactly matches one accepted sequence.
func (a AnswerSet) Accepts(eq Equation) bool {
	for _, ok := range a.Accepted {
		if ok.Equal(eq) {
			return true
		}
	}
	return false
}
