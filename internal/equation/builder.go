package equation

import "fmt"

// Builder holds the equation being typed on the keyboard. The first Base
// tokens are a locked prefix given by the exercise; editing never removes
// them.
type Builder struct {
	available []Token
	base      int
	tokens    Equation
}

// NewBuilder starts an equation with a locked prefix and the keys enabled
// for this exercise.
func NewBuilder(prefix Equation, available []Token) *Builder {
	return &Builder{
		available: append([]Token(nil), available...),
		base:      len(prefix),
		tokens:    append(Equation(nil), prefix...),
	}
}

// Available returns the enabled keys.
func (b *Builder) Available() []Token { return append([]Token(nil), b.available...) }

// Base returns the length of the locked prefix.
func (b *Builder) Base() int { return b.base }

// Equation returns a copy of the tokens typed so far, prefix included.
func (b *Builder) Equation() Equation { return append(Equation(nil), b.tokens...) }

// Len returns the number of tokens, prefix included.
func (b *Builder) Len() int { return len(b.tokens) }

// Enabled reports whether t can be typed. The closing parenthesis shares its
// key with the opening one.
func (b *Builder) Enabled(t Token) bool {
	for _, a := range b.available {
		if a == t || (t == CloseParen && a == OpenParen) {
			return true
		}
	}
	return false
}

// Append types t.
func (b *Builder) Append(t Token) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownToken, int(t))
	}
	if !b.Enabled(t) {
		return fmt.Errorf("%w: %s", ErrUnavailable, t)
	}
	b.tokens = append(b.tokens, t)
	return nil
}

// Backspace removes the last typed token and reports whether one was removed.
func (b *Builder) Backspace() bool {
	if len(b.tokens) <= b.base {
		return false
	}
	b.tokens = b.tokens[:len(b.tokens)-1]
	return true
}

// Preset replaces everything after the locked prefix with eq, bypassing the
// keyboard. Exercises use it for editable starting text.
func (b *Builder) Preset(eq Equation) {
	b.tokens = append(b.tokens[:b.base], eq...)
}

// Clear removes everything typed after the locked prefix.
func (b *Builder) Clear() { b.tokens = b.tokens[:b.base] }

// Validate checks the whole equation, prefix included, against answers.
func (b *Builder) Validate(answers AnswerSet) bool { return answers.Accepts(b.tokens) }
