// Package lesson holds the course content (a level, its prerequisite
// quizzes and the proof steps) and the progress rules that gate it.
package lesson

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"proveit/internal/equation"
)

//go:embed content.yaml
var builtin []byte

var (
	ErrInvalidContent   = errors.New("invalid lesson content")
	ErrUnknownLevel     = errors.New("unknown level")
	ErrUnknownStep      = errors.New("unknown step")
	ErrUnknownChallenge = errors.New("unknown challenge")
	ErrOutOfRange       = errors.New("index out of range")
	ErrLocked           = errors.New("locked")
)

// Answer is one multiple-choice option.
type Answer struct {
	Text  string `yaml:"text"`
	Right bool   `yaml:"right"`
}

// Question is a multiple-choice question with exactly one right answer.
type Question struct {
	Title   string   `yaml:"title"`
	Answers []Answer `yaml:"answers"`
}

// RightAnswer returns the index of the right answer.
func (q Question) RightAnswer() int {
	for i, a := range q.Answers {
		if a.Right {
			return i
		}
	}
	return -1
}

// Prerequisite is a quiz that must be passed before a level starts.
type Prerequisite struct {
	Name      string     `yaml:"name"`
	Help      string     `yaml:"help"`
	Questions []Question `yaml:"questions"`
}

// Challenge is an equation the student types on a restricted keyboard.
type Challenge struct {
	Name   string `yaml:"name"`
	Prompt string `yaml:"prompt"`
	// Prefix is locked; Start is pre-typed but editable.
	Prefix   equation.Equation   `yaml:"prefix"`
	Start    equation.Equation   `yaml:"start"`
	Keys     []equation.Token    `yaml:"keys"`
	Accepted []equation.Equation `yaml:"accepted"`
}

// Answers returns the allow-list for the challenge.
func (c Challenge) Answers() equation.AnswerSet {
	return equation.AnswerSet{Name: c.Name, Accepted: c.Accepted}
}

// Builder returns a keyboard set up for the challenge.
func (c Challenge) Builder() *equation.Builder {
	b := equation.NewBuilder(c.Prefix, c.Keys)
	b.Preset(c.Start)
	return b
}

// Arguments is a multi-select where exactly the Correct options must be
// picked.
type Arguments struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Correct []int    `yaml:"correct"`
}

// Step is one stage of a proof. Steps without challenges, a question or
// arguments are completed by the host.
type Step struct {
	Number     int         `yaml:"number"`
	Title      string      `yaml:"title"`
	Challenges []Challenge `yaml:"challenges"`
	Question   *Question   `yaml:"question"`
	Arguments  *Arguments  `yaml:"arguments"`
}

// Challenge finds a challenge by name.
func (s Step) Challenge(name string) (Challenge, bool) {
	for _, c := range s.Challenges {
		if c.Name == name {
			return c, true
		}
	}
	return Challenge{}, false
}

// Level is a theorem to prove.
type Level struct {
	Title         string         `yaml:"title"`
	Prerequisites []Prerequisite `yaml:"prerequisites"`
	Steps         []Step         `yaml:"steps"`
}

// Step returns step n, numbered from 1.
func (l Level) Step(n int) (Step, error) {
	if n < 1 || n > len(l.Steps) {
		return Step{}, fmt.Errorf("%w: %d", ErrUnknownStep, n)
	}
	return l.Steps[n-1], nil
}

// Content is the whole course.
type Content struct {
	Levels []Level `yaml:"levels"`
}

// Load parses the built-in course.
func Load() (*Content, error) {
	return Parse(builtin)
}

// Parse decodes and validates YAML course content.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse lesson YAML: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidContent, fmt.Sprintf(format, args...))
	}
	if len(c.Levels) == 0 {
		return bad("no levels")
	}
	for _, l := range c.Levels {
		if l.Title == "" {
			return bad("level without a title")
		}
		names := map[string]bool{}
		for _, p := range l.Prerequisites {
			if p.Name == "" || names[p.Name] {
				return bad("%s: prerequisite name %q is empty or repeated", l.Title, p.Name)
			}
			names[p.Name] = true
			if len(p.Questions) == 0 {
				return bad("%s: prerequisite %q has no questions", l.Title, p.Name)
			}
			for _, q := range p.Questions {
				if err := validateQuestion(q); err != nil {
					return bad("%s/%s: %v", l.Title, p.Name, err)
				}
			}
		}
		for i, s := range l.Steps {
			if s.Number != i+1 {
				return bad("%s: step %d is numbered %d", l.Title, i+1, s.Number)
			}
			if err := validateStep(s); err != nil {
				return bad("%s step %d: %v", l.Title, s.Number, err)
			}
		}
	}
	return nil
}

func validateQuestion(q Question) error {
	right := 0
	for _, a := range q.Answers {
		if a.Right {
			right++
		}
	}
	if right != 1 {
		return fmt.Errorf("question %q has %d right answers, want 1", q.Title, right)
	}
	return nil
}

func validateStep(s Step) error {
	if s.Question != nil {
		if err := validateQuestion(*s.Question); err != nil {
			return err
		}
	}
	if a := s.Arguments; a != nil {
		if len(a.Correct) == 0 {
			return fmt.Errorf("arguments have no correct option")
		}
		for _, i := range a.Correct {
			if i < 0 || i >= len(a.Options) {
				return fmt.Errorf("correct argument %d out of range", i)
			}
		}
	}
	seen := map[string]bool{}
	for _, c := range s.Challenges {
		if c.Name == "" || seen[c.Name] {
			return fmt.Errorf("challenge name %q is empty or repeated", c.Name)
		}
		seen[c.Name] = true
		if len(c.Accepted) == 0 {
			return fmt.Errorf("challenge %q accepts nothing", c.Name)
		}
		kb := equation.NewBuilder(nil, c.Keys)
		for _, eq := range c.Accepted {
			if len(eq) < len(c.Prefix) || !slices.Equal(eq[:len(c.Prefix)], c.Prefix) {
				return fmt.Errorf("challenge %q: %s does not start with the locked prefix", c.Name, eq)
			}
			for _, t := range eq[len(c.Prefix):] {
				if !kb.Enabled(t) {
					return fmt.Errorf("challenge %q: %s needs the %s key", c.Name, eq, t)
				}
			}
		}
	}
	return nil
}
