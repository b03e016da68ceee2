package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"proveit/internal/equation"
	"proveit/internal/lesson"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <step> <challenge> <tokens...>",
		Short: "Type an equation on a challenge keyboard and check it",
		Long: `check types the given tokens on the keyboard of a proof challenge and
reports whether the result is an accepted answer. The locked prefix of
the challenge may be included or left out.

  proveit check 1 theorem red squared equals blue squared plus green squared
  proveit check 4 big-square "(blue + green) × (blue + green)"`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step %q: %w", args[0], err)
			}
			eq, err := equation.ParseEquation(strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			content, err := lesson.Load()
			if err != nil {
				return err
			}
			ok, typed, err := checkEquation(content, step, args[1], eq)
			if err != nil {
				return err
			}
			if !ok {
				return &exitError{code: 1, msg: fmt.Sprintf("rejected: %s", typed)}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "accepted: %s\n", typed)
			return nil
		},
	}
}

// checkEquation types eq on the keyboard of the challenge and validates it
// in a session where the prerequisites are passed and every earlier step is
// already complete.
func checkEquation(content *lesson.Content, step int, challenge string, eq equation.Equation) (bool, equation.Equation, error) {
	s := lesson.NewSession(content)
	if err := s.SelectLevel(0); err != nil {
		return false, nil, err
	}
	level, _ := s.Level()
	st, err := level.Step(step)
	if err != nil {
		return false, nil, err
	}
	ch, ok := st.Challenge(challenge)
	if !ok {
		return false, nil, fmt.Errorf("%w: %q in step %d", lesson.ErrUnknownChallenge, challenge, step)
	}
	if err := passPrerequisites(s, level); err != nil {
		return false, nil, err
	}
	if step > 1 {
		if err := s.CompleteStep(step - 1); err != nil {
			return false, nil, err
		}
	}

	b := ch.Builder()
	b.Clear()
	if len(eq) >= len(ch.Prefix) && eq[:len(ch.Prefix)].Equal(ch.Prefix) {
		eq = eq[len(ch.Prefix):]
	}
	for _, tok := range eq {
		if err := b.Append(tok); err != nil {
			return false, nil, err
		}
	}
	ok, err = s.CheckEquation(step, challenge, b.Equation())
	return ok, b.Equation(), err
}

// passPrerequisites answers every prerequisite question right and starts
// the level.
func passPrerequisites(s *lesson.Session, level lesson.Level) error {
	for i, pre := range level.Prerequisites {
		for j, q := range pre.Questions {
			if _, err := s.Answer(i, j, q.RightAnswer()); err != nil {
				return err
			}
		}
	}
	return s.Start()
}
