package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"proveit/internal/equation"
	"proveit/internal/lesson"
)

func newLessonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Print the course: prerequisites, questions and proof steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, _ := cmd.Flags().GetBool("answers")
			content, err := lesson.Load()
			if err != nil {
				return err
			}
			printLesson(cmd.OutOrStdout(), content, answers)
			return nil
		},
	}
	cmd.Flags().Bool("answers", false, "Mark the right answers and list accepted equations")
	return cmd
}

func printLesson(w io.Writer, c *lesson.Content, answers bool) {
	for _, l := range c.Levels {
		fmt.Fprintf(w, "# %s\n", l.Title)
		for _, p := range l.Prerequisites {
			fmt.Fprintf(w, "\n## Prerequisite: %s\n", p.Name)
			for _, q := range p.Questions {
				printQuestion(w, q, answers)
			}
		}
		for _, st := range l.Steps {
			fmt.Fprintf(w, "\n## Step %d: %s\n", st.Number, st.Title)
			if st.Question != nil {
				printQuestion(w, *st.Question, answers)
			}
			if a := st.Arguments; a != nil {
				fmt.Fprintf(w, "%s\n", a.Prompt)
				for i, opt := range a.Options {
					fmt.Fprintf(w, "  %s %d. %s\n", mark(answers && slices.Contains(a.Correct, i)), i, opt)
				}
			}
			for _, ch := range st.Challenges {
				fmt.Fprintf(w, "- %s: %s\n", ch.Name, ch.Prompt)
				if len(ch.Prefix) > 0 {
					fmt.Fprintf(w, "    prefix: %s\n", ch.Prefix)
				}
				fmt.Fprintf(w, "    keys:   %s\n", keys(ch.Keys))
				if answers {
					for _, eq := range ch.Accepted {
						fmt.Fprintf(w, "    ok:     %s\n", eq)
					}
				}
			}
		}
	}
}

func printQuestion(w io.Writer, q lesson.Question, answers bool) {
	fmt.Fprintf(w, "%s\n", q.Title)
	right := q.RightAnswer()
	for i, a := range q.Answers {
		fmt.Fprintf(w, "  %s %d. %s\n", mark(answers && i == right), i, a.Text)
	}
}

func mark(right bool) string {
	if right {
		return "*"
	}
	return " "
}

func keys(ts []equation.Token) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Symbol()
	}
	return strings.Join(names, " ")
}
