package lesson

import (
	"fmt"
	"slices"

	"proveit/internal/equation"
)

// Result describes the outcome of answering a prerequisite question.
type Result struct {
	Right bool
	// PrerequisiteDone is set when this answer found the last question.
	PrerequisiteDone bool
	// Next is the first question still to find in the same prerequisite, or
	// -1 when none is left.
	Next int
	// Help is shown after a wrong answer.
	Help string
}

type progress struct {
	found     [][]bool
	solved    map[int]map[string]bool
	stepsDone int
}

func newProgress(l Level) *progress {
	p := &progress{solved: map[int]map[string]bool{}}
	for _, pre := range l.Prerequisites {
		p.found = append(p.found, make([]bool, len(pre.Questions)))
	}
	return p
}

// Session tracks one student's way through the content: the selected level
// and prerequisite, which questions were found and how far the proof got.
// Progress is kept per level for the lifetime of the Session.
type Session struct {
	content  *Content
	level    int
	selected int
	started  bool
	progress []*progress
}

// NewSession starts with no level selected.
func NewSession(c *Content) *Session {
	s := &Session{content: c, level: -1, selected: -1}
	for _, l := range c.Levels {
		s.progress = append(s.progress, newProgress(l))
	}
	return s
}

// Content returns the course the session runs on.
func (s *Session) Content() *Content { return s.content }

// SelectLevel switches to level i. The selected prerequisite and the
// started flag are cleared.
func (s *Session) SelectLevel(i int) error {
	if i < 0 || i >= len(s.content.Levels) {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, i)
	}
	s.level = i
	s.selected = -1
	s.started = false
	return nil
}

// Level returns the selected level.
func (s *Session) Level() (Level, bool) {
	if s.level < 0 {
		return Level{}, false
	}
	return s.content.Levels[s.level], true
}

func (s *Session) current() (Level, *progress, error) {
	if s.level < 0 {
		return Level{}, nil, fmt.Errorf("%w: none selected", ErrUnknownLevel)
	}
	return s.content.Levels[s.level], s.progress[s.level], nil
}

// SelectPrerequisite focuses prerequisite i of the selected level.
func (s *Session) SelectPrerequisite(i int) error {
	l, _, err := s.current()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(l.Prerequisites) {
		return fmt.Errorf("%w: prerequisite %d", ErrOutOfRange, i)
	}
	s.selected = i
	return nil
}

// Selected returns the focused prerequisite, if any.
func (s *Session) Selected() (int, bool) { return s.selected, s.selected >= 0 }

// Answer records choice for question q of prerequisite pre. A right answer
// marks the question found; once every question is found the prerequisite
// is done and the selection moves to the first unfinished prerequisite.
func (s *Session) Answer(pre, q, choice int) (Result, error) {
	l, p, err := s.current()
	if err != nil {
		return Result{}, err
	}
	if pre < 0 || pre >= len(l.Prerequisites) {
		return Result{}, fmt.Errorf("%w: prerequisite %d", ErrOutOfRange, pre)
	}
	prereq := l.Prerequisites[pre]
	if q < 0 || q >= len(prereq.Questions) {
		return Result{}, fmt.Errorf("%w: question %d of %s", ErrOutOfRange, q, prereq.Name)
	}
	question := prereq.Questions[q]
	if choice < 0 || choice >= len(question.Answers) {
		return Result{}, fmt.Errorf("%w: answer %d", ErrOutOfRange, choice)
	}

	if !question.Answers[choice].Right {
		return Result{Next: firstUnfound(p.found[pre]), Help: prereq.Help}, nil
	}
	wasDone := s.Done(pre)
	p.found[pre][q] = true
	res := Result{Right: true, Next: firstUnfound(p.found[pre])}
	if res.Next < 0 {
		res.PrerequisiteDone = !wasDone
		s.selected = s.firstUnfinished()
	}
	return res, nil
}

func firstUnfound(found []bool) int {
	return slices.Index(found, false)
}

func (s *Session) firstUnfinished() int {
	l, _, err := s.current()
	if err != nil {
		return -1
	}
	for i := range l.Prerequisites {
		if !s.Done(i) {
			return i
		}
	}
	return -1
}

// Done reports whether every question of prerequisite i is found.
func (s *Session) Done(i int) bool {
	_, p, err := s.current()
	if err != nil || i < 0 || i >= len(p.found) {
		return false
	}
	return !slices.Contains(p.found[i], false)
}

// Unlocked reports whether every prerequisite of the selected level is done.
func (s *Session) Unlocked() bool {
	if s.level < 0 {
		return false
	}
	return s.firstUnfinished() < 0
}

// Start begins the proof of the selected level.
func (s *Session) Start() error {
	if _, _, err := s.current(); err != nil {
		return err
	}
	if !s.Unlocked() {
		return fmt.Errorf("%w: prerequisites unfinished", ErrLocked)
	}
	s.started = true
	return nil
}

// Started reports whether Start succeeded since the level was selected.
func (s *Session) Started() bool { return s.started }

// StepsDone returns the highest completed step of the selected level.
func (s *Session) StepsDone() int {
	_, p, err := s.current()
	if err != nil {
		return 0
	}
	return p.stepsDone
}

// Accessible reports whether step n may be attempted: every earlier step is
// complete.
func (s *Session) Accessible(n int) bool {
	l, p, err := s.current()
	if err != nil || n < 1 || n > len(l.Steps) {
		return false
	}
	return n <= p.stepsDone+1
}

// CompleteStep marks step n complete. Completing an earlier step again never
// lowers progress. The level must have been started.
func (s *Session) CompleteStep(n int) error {
	l, p, err := s.current()
	if err != nil {
		return err
	}
	if _, err := l.Step(n); err != nil {
		return err
	}
	if !s.started {
		return fmt.Errorf("%w: level not started", ErrLocked)
	}
	p.stepsDone = max(n, p.stepsDone)
	return nil
}

func (s *Session) step(n int) (Step, *progress, error) {
	l, p, err := s.current()
	if err != nil {
		return Step{}, nil, err
	}
	st, err := l.Step(n)
	if err != nil {
		return Step{}, nil, err
	}
	if !s.started {
		return Step{}, nil, fmt.Errorf("%w: level not started", ErrLocked)
	}
	if !s.Accessible(n) {
		return Step{}, nil, fmt.Errorf("%w: step %d", ErrLocked, n)
	}
	return st, p, nil
}

// CheckEquation validates eq against the named challenge of step n. The step
// completes once all of its challenges have been solved.
func (s *Session) CheckEquation(n int, challenge string, eq equation.Equation) (bool, error) {
	st, p, err := s.step(n)
	if err != nil {
		return false, err
	}
	c, ok := st.Challenge(challenge)
	if !ok {
		return false, fmt.Errorf("%w: %q in step %d", ErrUnknownChallenge, challenge, n)
	}
	if !c.Answers().Accepts(eq) {
		return false, nil
	}
	if p.solved[n] == nil {
		p.solved[n] = map[string]bool{}
	}
	p.solved[n][challenge] = true
	if len(p.solved[n]) == len(st.Challenges) {
		p.stepsDone = max(n, p.stepsDone)
	}
	return true, nil
}

// CheckQuestion answers the multiple-choice question of step n.
func (s *Session) CheckQuestion(n, choice int) (bool, error) {
	st, _, err := s.step(n)
	if err != nil {
		return false, err
	}
	if st.Question == nil {
		return false, fmt.Errorf("%w: step %d has no question", ErrUnknownChallenge, n)
	}
	if choice < 0 || choice >= len(st.Question.Answers) {
		return false, fmt.Errorf("%w: answer %d", ErrOutOfRange, choice)
	}
	return st.Question.Answers[choice].Right, nil
}

// CheckArguments checks the picked argument indices of step n. The picks
// must be exactly the correct set; order and repeats do not matter. A match
// completes the step.
func (s *Session) CheckArguments(n int, picks []int) (bool, error) {
	st, p, err := s.step(n)
	if err != nil {
		return false, err
	}
	if st.Arguments == nil {
		return false, fmt.Errorf("%w: step %d has no arguments", ErrUnknownChallenge, n)
	}
	for _, i := range picks {
		if i < 0 || i >= len(st.Arguments.Options) {
			return false, fmt.Errorf("%w: argument %d", ErrOutOfRange, i)
		}
	}
	if !sameSet(picks, st.Arguments.Correct) {
		return false, nil
	}
	p.stepsDone = max(n, p.stepsDone)
	return true, nil
}

func sameSet(a, b []int) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(slices.Compact(a), slices.Compact(b))
}
