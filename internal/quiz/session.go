// Package quiz implements the drill session state machine.
//
// A Session moves Guessing -> Feedback -> Guessing until the last round,
// after which the next advance lands in Finished. Restart is valid from any
// phase. Every transition into or out of Feedback bumps the session
// generation; timers scheduled for auto-advance carry the generation they
// were created for and are ignored once it is stale.
package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/tuinote/internal/pitch"
)

// Phase is the state of a session.
type Phase int

// Session phases.
const (
	Guessing Phase = iota
	Feedback
	Finished
)

func (p Phase) String() string {
	switch p {
	case Guessing:
		return "guessing"
	case Feedback:
		return "feedback"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// FeedbackKind is the outcome shown while in Feedback.
type FeedbackKind int

// Feedback kinds.
const (
	FeedbackNone FeedbackKind = iota
	FeedbackCorrect
	FeedbackWrong
)

func (k FeedbackKind) String() string {
	switch k {
	case FeedbackCorrect:
		return "correct"
	case FeedbackWrong:
		return "wrong"
	default:
		return "none"
	}
}

// Default session settings.
const (
	DefaultRounds       = 10
	DefaultCorrectDelay = 500 * time.Millisecond
	DefaultWrongDelay   = 3 * time.Second
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed in the current phase.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrInvalidRounds is returned for a non-positive round count.
	ErrInvalidRounds = errors.New("rounds must be > 0")
	// ErrEmptyProfile is returned for a missing profile or one with no pitches.
	ErrEmptyProfile = errors.New("profile has no pitches")
	// ErrNilSource is returned when no pitch source is supplied.
	ErrNilSource = errors.New("pitch source is nil")
)

// Source supplies the pitch for each round.
type Source interface {
	Next(p pitch.Profile) pitch.Pitch
}

// Config controls round count and feedback timing.
type Config struct {
	Rounds int
	// Manual disables auto-advance; the caller advances explicitly.
	Manual       bool
	CorrectDelay time.Duration
	WrongDelay   time.Duration
	// Now is used to time answers. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the timed ten-round configuration.
func DefaultConfig() Config {
	return Config{
		Rounds:       DefaultRounds,
		CorrectDelay: DefaultCorrectDelay,
		WrongDelay:   DefaultWrongDelay,
	}
}

// Attempt records one submitted answer.
type Attempt struct {
	Round   int
	Pitch   pitch.Pitch
	Answer  string
	Correct bool
	Elapsed time.Duration
}

// Result describes the outcome of a submit.
type Result struct {
	// Ignored is set for blank submissions, which change nothing.
	Ignored  bool
	Kind     FeedbackKind
	Expected string
	// Generation identifies the feedback episode for timers.
	Generation uint64
	// Delay is how long to wait before advancing; zero when the session is manual.
	Delay time.Duration
}

// State is a read-only snapshot of a session.
type State struct {
	Round      int
	Rounds     int
	Score      int
	Phase      Phase
	Feedback   FeedbackKind
	Expected   string
	Current    pitch.Pitch
	Input      string
	Generation uint64
}

// Session is a single drill run over a profile.
type Session struct {
	profile pitch.Profile
	source  Source
	cfg     Config

	round      int
	score      int
	current    pitch.Pitch
	input      []rune
	phase      Phase
	feedback   FeedbackKind
	expected   string
	generation uint64

	shownAt  time.Time
	attempts []Attempt
}

// New creates a session in Guessing with a freshly drawn pitch.
func New(profile pitch.Profile, source Source, cfg Config) (*Session, error) {
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRounds, cfg.Rounds)
	}
	if profile == nil || len(profile.Domain()) == 0 {
		return nil, ErrEmptyProfile
	}
	if source == nil {
		return nil, ErrNilSource
	}
	if cfg.CorrectDelay < 0 || cfg.WrongDelay < 0 {
		return nil, fmt.Errorf("feedback delays must be >= 0")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Session{profile: profile, source: source, cfg: cfg}
	s.reset()
	return s, nil
}

// Type appends a character to the answer buffer.
func (s *Session) Type(r rune) error {
	if s.phase != Guessing {
		return fmt.Errorf("%w: type in %s", ErrInvalidTransition, s.phase)
	}
	if unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return nil
	}
	if len(s.input) >= s.profile.MaxInput() {
		return nil
	}
	s.input = append(s.input, unicode.ToUpper(r))
	return nil
}

// Backspace removes the last character of the answer buffer.
func (s *Session) Backspace() error {
	if s.phase != Guessing {
		return fmt.Errorf("%w: backspace in %s", ErrInvalidTransition, s.phase)
	}
	if len(s.input) > 0 {
		s.input = s.input[:len(s.input)-1]
	}
	return nil
}

// Submit checks the buffered answer.
func (s *Session) Submit() (Result, error) {
	return s.SubmitAnswer(string(s.input))
}

// SubmitAnswer checks raw against the current pitch's label. Blank input is
// ignored and leaves the buffer as it was.
func (s *Session) SubmitAnswer(raw string) (Result, error) {
	if s.phase != Guessing {
		return Result{}, fmt.Errorf("%w: submit in %s", ErrInvalidTransition, s.phase)
	}
	ans := strings.ToUpper(strings.TrimSpace(raw))
	if ans == "" {
		return Result{Ignored: true, Generation: s.generation}, nil
	}

	expected := strings.ToUpper(s.current.Label)
	correct := ans == expected
	s.attempts = append(s.attempts, Attempt{
		Round:   s.round,
		Pitch:   s.current,
		Answer:  ans,
		Correct: correct,
		Elapsed: s.cfg.Now().Sub(s.shownAt),
	})

	res := Result{Kind: FeedbackWrong, Expected: s.current.Label, Delay: s.cfg.WrongDelay}
	if correct {
		s.score++
		res.Kind = FeedbackCorrect
		res.Delay = s.cfg.CorrectDelay
	}
	if s.cfg.Manual {
		res.Delay = 0
	}

	s.input = nil
	s.feedback = res.Kind
	s.expected = s.current.Label
	s.phase = Feedback
	s.generation++
	res.Generation = s.generation
	return res, nil
}

// Advance leaves Feedback: to the next round, or to Finished after the last one.
func (s *Session) Advance() error {
	if s.phase != Feedback {
		return fmt.Errorf("%w: advance in %s", ErrInvalidTransition, s.phase)
	}
	s.generation++
	s.feedback = FeedbackNone
	s.expected = ""
	s.input = nil
	if s.round >= s.cfg.Rounds {
		s.phase = Finished
		return nil
	}
	s.round++
	s.nextPitch()
	s.phase = Guessing
	return nil
}

// AdvanceIfCurrent advances only if the session is still in the feedback
// episode identified by gen. It reports whether it advanced.
func (s *Session) AdvanceIfCurrent(gen uint64) bool {
	if s.phase != Feedback || gen != s.generation {
		return false
	}
	return s.Advance() == nil
}

// Restart begins a new run from round one. Valid in any phase.
func (s *Session) Restart() {
	s.generation++
	s.reset()
}

func (s *Session) reset() {
	s.round = 1
	s.score = 0
	s.input = nil
	s.feedback = FeedbackNone
	s.expected = ""
	s.attempts = nil
	s.phase = Guessing
	s.nextPitch()
}

func (s *Session) nextPitch() {
	s.current = s.source.Next(s.profile)
	s.shownAt = s.cfg.Now()
}

// Profile returns the profile the session draws from.
func (s *Session) Profile() pitch.Profile { return s.profile }

// Round returns the current round, starting at 1.
func (s *Session) Round() int { return s.round }

// Rounds returns the configured number of rounds.
func (s *Session) Rounds() int { return s.cfg.Rounds }

// Score returns the number of correct answers.
func (s *Session) Score() int { return s.score }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Feedback returns the feedback kind; FeedbackNone outside Feedback.
func (s *Session) Feedback() FeedbackKind { return s.feedback }

// Expected returns the expected label while in Feedback.
func (s *Session) Expected() string { return s.expected }

// Current returns the pitch being asked.
func (s *Session) Current() pitch.Pitch { return s.current }

// Input returns the buffered answer.
func (s *Session) Input() string { return string(s.input) }

// Generation returns the current feedback generation.
func (s *Session) Generation() uint64 { return s.generation }

// Manual reports whether auto-advance is disabled.
func (s *Session) Manual() bool { return s.cfg.Manual }

// Attempts returns the answers submitted since the last restart.
func (s *Session) Attempts() []Attempt {
	return append([]Attempt(nil), s.attempts...)
}

// Snapshot returns the session state as a value.
func (s *Session) Snapshot() State {
	return State{
		Round:      s.round,
		Rounds:     s.cfg.Rounds,
		Score:      s.score,
		Phase:      s.phase,
		Feedback:   s.feedback,
		Expected:   s.expected,
		Current:    s.current,
		Input:      string(s.input),
		Generation: s.generation,
	}
}
