// Package tui provides the Bubble Tea note-reading drill.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuinote/internal/generator"
	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/pitch"
	"github.com/verte-zerg/tuinote/internal/quiz"
	"github.com/verte-zerg/tuinote/internal/results"
	"github.com/verte-zerg/tuinote/internal/staff"
	statsPkg "github.com/verte-zerg/tuinote/internal/stats"
	"github.com/verte-zerg/tuinote/internal/store"
)

// advanceMsg fires when the feedback delay of one episode elapses.
type advanceMsg struct {
	gen uint64
}

// Model implements the Bubble Tea drill UI.
type Model struct {
	config            model.Config
	store             *store.Store
	gen               *generator.Generator
	session           *quiz.Session
	scale             staff.Scale
	weakSet           map[pitch.Pitch]struct{}
	weakNoticePrinted bool

	keys keyMap
	help help.Model

	width  int
	height int

	top    int
	bottom int

	startedAt time.Time
	drilled   []pitch.Pitch
	results   *results.Model

	lastScore  int
	lastRounds int
	lastAcc    float64
	hasLast    bool
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	inputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cursorStyle    = pendingStyle.Underline(true)
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	staffLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	clefStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a drill over profile. Pitches come from gen; finished
// drills are logged to st.
func NewModel(cfg model.Config, st *store.Store, gen *generator.Generator, profile pitch.Profile, scale staff.Scale) (*Model, error) {
	session, err := quiz.New(profile, gen, quiz.Config{
		Rounds:       cfg.Rounds,
		Manual:       cfg.Manual,
		CorrectDelay: cfg.CorrectDelay,
		WrongDelay:   cfg.WrongDelay,
	})
	if err != nil {
		return nil, err
	}
	m := &Model{
		config:    cfg,
		store:     st,
		gen:       gen,
		session:   session,
		scale:     scale,
		keys:      newKeyMap(cfg.Manual),
		help:      help.New(),
		startedAt: time.Now(),
	}
	m.top, m.bottom = staffExtent(profile, scale)
	return m, nil
}

// Session exposes the running drill.
func (m *Model) Session() *quiz.Session {
	return m.session
}

// Drilled returns every pitch answered during the program run, in order.
func (m *Model) Drilled() []pitch.Pitch {
	out := append([]pitch.Pitch(nil), m.drilled...)
	if m.session.Phase() != quiz.Finished {
		for _, a := range m.session.Attempts() {
			out = append(out, a.Pitch)
		}
	}
	return out
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.results != nil {
			m.forwardResults(msg)
		}
		return m, nil
	case advanceMsg:
		if m.session.AdvanceIfCurrent(msg.gen) {
			m.afterAdvance()
		}
		return m, nil
	case results.RestartMsg:
		m.restart()
		return m, nil
	case tea.KeyMsg:
		if m.results != nil {
			return m, m.forwardResults(msg)
		}
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) forwardResults(msg tea.Msg) tea.Cmd {
	next, cmd := m.results.Update(msg)
	if r, ok := next.(*results.Model); ok {
		m.results = r
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return nil
	}

	switch m.session.Phase() {
	case quiz.Guessing:
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Erase):
			if err := m.session.Backspace(); err != nil {
				logErrf("backspace: %v\n", err)
			}
		case msg.Type == tea.KeyRunes:
			for _, r := range msg.Runes {
				if err := m.session.Type(r); err != nil {
					logErrf("type: %v\n", err)
				}
			}
		}
	case quiz.Feedback:
		if m.session.Manual() && key.Matches(msg, m.keys.Next) {
			if err := m.session.Advance(); err != nil {
				logErrf("advance: %v\n", err)
				return nil
			}
			m.afterAdvance()
		}
	}
	return nil
}

func (m *Model) submit() tea.Cmd {
	res, err := m.session.Submit()
	if err != nil {
		logErrf("submit: %v\n", err)
		return nil
	}
	if res.Ignored || m.session.Manual() {
		return nil
	}
	gen := res.Generation
	return tea.Tick(res.Delay, func(time.Time) tea.Msg {
		return advanceMsg{gen: gen}
	})
}

func (m *Model) afterAdvance() {
	if m.session.Phase() == quiz.Finished {
		m.finishDrill()
	}
}

func (m *Model) restart() {
	// Finished drills already moved their attempts in finishDrill.
	if m.session.Phase() != quiz.Finished {
		for _, a := range m.session.Attempts() {
			m.drilled = append(m.drilled, a.Pitch)
		}
	}
	m.results = nil
	m.session.Restart()
	m.startedAt = time.Now()
}

func (m *Model) finishDrill() {
	attempts := m.session.Attempts()
	endedAt := time.Now()
	drill := model.DrillStats{
		StartedAt: m.startedAt,
		EndedAt:   endedAt,
		Mode:      m.session.Profile().Name(),
		Rounds:    m.session.Rounds(),
		Score:     m.session.Score(),
	}
	rows := make([]model.AttemptStats, 0, len(attempts))
	for _, a := range attempts {
		rows = append(rows, model.AttemptStats{
			Round:     a.Round,
			Letter:    a.Pitch.Letter.String(),
			Octave:    a.Pitch.Octave,
			Clef:      a.Pitch.Clef.String(),
			Label:     a.Pitch.Label,
			Answer:    a.Answer,
			Correct:   a.Correct,
			LatencyMs: a.Elapsed.Milliseconds(),
		})
		m.drilled = append(m.drilled, a.Pitch)
	}

	m.lastScore = drill.Score
	m.lastRounds = drill.Rounds
	m.lastAcc, _ = statsPkg.DrillMetrics(drill.Score, len(rows), 0)
	m.hasLast = true

	ctx := context.Background()
	if _, err := m.store.InsertDrill(ctx, drill, rows); err != nil {
		logErrf("failed to save drill: %v\n", err)
	}
	if m.config.FocusWeak {
		m.refreshWeakSet()
	}

	report, err := statsPkg.BuildReport(ctx, m.store, drill.Mode)
	if err != nil {
		logErrf("failed to load results: %v\n", err)
	}
	m.results = results.New(report, m.width, m.height)
}

func (m *Model) refreshWeakSet() {
	ctx := context.Background()
	aggs, err := m.store.GetWeakPitches(ctx, 1, m.session.Profile().Name())
	if err != nil {
		logErrf("failed to load weak pitches: %v\n", err)
		return
	}
	weak := statsPkg.SelectWeakPitches(aggs, m.config.WeakTop)
	if len(weak) == 0 && !m.weakNoticePrinted {
		logErrln("no missed pitches yet; using the normal generator")
		m.weakNoticePrinted = true
	}
	m.weakSet = weak
	m.gen.SetWeak(weak, m.config.WeakFactor)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.results != nil {
		return m.results.View()
	}
	content := m.renderDrill()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderDrill() string {
	current := m.session.Current()
	cfg, err := staff.ForProfile(m.session.Profile(), current.Clef, m.scale)
	if err != nil {
		return incorrectStyle.Render(err.Error())
	}
	style := noteStyle
	switch m.session.Feedback() {
	case quiz.FeedbackCorrect:
		style = correctStyle
	case quiz.FeedbackWrong:
		style = incorrectStyle
	}
	grid := drawStaff(current, cfg, m.top, m.bottom)
	lines := []string{
		pendingStyle.Render(fmt.Sprintf("%s clef", current.Clef)),
		"",
	}
	lines = append(lines, grid.render(style)...)
	lines = append(lines, "",
		"Note: "+answerSlots(m.session.Input(), m.session.Profile().MaxInput()),
		m.renderFeedback(),
	)
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderFeedback() string {
	switch m.session.Feedback() {
	case quiz.FeedbackCorrect:
		return correctStyle.Render("Correct!")
	case quiz.FeedbackWrong:
		return incorrectStyle.Render(wrongMessage(m.session.Current()))
	default:
		return pendingStyle.Render("Name the note")
	}
}

// wrongMessage names the pitch and, when it differs, the expected label.
func wrongMessage(p pitch.Pitch) string {
	if p.Label == "" || p.Label == p.Letter.String() {
		return fmt.Sprintf("Wrong! It was %s", p)
	}
	return fmt.Sprintf("Wrong! It was %s (%s)", p.Label, p)
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Round %d/%d", m.session.Round(), m.session.Rounds()),
		fmt.Sprintf("Score %d", m.session.Score()),
		m.session.Profile().Name(),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d/%d · %.1f%%", m.lastScore, m.lastRounds, m.lastAcc*100))
	}
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		segments = append(segments, fmt.Sprintf("Focus %d weak", len(m.weakSet)))
	}
	footer := strings.Join(segments, "  ")
	return footerStyle.Render(footer) + "  " + m.help.View(m.keys)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
