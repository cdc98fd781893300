// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a status bar (cooking countdowns and the latest
// save/load advisory) and an input prompt at the bottom of the terminal.
// All application output is printed above the rendered area via
// Program.Println, so concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/whatscooking/internal/timer"
)

const (
	appTitle = "What's Cooking"
	prompt   = "cook> "
)

// TimerSource reports the running countdowns.
type TimerSource func() []timer.Timer

// AdvisorySource reports the latest store problem, or nil.
type AdvisorySource func() error

// ── Styles ───────────────────────────────────────────────────────

// Warm kitchen palette.
const (
	colorCharcoal = lipgloss.Color("#292524")
	colorAsh      = lipgloss.Color("#a8a29e")
	colorSmoke    = lipgloss.Color("#78716c")
	colorIron     = lipgloss.Color("#57534e")
	colorFlour    = lipgloss.Color("#e7e5e4")
	colorSaffron  = lipgloss.Color("#fcd34d")
	colorPaprika  = lipgloss.Color("#f87171")
	colorBasil    = lipgloss.Color("#86efac")
	colorCream    = lipgloss.Color("#fde6c4")
)

var (
	barBg            = lipgloss.NewStyle().Background(colorCharcoal).Foreground(colorAsh)
	timerRunStyle    = lipgloss.NewStyle().Foreground(colorSaffron)
	timerDoneStyle   = lipgloss.NewStyle().Foreground(colorPaprika).Bold(true)
	timerPausedStyle = lipgloss.NewStyle().Foreground(colorSmoke).Italic(true)
	labelStyle       = lipgloss.NewStyle().Foreground(colorAsh)
	sepStyle         = lipgloss.NewStyle().Foreground(colorIron)
	promptStyle      = lipgloss.NewStyle().Foreground(colorSaffron)

	// BannerStyle colours the startup art.
	BannerStyle = lipgloss.NewStyle().Foreground(colorSaffron)

	chatStyle      = lipgloss.NewStyle().Foreground(colorCream)
	headingStyle   = lipgloss.NewStyle().Foreground(colorBasil).Bold(true)
	primaryStyle   = lipgloss.NewStyle().Foreground(colorFlour)
	secondaryStyle = lipgloss.NewStyle().Foreground(colorSmoke)
	urgentStyle    = lipgloss.NewStyle().Foreground(colorPaprika)
	echoStyle      = lipgloss.NewStyle().Foreground(colorAsh)
)

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may call the
// Print helpers and read [UI.InputChan] once [UI.WaitReady] returns.
type UI struct {
	program  *tea.Program
	inputCh  chan string
	readyCh  chan struct{}
	timers   TimerSource
	advisory AdvisorySource
	done     atomic.Bool
}

// NewUI creates the display. Either source may be nil. Call Run() to start.
func NewUI(timers TimerSource, advisory AdvisorySource) *UI {
	return &UI{
		timers:   timers,
		advisory: advisory,
		inputCh:  make(chan string, 16),
		readyCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe. Before Run starts
// or after it returns, output goes straight to stdout.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────
// These give output visual hierarchy with lipgloss colors.

// PrintChat prints a conversational assistant line.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintHeading prints a section header like "=== Pad Thai ===".
func (u *UI) PrintHeading(text string) {
	u.Println(headingStyle.Render("  " + text))
}

// PrintLine prints primary body text.
func (u *UI) PrintLine(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an urgent/error line (red, bold).
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("cook") + secondaryStyle.Render("> ") + echoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// Run starts the Bubble Tea event loop.  Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Use a plain-text prompt so the textinput width math stays correct.
	// Lipgloss-styled prompts add invisible ANSI bytes that break the
	// internal offset/scroll calculations for long input.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = echoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(colorSaffron)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		timers:   u.timers,
		advisory: u.advisory,
		input:    ti,
		inputCh:  u.inputCh,
		readyCh:  u.readyCh,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	timers   TimerSource
	advisory AdvisorySource
	input    textinput.Model
	inputCh  chan<- string
	readyCh  chan struct{}
	echoFn   func(string) // prints user input into scrollback
	bar      []timer.Timer
	notice   string
	width    int
}

// Messages.
type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Return a Cmd that prints the echo — this runs
				// outside Update so it won't deadlock on msgs.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		// Let the text input use the full width minus the prompt.
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) refresh() {
	m.bar = nil
	if m.timers != nil {
		m.bar = append(m.bar, m.timers()...)
	}
	m.notice = ""
	if m.advisory != nil {
		if err := m.advisory(); err != nil {
			m.notice = err.Error()
		}
	}
}

func (m model) titleStr() string {
	if len(m.bar) == 0 {
		return appTitle
	}
	p := make([]string, 0, len(m.bar))
	for _, t := range m.bar {
		p = append(p, t.Label+": "+timerText(t))
	}
	return appTitle + " — " + strings.Join(p, " | ")
}

func (m model) View() string {
	var b strings.Builder

	if len(m.bar) > 0 || m.notice != "" {
		b.WriteString(m.renderBar())
		b.WriteByte('\n')
	}

	// Blank line before prompt for visual separation.
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	var parts []string
	for _, t := range m.bar {
		switch t.Status {
		case timer.StatusFired:
			parts = append(parts, timerDoneStyle.Render(t.Label+": DONE!"))
		case timer.StatusPaused:
			parts = append(parts, timerPausedStyle.Render(t.Label+": paused "+fmtDuration(t.Remaining)))
		default:
			parts = append(parts,
				labelStyle.Render(t.Label+": ")+
					timerRunStyle.Render(fmtDuration(t.Remaining)))
		}
	}
	if m.notice != "" {
		parts = append(parts, timerDoneStyle.Render("⚠ "+m.notice))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}

// ── Helpers ──────────────────────────────────────────────────────

func timerText(t timer.Timer) string {
	switch t.Status {
	case timer.StatusFired:
		return "DONE!"
	case timer.StatusPaused:
		return "paused"
	default:
		return fmtDuration(t.Remaining)
	}
}

func fmtDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
