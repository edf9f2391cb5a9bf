// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned Cmds are executed in place, so a
// test sees the model settle after every key press without a tea.Program.
// Cmds that block on timers (cursor blink, spinner ticks) either time out
// or are dropped by a skip rule.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one event may produce.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates real work (database calls, message factories)
// from timer Cmds. Blink and spinner timers take at least 80ms.
const DefaultCmdTimeout = 50 * time.Millisecond

// Driver is a synchronous harness around one tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg is produced. The real runtime
	// swallows that message, so models rarely handle it themselves.
	Quitting bool

	// Seen lists the type of every message fed to Update, in order.
	Seen []string

	cmdTimeout time.Duration
	skips      []func(tea.Msg) bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout changes how long a Cmd may run before it is abandoned.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.cmdTimeout = timeout
	}
}

// WithSkip drops messages matching fn instead of feeding them to Update.
func WithSkip(fn func(tea.Msg) bool) Option {
	return func(d *Driver) {
		d.skips = append(d.skips, fn)
	}
}

// New builds a Driver. Call DrainInit to run the model's Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{
		T:          t,
		Model:      model,
		cmdTimeout: DefaultCmdTimeout,
		skips:      []func(tea.Msg) bool{isCursorBlink, isSpinnerTick},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send feeds msg through Update and drains the result. It is a no-op
// after the model quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.drain(d.update(msg), 0)
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends a special key such as tea.KeyEnter or tea.KeyCtrlS.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.Press(tea.KeyEnter)
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Press(tea.KeyEsc)
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Press(tea.KeyCtrlC)
}

// Type sends s one rune at a time. Newlines become Enter.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		if r == '\n' {
			d.PressEnter()
			continue
		}
		d.PressKey(r)
	}
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

// Saw reports whether a message whose type name contains name reached Update.
func (d *Driver) Saw(name string) bool {
	for _, s := range d.Seen {
		if strings.Contains(s, name) {
			return true
		}
	}
	return false
}

func (d *Driver) update(msg tea.Msg) tea.Cmd {
	d.Seen = append(d.Seen, fmt.Sprintf("%T", msg))
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	return cmd
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := d.run(cmd)
	if msg == nil || d.skipped(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.update(msg)
	default:
		d.drain(d.update(msg), depth+1)
	}
}

// run executes cmd, giving up after the configured timeout.
func (d *Driver) run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	timer := time.NewTimer(d.cmdTimeout)
	defer timer.Stop()
	select {
	case msg := <-ch:
		return msg
	case <-timer.C:
		return nil
	}
}

func (d *Driver) skipped(msg tea.Msg) bool {
	for _, skip := range d.skips {
		if skip(msg) {
			return true
		}
	}
	return false
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}

func isSpinnerTick(msg tea.Msg) bool {
	_, ok := msg.(spinner.TickMsg)
	return ok
}
