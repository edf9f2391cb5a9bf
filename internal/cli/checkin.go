package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type checkinState int

const (
	checkinLoading checkinState = iota
	checkinWriting
	checkinSubmitting
	checkinDone
	checkinFailed
)

type todayLoadedMsg struct {
	today *contract.TodayResponse
	err   error
}

type promptSwappedMsg struct {
	swap *contract.SwapResponse
	err  error
}

type reflectionSavedMsg struct {
	resp *contract.ReflectResponse
	err  error
}

// checkinModel walks through one day: show the prompt, optionally swap it,
// write the reflection and show the coaching result.
type checkinModel struct {
	ctx  context.Context
	app  *App
	user *domain.User
	date string

	state   checkinState
	today   *contract.TodayResponse
	result  *contract.ReflectResponse
	notice  string
	err     error
	aborted bool

	editor  textarea.Model
	spinner spinner.Model
	width   int
}

func newCheckinModel(ctx context.Context, app *App, user *domain.User, date string) checkinModel {
	ta := textarea.New()
	ta.Placeholder = "Take a moment..."
	ta.CharLimit = service.MaxResponseRunes
	ta.ShowLineNumbers = false
	ta.SetWidth(64)
	ta.SetHeight(6)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = formatter.StylePurple

	return checkinModel{
		ctx:     ctx,
		app:     app,
		user:    user,
		date:    date,
		editor:  ta,
		spinner: sp,
		width:   80,
	}
}

func (m checkinModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadToday())
}

func (m checkinModel) loadToday() tea.Cmd {
	return func() tea.Msg {
		today, err := m.app.Cycles.Today(m.ctx, m.user, m.date)
		return todayLoadedMsg{today: today, err: err}
	}
}

func (m checkinModel) swapPrompt() tea.Cmd {
	return func() tea.Msg {
		swap, err := m.app.Cycles.Swap(m.ctx, m.user, m.date)
		return promptSwappedMsg{swap: swap, err: err}
	}
}

func (m checkinModel) submit(text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.app.Reflections.Submit(m.ctx, m.user, contract.ReflectRequest{Date: m.date, ResponseText: text})
		return reflectionSavedMsg{resp: resp, err: err}
	}
}

func (m checkinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor.SetWidth(min(msg.Width-4, 64))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case todayLoadedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.today = msg.today
		if m.today.HasReflected {
			m.state = checkinDone
			m.notice = "You already reflected today. See you tomorrow."
			return m, tea.Quit
		}
		m.state = checkinWriting
		return m, m.editor.Focus()

	case promptSwappedMsg:
		if msg.err != nil {
			m.notice = ErrorMessage(m.app, msg.err)
			return m, nil
		}
		m.today.Prompt = msg.swap.Prompt
		m.today.DidSwapPrompt = true
		m.notice = "Here's a different prompt."
		return m, nil

	case reflectionSavedMsg:
		switch {
		case msg.err == nil:
			m.state, m.result = checkinDone, msg.resp
			return m, tea.Quit
		case errors.Is(msg.err, domain.ErrValidation):
			// Let the user fix the text and try again.
			m.state = checkinWriting
			m.notice = ErrorMessage(m.app, msg.err)
			return m, m.editor.Focus()
		default:
			return m.fail(msg.err)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == checkinWriting {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// fail renders the error once; View runs on every frame.
func (m checkinModel) fail(err error) (tea.Model, tea.Cmd) {
	m.state, m.err = checkinFailed, err
	m.notice = ErrorMessage(m.app, err)
	return m, tea.Quit
}

func (m checkinModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	}
	if m.state != checkinWriting {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlS:
		text := strings.TrimSpace(m.editor.Value())
		if text == "" {
			m.notice = "Write something first."
			return m, nil
		}
		m.state = checkinSubmitting
		m.notice = ""
		m.editor.Blur()
		return m, tea.Batch(m.spinner.Tick, m.submit(text))
	case tea.KeyCtrlR:
		if m.today.DidSwapPrompt {
			m.notice = "You can only swap once per day."
			return m, nil
		}
		if strings.TrimSpace(m.editor.Value()) != "" {
			m.notice = "Clear your text before swapping the prompt."
			return m, nil
		}
		return m, m.swapPrompt()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m checkinModel) View() string {
	var b strings.Builder

	switch m.state {
	case checkinLoading:
		b.WriteString(m.spinner.View() + " Loading today's prompt...\n")

	case checkinWriting, checkinSubmitting:
		b.WriteString(formatter.Header("Today · "+m.today.DateLocal) + "\n\n")
		b.WriteString(formatter.Bold(formatter.Wrap(m.today.Prompt.Text, min(m.width, 64))) + "\n\n")
		b.WriteString(m.editor.View() + "\n")
		if m.state == checkinSubmitting {
			b.WriteString("\n" + m.spinner.View() + " Saving your reflection...\n")
		} else {
			hints := "ctrl+s save · esc cancel"
			if !m.today.DidSwapPrompt {
				hints = "ctrl+s save · ctrl+r swap prompt · esc cancel"
			}
			b.WriteString(formatter.Dim(hints) + "\n")
		}

	case checkinDone:
		if m.result != nil {
			b.WriteString(formatter.FormatReflection(m.result))
		}
	}

	if m.notice != "" {
		b.WriteString("\n" + m.notice + "\n")
	}
	return b.String()
}

func newCheckinCmd(app *App, opts *globalOpts) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Walk through today's prompt and reflection interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() || opts.json {
				return domain.Validationf("checkin needs a terminal; use `bluum today` and `bluum reflect` instead")
			}
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				newCheckinModel(cmd.Context(), app, user, date),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(checkinModel); ok && m.state == checkinFailed {
				// Already shown in the view; only the exit code is left.
				return errCheckinFailed
			}
			return nil
		},
	}

	addDateFlag(cmd.Flags(), &date)
	return cmd
}

// errCheckinFailed reports a failure the TUI already displayed.
var errCheckinFailed = errors.New("checkin failed")
