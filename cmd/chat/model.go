// The chat frontend follows The Elm Architecture bubbletea imposes:
// model state, an Update function reacting to messages, and a View that
// renders the transcript. All conversation logic lives in the
// conversation package; this file only presents it.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"compass.app/intake/common/refnum"
	"compass.app/intake/internal/client"
	"compass.app/intake/internal/conversation"
	"compass.app/intake/internal/http/dto"
)

const typingDelay = 600 * time.Millisecond

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD")).
			PaddingLeft(2)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BC48A")).
			PaddingLeft(2)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			PaddingLeft(4)

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5B8DEF")).
				Bold(true).
				PaddingLeft(2)

	typingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true).
			PaddingLeft(2)
)

type transcriptEntry struct {
	fromUser bool
	text     string
}

// replyReadyMsg fires after the typing delay so replies feel conversational
// instead of instantaneous.
type replyReadyMsg struct {
	reply conversation.Reply
}

type submitDoneMsg struct {
	result conversation.SubmissionResult
}

type draftSavedMsg struct {
	err error
}

type chatModel struct {
	api       *client.Client
	sessionID string
	email     string

	state      conversation.State
	transcript []transcriptEntry

	options []conversation.Option
	cursor  int
	input   textinput.Model

	typing bool
	done   bool
	width  int
}

func newChatModel(api *client.Client, sessionID, email string, state conversation.State) chatModel {
	input := textinput.New()
	input.Placeholder = "Type your answer..."
	input.CharLimit = 2000
	input.Width = 72
	input.Focus()

	return chatModel{
		api:       api,
		sessionID: sessionID,
		email:     email,
		state:     state,
		input:     input,
	}
}

func (m chatModel) Init() tea.Cmd {
	reply := conversation.WelcomeReply()
	if m.state.Step != conversation.StepWelcome {
		// Resuming a saved draft: re-issue the prompt for the current step
		// by advancing a welcome-shaped state is not possible, so just tell
		// the user where they left off.
		reply = conversation.Reply{Text: "Welcome back! Picking up where you left off. 👋"}
	}
	return m.typingCmd(reply)
}

func (m chatModel) typingCmd(reply conversation.Reply) tea.Cmd {
	return tea.Tick(typingDelay, func(time.Time) tea.Msg {
		return replyReadyMsg{reply: reply}
	})
}

func (m chatModel) saveDraftCmd() tea.Cmd {
	state := m.state
	return func() tea.Msg {
		raw, err := json.Marshal(state)
		if err != nil {
			return draftSavedMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return draftSavedMsg{err: m.api.SaveDraft(ctx, m.sessionID, raw)}
	}
}

func (m chatModel) deleteDraftCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return draftSavedMsg{err: m.api.DeleteDraft(ctx, m.sessionID)}
	}
}

func (m chatModel) submitCmd() tea.Cmd {
	answers := m.state.Answers
	email := m.email
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		resp, err := m.api.Submit(ctx, dto.SubmitIntakeRequest{
			CustomerProblem:   answers.Problem,
			FeatureType:       answers.FeatureType,
			EnhancingFeature:  answers.ExistingFeature,
			Service:           answers.Service,
			Stakeholder:       answers.Stakeholder,
			AdditionalContext: answers.Constraints,
			SubmittedBy:       email,
			Timeline:          answers.Timeline,
			HasResearch:       answers.HasResearch,
			ResearchLinks:     answers.ResearchLinks,
		})
		if err != nil {
			// The portal never shows a dead end: a failed submit still
			// completes the conversation with a locally generated reference
			// number and a sync disclaimer.
			return submitDoneMsg{result: conversation.SubmissionResult{
				Outcome:         conversation.OutcomeSubmittedWithSyncPending,
				ReferenceNumber: refnum.New(time.Now()),
			}}
		}
		return submitDoneMsg{result: conversation.SubmissionResult{
			Outcome:         conversation.OutcomeSubmitted,
			ReferenceNumber: resp.ReferenceNumber,
		}}
	}
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case replyReadyMsg:
		m.typing = false
		m.transcript = append(m.transcript, transcriptEntry{text: msg.reply.Text})
		m.options = msg.reply.Options
		m.cursor = 0
		if m.state.Step.Terminal() {
			m.done = true
			return m, tea.Quit
		}
		if m.state.Step == conversation.StepSubmitting {
			m.typing = true
			return m, m.submitCmd()
		}
		if len(m.options) == 0 {
			m.input.SetValue("")
			return m, m.input.Focus()
		}
		return m, nil

	case submitDoneMsg:
		// A confirmed submission retires the draft. A sync-pending one
		// saves the submitting-step state, captured before Complete moves
		// past it, so resuming the session re-issues the submit.
		cleanup := m.saveDraftCmd()
		if msg.result.Outcome == conversation.OutcomeSubmitted {
			cleanup = m.deleteDraftCmd()
		}
		state, reply := conversation.Complete(m.state, msg.result)
		m.state = state
		return m, tea.Batch(m.typingCmd(reply), cleanup)

	case draftSavedMsg:
		// Draft persistence is best-effort; a failure only matters on resume.
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.typing || m.done {
			return m, nil
		}
		if len(m.options) > 0 {
			return m.updateOptionPicker(msg)
		}
		return m.updateTextEntry(msg)
	}

	if !m.typing && len(m.options) == 0 {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m chatModel) updateOptionPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		choice := m.options[m.cursor]
		return m.advance(conversation.OptionInput(choice.Value), choice.Label)
	}
	return m, nil
}

func (m chatModel) updateTextEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := m.input.Value()
		m.input.SetValue("")
		return m.advance(conversation.TextInput(text), strings.TrimSpace(text))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) advance(input conversation.Input, display string) (tea.Model, tea.Cmd) {
	if display != "" {
		m.transcript = append(m.transcript, transcriptEntry{fromUser: true, text: display})
	}

	state, reply, err := conversation.Advance(m.state, input)
	if err != nil {
		// Terminal states are handled through replyReadyMsg, so any error
		// here means the state is somehow corrupt. Bail out cleanly.
		return m, tea.Quit
	}

	m.state = state
	m.options = nil
	m.typing = true
	return m, tea.Batch(m.typingCmd(reply), m.saveDraftCmd())
}

func (m chatModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("🧭 SSO UX Intake") + "\n\n")

	for _, entry := range m.transcript {
		if entry.fromUser {
			b.WriteString(userStyle.Render("You: "+entry.text) + "\n\n")
		} else {
			b.WriteString(assistantStyle.Render(entry.text) + "\n\n")
		}
	}

	if m.typing {
		b.WriteString(typingStyle.Render("...") + "\n")
		return b.String()
	}
	if m.done {
		return b.String()
	}

	if len(m.options) > 0 {
		for i, opt := range m.options {
			if i == m.cursor {
				b.WriteString(selectedOptionStyle.Render("› "+opt.Label) + "\n")
			} else {
				b.WriteString(optionStyle.Render(opt.Label) + "\n")
			}
		}
		b.WriteString(optionStyle.Render("\n(↑/↓ to choose, enter to select, esc to quit)") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %s\n", m.input.View()))
	return b.String()
}
