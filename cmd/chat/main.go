package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"compass.app/intake/common/id"
	"compass.app/intake/core/config"
	"compass.app/intake/internal/client"
	"compass.app/intake/internal/conversation"
)

func main() {
	session := flag.String("session", "", "session id of a saved draft to resume")
	email := flag.String("email", "", "email address for the confirmation message")
	flag.Parse()

	cfg, err := config.Load(config.ServiceTypeChat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	if err := id.Init(3); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize id generator:", err)
		os.Exit(1)
	}

	api := client.New(cfg.APIURL)

	sessionID := *session
	state := conversation.NewState()
	if sessionID == "" {
		sessionID = fmt.Sprintf("%d", id.New())
	} else {
		state = resumeDraft(api, sessionID)
	}

	model := newChatModel(api, sessionID, *email, state)
	model.typing = true

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "chat error:", err)
		os.Exit(1)
	}

	fmt.Printf("Session: %s (use --session to resume an unfinished draft)\n", sessionID)
}

// resumeDraft loads a saved conversation state. Any failure starts fresh
// rather than blocking the user.
func resumeDraft(api *client.Client, sessionID string) conversation.State {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	draft, err := api.GetDraft(ctx, sessionID)
	if err != nil || draft == nil {
		return conversation.NewState()
	}

	var state conversation.State
	if err := json.Unmarshal(draft.State, &state); err != nil {
		return conversation.NewState()
	}
	if state.Step == "" || state.Step.Terminal() {
		return conversation.NewState()
	}
	return state
}
