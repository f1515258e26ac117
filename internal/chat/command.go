package chat

import (
	"context"
	"fmt"

	"github.com/diogo/regchat/internal/models"
)

// CommandKind identifies a user command
type CommandKind int

const (
	CommandSend CommandKind = iota
	CommandPickExample
	CommandPickFollowUp
	CommandPickCategory
	CommandPickPreference
)

func (k CommandKind) String() string {
	switch k {
	case CommandSend:
		return "send"
	case CommandPickExample:
		return "pick_example"
	case CommandPickFollowUp:
		return "pick_follow_up"
	case CommandPickCategory:
		return "pick_category"
	case CommandPickPreference:
		return "pick_preference"
	default:
		return "unknown"
	}
}

// Command is a user action routed into a Session
type Command struct {
	Kind CommandKind
	// Text is the query, example, follow-up or category key
	Text string
	// PromptID and Preference are used by CommandPickPreference
	PromptID   EntryID
	Preference models.Preference
}

// Send builds a free-text submission
func Send(text string) Command {
	return Command{Kind: CommandSend, Text: text}
}

// PickPreference builds a preference choice for a pending prompt
func PickPreference(promptID EntryID, pref models.Preference) Command {
	return Command{Kind: CommandPickPreference, PromptID: promptID, Preference: pref}
}

// Dispatch routes cmd to the matching session operation
func (s *Session) Dispatch(ctx context.Context, cmd Command) (<-chan Outcome, error) {
	switch cmd.Kind {
	case CommandSend:
		return s.Submit(ctx, cmd.Text, models.PreferenceNone)
	case CommandPickExample:
		return s.PickExample(ctx, cmd.Text)
	case CommandPickFollowUp:
		return s.PickFollowUp(ctx, cmd.Text)
	case CommandPickCategory:
		return s.PickCategory(ctx, cmd.Text)
	case CommandPickPreference:
		return s.ResolvePreference(ctx, cmd.PromptID, cmd.Preference)
	default:
		return nil, fmt.Errorf("unknown command kind %d", int(cmd.Kind))
	}
}
