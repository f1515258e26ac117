package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/regchat/internal/models"
)

func TestDispatch(t *testing.T) {
	tests := []struct {
		name      string
		cmd       Command
		wantQuery string
	}{
		{"send", Send("Can I fly over people?"), "Can I fly over people?"},
		{"example", Command{Kind: CommandPickExample, Text: models.ExampleQueries[1]}, models.ExampleQueries[1]},
		{"follow-up", Command{Kind: CommandPickFollowUp, Text: "What about at night?"}, "What about at night?"},
		{"category", Command{Kind: CommandPickCategory, Text: "airspace"}, "What are the regulations for airspace?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFakeGateway()
			s := NewSession(gw)

			ch, err := s.Dispatch(context.Background(), tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, StateCompleted, (<-ch).State)
			assert.Equal(t, []gatewayCall{{query: tt.wantQuery, pref: models.PreferenceNone}}, gw.recorded())
		})
	}
}

func TestDispatch_PickPreference(t *testing.T) {
	gw := newFakeGateway(askPreference("q"), answer("a"))
	s := NewSession(gw)
	ctx := context.Background()

	ch, err := s.Dispatch(ctx, Send("q"))
	require.NoError(t, err)
	promptID := (<-ch).Entry

	ch, err = s.Dispatch(ctx, PickPreference(promptID, models.PreferenceDetailed))
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, (<-ch).State)
	assert.Equal(t, models.PreferenceDetailed, gw.recorded()[1].pref)
}

func TestDispatch_UnknownKind(t *testing.T) {
	s := NewSession(newFakeGateway())
	_, err := s.Dispatch(context.Background(), Command{Kind: CommandKind(99), Text: "q"})
	assert.Error(t, err)
	assert.Zero(t, s.Log().Len())
}

func TestCommandKindString(t *testing.T) {
	assert.Equal(t, "send", CommandSend.String())
	assert.Equal(t, "pick_preference", CommandPickPreference.String())
	assert.Equal(t, "unknown", CommandKind(99).String())
}
