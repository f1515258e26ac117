package models

import (
	"encoding/json"
	"testing"
)

func TestParsePreference(t *testing.T) {
	tests := []struct {
		input   string
		want    Preference
		wantErr bool
	}{
		{"", PreferenceNone, false},
		{"short", PreferenceShort, false},
		{"detailed", PreferenceDetailed, false},
		{"long", PreferenceNone, true},
		{"SHORT", PreferenceNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePreference(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePreference(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePreference(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreferenceIsChoice(t *testing.T) {
	if PreferenceNone.IsChoice() {
		t.Error("PreferenceNone should not be a choice")
	}
	if !PreferenceShort.IsChoice() || !PreferenceDetailed.IsChoice() {
		t.Error("short and detailed should be choices")
	}
	if PreferenceShort.Label() == "" || PreferenceDetailed.Label() == "" {
		t.Error("choices should have labels")
	}
}

func TestNewQueryRequest_EncodesNullPreference(t *testing.T) {
	data, err := json.Marshal(NewQueryRequest("hello", PreferenceNone))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"query":"hello","summary_preference":null}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	data, err = json.Marshal(NewQueryRequest("hello", PreferenceDetailed))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want = `{"query":"hello","summary_preference":"detailed"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestQueryResponse_AssistantMessage(t *testing.T) {
	resp := &QueryResponse{
		Response:      "answer",
		RelevantRules: []RuleCitation{{RuleNumber: "1", Title: "Registration", Category: "general"}},
		FollowUps:     []string{"next?"},
	}

	msg := resp.AssistantMessage()
	if msg.Role != RoleAssistant {
		t.Errorf("Role = %s, want assistant", msg.Role)
	}
	if msg.Content != "answer" {
		t.Errorf("Content = %q", msg.Content)
	}
	if !msg.HasCitations() || !msg.HasFollowUps() {
		t.Error("expected citations and follow-ups")
	}
}

func TestQueryResponse_NeedsPreference(t *testing.T) {
	var nilResp *QueryResponse
	if nilResp.NeedsPreference() {
		t.Error("nil response should not need a preference")
	}
	if !(&QueryResponse{AskSummaryPreference: true}).NeedsPreference() {
		t.Error("expected NeedsPreference to be true")
	}
}
