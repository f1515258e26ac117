package models

// RuleCitation is a regulation referenced by an answer. It is passed through from the
// backend untouched.
type RuleCitation struct {
	RuleNumber string  `json:"rule_number"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Score      float64 `json:"similarity_score,omitempty"`
}

// Message represents a chat message for display
type Message struct {
	Role       Role
	Content    string
	CitedRules []RuleCitation
	FollowUps  []string
}

// HasCitations reports whether the message references any rules
func (m Message) HasCitations() bool {
	return len(m.CitedRules) > 0
}

// HasFollowUps reports whether the message suggests follow-up queries
func (m Message) HasFollowUps() bool {
	return len(m.FollowUps) > 0
}
