// Package models contains data types and constants for the regulation lookup API.
package models

import "fmt"

// Endpoint paths, relative to the configured base URL
const (
	EndpointQuery      = "/api/query"
	EndpointCategories = "/api/categories"
	EndpointRules      = "/api/rules"
)

// DefaultBaseURL is where the backend listens when run locally
const DefaultBaseURL = "http://localhost:5000"

// Preference is the summary length the backend should answer with
type Preference string

const (
	// PreferenceNone marks a fresh, user-initiated query
	PreferenceNone     Preference = ""
	PreferenceShort    Preference = "short"
	PreferenceDetailed Preference = "detailed"
)

// IsChoice reports whether p is one of the two selectable lengths
func (p Preference) IsChoice() bool {
	return p == PreferenceShort || p == PreferenceDetailed
}

// Label returns the text shown on the preference option
func (p Preference) Label() string {
	switch p {
	case PreferenceShort:
		return "📝 Short Summary"
	case PreferenceDetailed:
		return "📚 Detailed Explanation"
	default:
		return ""
	}
}

// ParsePreference converts a user-supplied string into a Preference
func ParsePreference(s string) (Preference, error) {
	switch Preference(s) {
	case PreferenceNone, PreferenceShort, PreferenceDetailed:
		return Preference(s), nil
	default:
		return PreferenceNone, fmt.Errorf("invalid summary preference %q (want short or detailed)", s)
	}
}

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ErrorReply is shown in place of an answer whenever a query cycle fails
const ErrorReply = "Sorry, I encountered an error processing your request. Please try again."

// CategoryPromptTemplate derives a query from a category key
const CategoryPromptTemplate = "What are the regulations for %s?"

// ExampleQueries are offered on the welcome panel
var ExampleQueries = []string{
	"What are the drone registration rules?",
	"What is the maximum altitude for drone flights?",
	"Do I need a permit for BVLOS operations?",
	"What are the weight limits for package delivery drones?",
}

// DefaultHeaders returns the default headers for backend requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "regchat/" + Version,
	}
}

// Version is reported in the User-Agent header (set at build time)
var Version = "0.1.0"
