package models

// QueryRequest is the body posted to the query endpoint. A nil SummaryPreference is
// encoded as JSON null.
type QueryRequest struct {
	Query             string  `json:"query"`
	SummaryPreference *string `json:"summary_preference"`
}

// NewQueryRequest builds a request body for query with the given preference
func NewQueryRequest(query string, pref Preference) QueryRequest {
	req := QueryRequest{Query: query}
	if pref != PreferenceNone {
		p := string(pref)
		req.SummaryPreference = &p
	}
	return req
}

// QueryResponse is the decoded body returned by the query endpoint
type QueryResponse struct {
	Response             string
	RelevantRules        []RuleCitation
	FollowUps            []string
	AskSummaryPreference bool
	Query                string
}

// NeedsPreference reports whether the backend deferred the answer until a summary
// length is chosen
func (r *QueryResponse) NeedsPreference() bool {
	return r != nil && r.AskSummaryPreference
}

// AssistantMessage converts a completed response into a message
func (r *QueryResponse) AssistantMessage() Message {
	return Message{
		Role:       RoleAssistant,
		Content:    r.Response,
		CitedRules: r.RelevantRules,
		FollowUps:  r.FollowUps,
	}
}

// Catalog holds the read-only lookup data fetched at startup
type Catalog struct {
	Categories []string
	TotalRules int
}
