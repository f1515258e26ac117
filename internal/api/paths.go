// Package api provides the regulation lookup backend client.
package api

// GJSON paths for extracting values from backend responses.
const (
	// Query endpoint
	PathResponse             = "response"
	PathRelevantRules        = "relevant_rules"
	PathFollowUps            = "follow_ups"
	PathAskSummaryPreference = "ask_summary_preference"
	PathQuery                = "query"

	// Rule citation paths (relative to a relevant_rules element)
	PathRuleNumber = "rule_number"
	PathRuleTitle  = "title"
	PathRuleCat    = "category"
	PathRuleScore  = "similarity_score"

	// Catalog endpoints
	PathCategories = "categories"
	PathTotal      = "total"

	// Error body returned with non-success statuses
	PathError = "error"
)
