package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/regchat/internal/errors"
	"github.com/diogo/regchat/internal/models"
)

// SubmitQuery posts query to the backend. A non-success status, transport error or
// malformed body is returned as an error; the caller treats them all alike.
func (c *Client) SubmitQuery(ctx context.Context, query string, pref models.Preference) (*models.QueryResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apierrors.ErrEmptyQuery
	}

	payload, err := json.Marshal(models.NewQueryRequest(query, pref))
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	body, err := c.do(ctx, "submit query", http.MethodPost, models.EndpointQuery, nil, payload)
	if err != nil {
		return nil, err
	}

	return parseQueryResponse(body)
}

// parseQueryResponse decodes the query endpoint body
func parseQueryResponse(body []byte) (*models.QueryResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, apierrors.NewParseError("response is not a JSON object", "")
	}

	rules, err := parseCitations(parsed.Get(PathRelevantRules))
	if err != nil {
		return nil, err
	}

	followUps, err := parseStrings(parsed.Get(PathFollowUps), PathFollowUps)
	if err != nil {
		return nil, err
	}

	out := &models.QueryResponse{
		Response:             parsed.Get(PathResponse).String(),
		RelevantRules:        rules,
		FollowUps:            followUps,
		AskSummaryPreference: parsed.Get(PathAskSummaryPreference).Bool(),
		Query:                parsed.Get(PathQuery).String(),
	}

	// An answer without text cannot be rendered
	if !out.AskSummaryPreference && !parsed.Get(PathResponse).Exists() {
		return nil, apierrors.NewParseError("response text missing", PathResponse)
	}

	return out, nil
}

// parseCitations decodes relevant_rules; a missing field means no citations
func parseCitations(result gjson.Result) ([]models.RuleCitation, error) {
	if !result.Exists() || result.Type == gjson.Null {
		return nil, nil
	}
	if !result.IsArray() {
		return nil, apierrors.NewParseError("expected an array", PathRelevantRules)
	}

	var rules []models.RuleCitation
	var parseErr error
	result.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			parseErr = apierrors.NewParseError("expected rule objects", PathRelevantRules)
			return false
		}
		rules = append(rules, models.RuleCitation{
			RuleNumber: value.Get(PathRuleNumber).String(),
			Title:      value.Get(PathRuleTitle).String(),
			Category:   value.Get(PathRuleCat).String(),
			Score:      value.Get(PathRuleScore).Float(),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return rules, nil
}

// parseStrings decodes an optional array of strings
func parseStrings(result gjson.Result, path string) ([]string, error) {
	if !result.Exists() || result.Type == gjson.Null {
		return nil, nil
	}
	if !result.IsArray() {
		return nil, apierrors.NewParseError("expected an array", path)
	}

	var out []string
	result.ForEach(func(_, value gjson.Result) bool {
		out = append(out, value.String())
		return true
	})
	return out, nil
}

// errorMessage extracts the backend's {"error": "..."} message, if any
func errorMessage(op string, body []byte) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, PathError).String(); msg != "" {
			return msg
		}
	}
	return op + " failed"
}
