package api

import (
	"context"
	"net/url"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/regchat/internal/errors"
	"github.com/diogo/regchat/internal/models"
)

// FetchCategories returns the rule categories known to the backend
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, "fetch categories", http.MethodGet, models.EndpointCategories, nil, nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}
	result := gjson.GetBytes(body, PathCategories)
	if !result.Exists() {
		return nil, apierrors.NewParseError("categories missing", PathCategories)
	}

	categories, err := parseStrings(result, PathCategories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchRuleCount returns the number of rules, optionally restricted to one category
func (c *Client) FetchRuleCount(ctx context.Context, category string) (int, error) {
	var query url.Values
	if category != "" {
		query = url.Values{"category": []string{category}}
	}

	body, err := c.do(ctx, "fetch rules", http.MethodGet, models.EndpointRules, query, nil)
	if err != nil {
		return 0, err
	}

	if !gjson.ValidBytes(body) {
		return 0, apierrors.NewParseError("response is not valid JSON", "")
	}
	total := gjson.GetBytes(body, PathTotal)
	if !total.Exists() || total.Type != gjson.Number {
		return 0, apierrors.NewParseError("total missing", PathTotal)
	}
	return int(total.Int()), nil
}
