package api

import (
	"context"

	"github.com/diogo/regchat/internal/models"
)

// ClientInterface is everything the commands and the TUI need from the backend
type ClientInterface interface {
	SubmitQuery(ctx context.Context, query string, pref models.Preference) (*models.QueryResponse, error)
	FetchCategories(ctx context.Context) ([]string, error)
	FetchRuleCount(ctx context.Context, category string) (int, error)
	BaseURL() string
	Close()
	IsClosed() bool
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)
