package api

import (
	"context"
	"sync"

	"github.com/diogo/regchat/internal/models"
)

// MockClient is a mock implementation of ClientInterface for testing
type MockClient struct {
	mu sync.Mutex

	// Mock return values
	QueryResponse *models.QueryResponse
	QueryErr      error
	Categories    []string
	CategoriesErr error
	RuleCount     int
	RuleCountErr  error
	BaseURLVal    string
	IsClosedVal   bool

	// QueryFunc, when set, replaces QueryResponse/QueryErr
	QueryFunc func(ctx context.Context, query string, pref models.Preference) (*models.QueryResponse, error)

	// Call recorders
	Queries         []string
	Preferences     []models.Preference
	CloseCalled     bool
	LastCategoryArg string
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) SubmitQuery(ctx context.Context, query string, pref models.Preference) (*models.QueryResponse, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.Preferences = append(m.Preferences, pref)
	fn := m.QueryFunc
	resp, err := m.QueryResponse, m.QueryErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query, pref)
	}
	return resp, err
}

func (m *MockClient) FetchCategories(ctx context.Context) ([]string, error) {
	return m.Categories, m.CategoriesErr
}

func (m *MockClient) FetchRuleCount(ctx context.Context, category string) (int, error) {
	m.mu.Lock()
	m.LastCategoryArg = category
	m.mu.Unlock()
	return m.RuleCount, m.RuleCountErr
}

func (m *MockClient) BaseURL() string {
	if m.BaseURLVal == "" {
		return models.DefaultBaseURL
	}
	return m.BaseURLVal
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	m.IsClosedVal = true
}

func (m *MockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.IsClosedVal
}

// QueryCount returns how many queries were submitted
func (m *MockClient) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}
