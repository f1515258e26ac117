package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apierrors "github.com/diogo/regchat/internal/errors"
)

type fakeSource struct {
	categories    []string
	categoriesErr error
	total         int
	totalErr      error
	category      string
}

func (f *fakeSource) FetchCategories(ctx context.Context) ([]string, error) {
	return f.categories, f.categoriesErr
}

func (f *fakeSource) FetchRuleCount(ctx context.Context, category string) (int, error) {
	f.category = category
	return f.total, f.totalErr
}

func TestLoad(t *testing.T) {
	src := &fakeSource{categories: []string{"general", "remote_id"}, total: 142}

	snap := Load(context.Background(), src, nil)

	assert.NoError(t, snap.CategoriesErr)
	assert.NoError(t, snap.RuleCountErr)
	assert.Equal(t, []string{"general", "remote_id"}, snap.Categories)
	assert.Equal(t, 142, snap.TotalRules)
	assert.Equal(t, "142", snap.RuleCountLabel())
	assert.Equal(t, []string{"General", "Remote Id"}, snap.CategoryNames())
	assert.Empty(t, src.category, "startup count is unfiltered")
}

func TestLoad_PanelsFailIndependently(t *testing.T) {
	tests := []struct {
		name           string
		src            *fakeSource
		wantCategories bool
		wantCount      string
	}{
		{
			name:           "categories fail",
			src:            &fakeSource{categoriesErr: errors.New("boom"), total: 7},
			wantCategories: false,
			wantCount:      "7",
		},
		{
			name:           "count fails",
			src:            &fakeSource{categories: []string{"general"}, totalErr: errors.New("boom")},
			wantCategories: true,
			wantCount:      RuleCountUnavailable,
		},
		{
			name:           "both fail",
			src:            &fakeSource{categoriesErr: errors.New("a"), totalErr: errors.New("b")},
			wantCategories: false,
			wantCount:      RuleCountUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Load(context.Background(), tt.src, nil)

			if tt.wantCategories {
				assert.NoError(t, snap.CategoriesErr)
				assert.NotEmpty(t, snap.Categories)
			} else {
				assert.True(t, apierrors.IsCatalogError(snap.CategoriesErr))
				assert.Empty(t, snap.Categories)
			}
			assert.Equal(t, tt.wantCount, snap.RuleCountLabel())
			if tt.wantCount == RuleCountUnavailable {
				assert.True(t, apierrors.IsCatalogError(snap.RuleCountErr))
			}
		})
	}
}

func TestFormatCategoryName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"general", "General"},
		{"remote_id", "Remote Id"},
		{"operating_rules_at_night", "Operating Rules At Night"},
		{"FAA_waivers", "FAA Waivers"},
		{"", ""},
		{"trailing_", "Trailing "},
		{"part_107-waiver", "Part 107-waiver"},
		{"pilot's_license", "Pilot's License"},
		{"straße_x", "Straße X"},
		{"ßeta", "SSeta"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCategoryName(tt.key))
		})
	}
}
