// Package catalog loads the read-only lookup data shown beside the chat: the
// rule categories and the total rule count.
package catalog

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apierrors "github.com/diogo/regchat/internal/errors"
	"github.com/diogo/regchat/internal/logging"
	"github.com/diogo/regchat/internal/models"
)

// Panel names used in CatalogError
const (
	PanelCategories = "categories"
	PanelRuleCount  = "rule count"
)

// Placeholders shown when a fetch fails
const (
	CategoriesUnavailable = "Failed to load categories"
	RuleCountUnavailable  = "—"
)

// Source fetches catalog data from the backend
type Source interface {
	FetchCategories(ctx context.Context) ([]string, error)
	FetchRuleCount(ctx context.Context, category string) (int, error)
}

// Snapshot is the loaded catalog. Each panel fails independently.
type Snapshot struct {
	models.Catalog
	CategoriesErr error
	RuleCountErr  error
}

// Load fetches categories and the rule count concurrently. Failures are
// recorded per panel and never returned; there is no retry.
func Load(ctx context.Context, src Source, logger *zap.Logger) Snapshot {
	logger = logging.OrNop(logger)

	var snap Snapshot
	var g errgroup.Group

	g.Go(func() error {
		categories, err := src.FetchCategories(ctx)
		if err != nil {
			snap.CategoriesErr = apierrors.NewCatalogError(PanelCategories, err)
			logger.Warn("failed to load categories", zap.Error(err))
			return nil
		}
		snap.Categories = categories
		return nil
	})

	g.Go(func() error {
		total, err := src.FetchRuleCount(ctx, "")
		if err != nil {
			snap.RuleCountErr = apierrors.NewCatalogError(PanelRuleCount, err)
			logger.Warn("failed to load rule count", zap.Error(err))
			return nil
		}
		snap.TotalRules = total
		return nil
	})

	_ = g.Wait()

	logger.Debug("catalog loaded",
		zap.Int("categories", len(snap.Categories)),
		zap.Int("total_rules", snap.TotalRules))
	return snap
}

// RuleCountLabel returns the rule total for display
func (s Snapshot) RuleCountLabel() string {
	if s.RuleCountErr != nil {
		return RuleCountUnavailable
	}
	return strconv.Itoa(s.TotalRules)
}

// CategoryNames returns the display names of the categories
func (s Snapshot) CategoryNames() []string {
	names := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		names[i] = FormatCategoryName(c)
	}
	return names
}

// FormatCategoryName turns a category key such as "remote_id" into "Remote Id".
// Words are split on "_" only and just their first letter is uppercased, so
// "part_107-waiver" becomes "Part 107-waiver".
func FormatCategoryName(key string) string {
	upper := cases.Upper(language.English)
	words := strings.Split(key, "_")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = upper.String(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
