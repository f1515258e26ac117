package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/regchat/internal/catalog"
)

func newCategoriesCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List regulation categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(cmd.Context(), deps, opts)
		},
	}
}

func runCategories(ctx context.Context, deps *Dependencies, opts *rootOptions) error {
	a, err := deps.newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := withRequestTimeout(ctx, a)
	defer cancel()

	categories, err := a.client.FetchCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	a.logger.Debug("categories listed", zap.Int("count", len(categories)))

	if len(categories) == 0 {
		fmt.Fprintln(deps.Stdout, "No categories")
		return nil
	}

	if !deps.IsTTY() {
		fmt.Fprintln(deps.Stdout, strings.Join(categories, "\n"))
		return nil
	}

	width := 0
	for _, c := range categories {
		if n := len(catalog.FormatCategoryName(c)); n > width {
			width = n
		}
	}
	fmt.Fprintln(deps.Stdout, headingStyle.Render("📁 Categories"))
	for _, c := range categories {
		fmt.Fprintf(deps.Stdout, "  %-*s  %s\n", width, catalog.FormatCategoryName(c), dimStyle.Render(c))
	}
	return nil
}

func newRulesCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show how many rules the backend knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd.Context(), deps, opts, category)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Count only rules in this category")
	return cmd
}

func runRules(ctx context.Context, deps *Dependencies, opts *rootOptions, category string) error {
	a, err := deps.newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := withRequestTimeout(ctx, a)
	defer cancel()

	category = strings.TrimSpace(category)
	total, err := a.client.FetchRuleCount(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to load rule count: %w", err)
	}

	switch {
	case !deps.IsTTY():
		fmt.Fprintln(deps.Stdout, total)
	case category != "":
		fmt.Fprintf(deps.Stdout, "%s: %d rules\n", catalog.FormatCategoryName(category), total)
	default:
		fmt.Fprintf(deps.Stdout, "Rules: %d\n", total)
	}
	return nil
}

// withRequestTimeout bounds ctx by the configured request timeout
func withRequestTimeout(ctx context.Context, a *app) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := a.cfg.RequestTimeout(); timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
