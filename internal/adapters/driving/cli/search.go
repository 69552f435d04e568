package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

var (
	searchLimit    int
	searchOffset   int
	searchSortBy   string
	searchMinViews int64
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search Grokipedia articles",
	Long: `Searches Grokipedia for articles matching a query.

Results are ranked by relevance unless --sort views is given. --min-views
drops articles with fewer views; filtering and sorting apply to the page
of results the source returned.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().StringVar(&searchSortBy, "sort", string(domain.SortByRelevance), "sort order: relevance or views")
	searchCmd.Flags().Int64Var(&searchMinViews, "min-views", 0, "minimum view count")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := articles(cmd.Context())
	if err != nil {
		return err
	}

	req := domain.SearchRequest{
		Query:  args[0],
		Limit:  &searchLimit,
		Offset: &searchOffset,
		SortBy: domain.SortOrder(searchSortBy),
	}
	if cmd.Flags().Changed("min-views") {
		req.MinViews = &searchMinViews
	}

	page, err := svc.Search(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, page)
	}

	outputSearchTable(cmd, page)
	return nil
}

func outputSearchTable(cmd *cobra.Command, page *domain.SearchPage) {
	if page.Count == 0 {
		cmd.Printf("No results found for %q.\n", page.Query)
		return
	}

	st := outputStyles(cmd)
	cmd.Println(st.Title.Render(fmt.Sprintf("Results for %q:", page.Query)))
	cmd.Println()
	for i := range page.Results {
		r := &page.Results[i]
		// Format: [N] Title (slug) - views
		cmd.Printf("  [%d] %s %s\n", i+1, r.Title, st.Muted.Render("("+r.Slug+")"))
		cmd.Printf("      Views: %d  Relevance: %.2f\n", r.ViewCount, r.RelevanceScore)
		if r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
		cmd.Println()
	}
}
