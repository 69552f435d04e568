package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/services"
)

var (
	pageJSON      bool
	pageMaxLength int
	pageLimit     int
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Read Grokipedia articles",
	Long: `Commands for reading a single article by slug.

Slugs are the last path segment of an article URL, for example
"Machine_learning". An unknown slug reports close matches.`,
}

var pageGetCmd = &cobra.Command{
	Use:   "get [slug]",
	Short: "Show an article overview",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageGet,
}

var pageContentCmd = &cobra.Command{
	Use:   "content [slug]",
	Short: "Show article content",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageContent,
}

var pageCitationsCmd = &cobra.Command{
	Use:   "citations [slug]",
	Short: "List article citations",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageCitations,
}

var pageRelatedCmd = &cobra.Command{
	Use:   "related [slug]",
	Short: "List related articles",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageRelated,
}

var pageSectionsCmd = &cobra.Command{
	Use:   "sections [slug]",
	Short: "List article sections",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageSections,
}

var pageSectionCmd = &cobra.Command{
	Use:   "section [slug] [heading]",
	Short: "Show one article section",
	Long: `Show the content of one section. The heading is matched without
regard to case, first exactly and then as a substring.`,
	Args: cobra.ExactArgs(2),
	RunE: runPageSection,
}

func init() {
	pageCmd.PersistentFlags().BoolVar(&pageJSON, "json", false, "output as JSON")

	pageGetCmd.Flags().IntVar(&pageMaxLength, "max-length", domain.DefaultMaxContentLength, "maximum content length")
	pageContentCmd.Flags().IntVar(&pageMaxLength, "max-length", domain.DefaultContentMaxLength, "maximum content length")
	pageSectionCmd.Flags().IntVar(&pageMaxLength, "max-length", domain.DefaultSectionMaxLength, "maximum section length")
	pageCitationsCmd.Flags().IntVarP(&pageLimit, "limit", "n", 0, "maximum number of citations (0 = all)")
	pageRelatedCmd.Flags().IntVarP(&pageLimit, "limit", "n", domain.DefaultRelatedLimit, "maximum number of related articles")

	pageCmd.AddCommand(pageGetCmd)
	pageCmd.AddCommand(pageContentCmd)
	pageCmd.AddCommand(pageCitationsCmd)
	pageCmd.AddCommand(pageRelatedCmd)
	pageCmd.AddCommand(pageSectionsCmd)
	pageCmd.AddCommand(pageSectionCmd)
	rootCmd.AddCommand(pageCmd)
}

// optionalInt is nil unless the flag was set, leaving the default to the
// service.
func optionalInt(cmd *cobra.Command, name string, v *int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	n := *v
	return &n
}

func runPageGet(cmd *cobra.Command, args []string) error {
	svc, err := articles(cmd.Context())
	if err != nil {
		return err
	}

	overview, err := svc.GetPage(cmd.Context(), domain.PageRequest{
		Slug:             args[0],
		MaxContentLength: optionalInt(cmd, "max-length", &pageMaxLength),
	})
	if err != nil {
		return fmt.Errorf("get page failed: %w", err)
	}
	if pageJSON {
		return printJSON(cmd, overview)
	}

	st := outputStyles(cmd)
	cmd.Println(st.Title.Render(overview.Title))
	cmd.Println(st.Muted.Render(fmt.Sprintf("Slug: %s  Views: %d", overview.Slug, overview.ViewCount)))
	if overview.Description != "" {
		cmd.Println()
		cmd.Println(overview.Description)
	}
	cmd.Println()
	cmd.Println(overview.Content)
	if overview.ContentTruncated {
		printTruncation(cmd, st, services.ShownLength(overview.Content), overview.OriginalLength)
	}

	cmd.Println()
	cmd.Println(st.Heading.Render(fmt.Sprintf("Citations (%d):", overview.CitationCount)))
	for i, c := range overview.Citations {
		cmd.Printf("  %d. %s\n     %s\n", i+1, c.Title, st.Muted.Render(c.URL))
	}
	if extra := overview.CitationCount - len(overview.Citations); extra > 0 {
		cmd.Printf("  ... and %d more\n", extra)
	}
	cmd.Println()
	cmd.Printf("Related pages: %d\n", overview.RelatedCount)
	return nil
}

func runPageContent(cmd *cobra.Command, args []string) error {
	svc, err := articles(cmd.Context())
	if err != nil {
		return err
	}

	content, err := svc.GetPageContent(cmd.Context(), domain.ContentRequest{
		Slug:      args[0],
		MaxLength: optionalInt(cmd, "max-length", &pageMaxLength),
	})
	if err != nil {
		return fmt.Errorf("get content failed: %w", err)
	}
	if pageJSON {
		return printJSON(cmd, content)
	}

	st := outputStyles(cmd)
	cmd.Println(st.Title.Render(content.Title))
	cmd.Println()
	cmd.Println(content.Content)
	if content.Truncated {
		printTruncation(cmd, st, services.ShownLength(content.Content), content.OriginalLength)
	}
	return nil
}

func runPageCitations(cmd *cobra.Command, args []string) error {
	svc, err := articles(cmd.Context())
	if err != nil {
		return err
	}

	list, err := svc.GetPageCitations(cmd.Context(), domain.CitationsRequest{
		Slug:  args[0],
		Limit: optionalInt(cmd, "limit", &pageLimit),
	})
	if err != nil {
		return fmt.Errorf("get citations failed: %w", err)
	}
	if pageJSON {
		return printJSON(cmd, list)
	}

	st := outputStyles(cmd)
	if list.TotalCount == 0 {
		cmd.Printf("No citations for %s.\n", list.Title)
		return nil
	}
	cmd.Println(st.Title.Render(fmt.Sprintf("Citations for %s (%d of %d):", list.Title, list.ReturnedCount, list.TotalCount)))
	cmd.Println()
	for i, c := range list.Citations {
		cmd.Printf("  %d. %s\n", i+1, c.Title)
		if c.URL != "" {
			cmd.Printf("     %s\n", st.Muted.Render(c.URL))
		}
		if c.Description != "" {
			cmd.Printf("     %s\n", c.Description)
		}
	}
	return nil
}

func runPageRelated(cmd *cobra.Command, args []string) error {
	svc, err := articles(cmd.Context())
	if err != nil {
		return err
	}

	list, err := svc.GetRelatedPages(cmd.Context(), domain.RelatedRequest{
		Slug:  args[0],
		Limit: optionalInt(cmd, "limit", &pageLimit),
	})
	if err != nil {
		return fmt.Errorf("get related pages failed: %w", err)
	}
	if pageJSON {
		return printJSON(cmd, list)
	}

	st := outputStyles(cmd)
	if list.TotalCount == 0 {
		cmd.Printf("No related pages for %s.\n", list.Title)
		return nil
	}
	cmd.Println(st.Title.Render(fmt.Sprintf("Related to %s (%d of %d):", list.Title, list.ReturnedCount, list.TotalCount)))
	cmd.Println()
	for i, r := range list.Related {
		line := fmt.Sprintf("  %d. %s", i+1, r.Title)
		if r.Slug != "" {
			line += " " + st.Muted.Render("("+r.Slug+")")
		}
		cmd.Println(line)
	}
	return nil
}

func runPageSections(cmd *cobra.Command, args []string) error {
	svc, err := articles(cmd.Context())
	if err != nil {
		return err
	}

	list, err := svc.GetPageSections(cmd.Context(), domain.SectionsRequest{Slug: args[0]})
	if err != nil {
		return fmt.Errorf("get sections failed: %w", err)
	}
	if pageJSON {
		return printJSON(cmd, list)
	}

	st := outputStyles(cmd)
	if list.Count == 0 {
		cmd.Printf("No sections in %s.\n", list.Title)
		return nil
	}
	cmd.Println(st.Title.Render(fmt.Sprintf("Sections of %s:", list.Title)))
	cmd.Println()
	for _, s := range list.Sections {
		indent := strings.Repeat("  ", max(s.Level-1, 0))
		cmd.Printf("  %s%s\n", indent, s.Heading)
	}
	return nil
}

func runPageSection(cmd *cobra.Command, args []string) error {
	svc, err := articles(cmd.Context())
	if err != nil {
		return err
	}

	section, err := svc.GetPageSection(cmd.Context(), domain.SectionRequest{
		Slug:          args[0],
		SectionHeader: args[1],
		MaxLength:     optionalInt(cmd, "max-length", &pageMaxLength),
	})
	if err != nil {
		return fmt.Errorf("get section failed: %w", err)
	}
	if pageJSON {
		return printJSON(cmd, section)
	}

	st := outputStyles(cmd)
	cmd.Println(st.Title.Render(fmt.Sprintf("%s: %s", section.Title, section.Heading)))
	cmd.Println()
	cmd.Println(section.Content)
	if section.Truncated {
		printTruncation(cmd, st, services.ShownLength(section.Content), section.OriginalLength)
	}
	return nil
}
