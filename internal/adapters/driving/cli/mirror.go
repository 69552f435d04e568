package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/services"
)

var pullConcurrency int

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Manage the local article mirror",
	Long: `Commands for the SQLite mirror used when source.kind is "mirror".

The mirror lives in mirror.path (default ~/.grokipedia-mcp/mirror)
and keeps a bleve search index next to the database.`,
}

var mirrorImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import articles from a JSON Lines file",
	Long: `Import articles from a JSON Lines file, one article per line.
Use "-" to read from stdin. Lines that cannot be parsed are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runMirrorImport,
}

var mirrorPullCmd = &cobra.Command{
	Use:   "pull [slug...]",
	Short: "Fetch articles from the API into the mirror",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMirrorPull,
}

var mirrorRemoveCmd = &cobra.Command{
	Use:   "remove [slug...]",
	Short: "Delete articles from the mirror",
	Long: `Delete articles from the mirror and its search index.
Slugs that are not mirrored are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMirrorRemove,
}

var mirrorCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of mirrored articles",
	Args:  cobra.NoArgs,
	RunE:  runMirrorCount,
}

func init() {
	mirrorPullCmd.Flags().IntVarP(&pullConcurrency, "concurrency", "c", services.DefaultPullConcurrency,
		"number of parallel fetches")

	mirrorCmd.AddCommand(mirrorImportCmd)
	mirrorCmd.AddCommand(mirrorPullCmd)
	mirrorCmd.AddCommand(mirrorRemoveCmd)
	mirrorCmd.AddCommand(mirrorCountCmd)
	rootCmd.AddCommand(mirrorCmd)
}

func runMirrorImport(cmd *cobra.Command, args []string) error {
	svc, err := mirror()
	if err != nil {
		return err
	}

	var r io.Reader
	if args[0] == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	report, err := svc.Import(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d articles", report.Imported)
	if report.Skipped > 0 {
		cmd.Printf(" (%d lines skipped)", report.Skipped)
	}
	cmd.Println()
	return nil
}

func runMirrorPull(cmd *cobra.Command, args []string) error {
	svc, err := mirror()
	if err != nil {
		return err
	}

	report, err := svc.Pull(cmd.Context(), args, pullConcurrency)
	if err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}

	st := outputStyles(cmd)
	cmd.Printf("Stored %d articles\n", len(report.Stored))
	for _, slug := range report.Missing {
		cmd.Println(st.Warning.Render("  not found: " + slug))
	}

	failed := make([]string, 0, len(report.Failed))
	for slug := range report.Failed {
		failed = append(failed, slug)
	}
	sort.Strings(failed)
	for _, slug := range failed {
		cmd.Println(st.Error.Render(fmt.Sprintf("  failed: %s: %v", slug, report.Failed[slug])))
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d articles failed", len(failed), len(args))
	}
	return nil
}

func runMirrorRemove(cmd *cobra.Command, args []string) error {
	svc, err := mirror()
	if err != nil {
		return err
	}

	n, err := svc.Remove(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}
	cmd.Printf("Removed %d articles\n", n)
	return nil
}

func runMirrorCount(cmd *cobra.Command, _ []string) error {
	svc, err := mirror()
	if err != nil {
		return err
	}

	n, err := svc.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}
	cmd.Printf("%d articles\n", n)
	return nil
}
