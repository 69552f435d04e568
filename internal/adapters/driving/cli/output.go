package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Palette shared by all command output.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourAccent  = lipgloss.Color("#06B6D4")
	colourMuted   = lipgloss.Color("#6C7086")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourError   = lipgloss.Color("#F38BA8")
)

// styles holds the lipgloss styles used for human-readable output.
type styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// plainStyles renders text unchanged.
var plainStyles = styles{
	Title:   lipgloss.NewStyle(),
	Heading: lipgloss.NewStyle(),
	Muted:   lipgloss.NewStyle(),
	Warning: lipgloss.NewStyle(),
	Error:   lipgloss.NewStyle(),
}

func colourStyles() styles {
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colourPrimary),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(colourAccent),
		Muted:   lipgloss.NewStyle().Foreground(colourMuted),
		Warning: lipgloss.NewStyle().Foreground(colourWarning),
		Error:   lipgloss.NewStyle().Foreground(colourError),
	}
}

// outputStyles colours output only when it goes straight to a terminal.
func outputStyles(cmd *cobra.Command) styles {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return plainStyles
	}
	return colourStyles()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printTruncation notes a shortened body the way the MCP tools warn.
func printTruncation(cmd *cobra.Command, st styles, shown, original int) {
	cmd.Println()
	cmd.Println(st.Warning.Render(fmt.Sprintf("... (truncated at %d of %d chars)", shown, original)))
}
