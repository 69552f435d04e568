package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokipedia-mcp/internal/adapters/driven/config/env"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the API client, MCP server and article source.

Settings are stored in config.toml under --config-dir. Environment
variables override stored values; run 'grokipedia-mcp settings env' to
list them.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting and save it to config.toml.

Run 'grokipedia-mcp settings keys' to list the available keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsEnvCmd = &cobra.Command{
	Use:         "env",
	Short:       "List environment overrides",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoSetup: "true"},
	RunE:        runSettingsEnv,
}

var settingsPromptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List the editable MCP prompt templates",
	Long: `List the prompt templates offered to MCP clients and the directory
holding them. Missing template files are created with the built-in text.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoSetup: "true"},
	RunE:        runSettingsPrompts,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to choose the transport and article source.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsEnvCmd)
	settingsCmd.AddCommand(settingsPromptsCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := env.Apply(settings); err != nil {
		return err
	}

	st := outputStyles(cmd)
	cmd.Println(st.Title.Render("Current Settings"))
	cmd.Println("================")
	cmd.Println()

	cmd.Println(st.Heading.Render("[API]"))
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout())
	cmd.Printf("  Rate limit: %g req/s (burst %d)\n", settings.API.RequestsPerSecond, settings.API.Burst)
	cmd.Printf("  Max retries: %d\n", settings.API.MaxRetries)
	cmd.Printf("  User agent: %s\n", settings.API.UserAgent)
	cmd.Println()

	cmd.Println(st.Heading.Render("[Server]"))
	cmd.Printf("  Transport: %s\n", settings.Server.Transport.Description())
	if settings.Server.Transport.IsHTTP() {
		cmd.Printf("  Listen: %s:%d\n", settings.Server.Host, settings.Server.Port)
	}
	cmd.Println()

	cmd.Println(st.Heading.Render("[Source]"))
	cmd.Printf("  Kind: %s\n", settings.Source.Kind.Description())
	if settings.Source.Kind == domain.SourceKindMirror {
		path := settings.Source.MirrorPath
		if path == "" {
			path = "(default)"
		}
		cmd.Printf("  Mirror path: %s\n", path)
	}
	cmd.Println()

	if err := services.ValidateSettings(settings); err != nil {
		cmd.Println(st.Warning.Render(fmt.Sprintf("Warning: %v", err)))
		cmd.Println("Run 'grokipedia-mcp settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsPrompts(cmd *cobra.Command, _ []string) error {
	store, err := promptStore()
	if err != nil {
		return fmt.Errorf("failed to open prompts: %w", err)
	}

	st := outputStyles(cmd)
	cmd.Printf("Prompt templates in %s\n\n", store.Dir())
	for _, p := range services.NewPromptService(store).List() {
		cmd.Printf("  %s\n", st.Heading.Render(p.Name+".txt"))
		cmd.Printf("      %s\n", st.Muted.Render(p.Description))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsEnv(cmd *cobra.Command, _ []string) error {
	usage, err := env.Usage()
	if err != nil {
		return fmt.Errorf("describing environment: %w", err)
	}
	cmd.Print(usage)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Grokipedia MCP Settings Wizard")
	cmd.Println("==============================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Transport
	cmd.Println("Step 1: Select Transport")
	cmd.Println("------------------------")
	transports := domain.AllTransports()
	for i, t := range transports {
		cmd.Printf("  %d. %s\n", i+1, t.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", indexOf(transports, current.Server.Transport)+1)
	idx := parseChoice(readLine(reader), len(transports), indexOf(transports, current.Server.Transport)+1)
	transport := transports[idx-1]
	if err := settingsService.Set(services.KeyServerTransport, string(transport)); err != nil {
		return fmt.Errorf("failed to set transport: %w", err)
	}
	cmd.Printf("Set transport to: %s\n\n", transport.Description())

	if transport.IsHTTP() {
		cmd.Printf("Enter port [%d]: ", current.Server.Port)
		if port := readLine(reader); port != "" {
			if err := settingsService.Set(services.KeyServerPort, port); err != nil {
				return err
			}
		}
		cmd.Println()
	}

	// Step 2: Article source
	cmd.Println("Step 2: Select Article Source")
	cmd.Println("-----------------------------")
	kinds := domain.AllSourceKinds()
	for i, k := range kinds {
		cmd.Printf("  %d. %s\n", i+1, k.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", indexOf(kinds, current.Source.Kind)+1)
	idx = parseChoice(readLine(reader), len(kinds), indexOf(kinds, current.Source.Kind)+1)
	kind := kinds[idx-1]
	if err := settingsService.Set(services.KeySourceKind, string(kind)); err != nil {
		return fmt.Errorf("failed to set source: %w", err)
	}
	cmd.Printf("Set source to: %s\n\n", kind.Description())

	if kind == domain.SourceKindAPI {
		cmd.Printf("Enter API base URL [%s]: ", current.API.BaseURL)
		if baseURL := readLine(reader); baseURL != "" {
			if err := settingsService.Set(services.KeyAPIBaseURL, baseURL); err != nil {
				return err
			}
		}
		cmd.Println()
	}

	// Final validation
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

// Helper functions.

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n') //nolint:errcheck // EOF yields the default choice
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// indexOf returns the position of v in values, or 0 when absent.
func indexOf[T comparable](values []T, v T) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return 0
}
