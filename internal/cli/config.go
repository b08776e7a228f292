package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "rekindle")
	dataDir := filepath.Join(home, ".local", "share", "rekindle")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.toml")

	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'rekindle config show' to view current configuration")
		return nil
	}

	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Edit %s and fill in the [goals] section\n", configFile)
	fmt.Println("  2. Download your LinkedIn data export (Settings > Data privacy)")
	fmt.Println("  3. Run 'rekindle import <export-dir>' to load your network")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'rekindle config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# rekindle configuration

[database]
path = "~/.local/share/rekindle/rekindle.db"

[goals]
# What you are looking for. Relevance scoring matches contacts against
# these lists; leave them empty and everyone scores a neutral 50.
target_industries = []     # e.g. ["healthcare", "fintech"]
dream_roles = []           # e.g. ["product manager", "engineering manager"]
preferred_locations = []   # e.g. ["new york", "remote"]
wishlist_companies = []    # e.g. ["stripe", "anduril"]
target_skills = []         # e.g. ["sql", "python"]

# How many contacts to put on each weekly plan.
weekly_capacity = 5

# Optional per-factor relevance weights. Uncomment to override the
# defaults (industry 30, role 25, location 15, company 15, skills 15).
# A factor with weight 0 is ignored entirely.
#[weights]
#industry = 30
#role = 25
#location = 15
#company = 15
#skills = 15

[logging]
level = "info"  # debug, info, warn, error
`
