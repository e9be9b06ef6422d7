package cli

import (
	"fmt"

	"github.com/siftbot/gh-sift/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dryRun  bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "gh-sift",
	Short: "GitHub Triage Bot",
	Long: `gh-sift triages incoming issues and pull requests: it detects
duplicates using semantic search over LLM summaries, and scores pull
requests for review readiness.

Runs stateless against recent items by default; configure a Qdrant URL
to keep a persistent vector index across runs.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "skip all writes (GitHub + Qdrant)")

	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// loadConfig locates, loads and validates the configuration
func loadConfig() (*config.Config, error) {
	cfgPath := config.FindConfigPath(cfgFile)
	if cfgPath == "" {
		return nil, fmt.Errorf("config file not found")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("config error: %v\n", e)
		}
		return nil, fmt.Errorf("invalid configuration")
	}

	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gh-sift version %s\n", version)
		},
	}
}
