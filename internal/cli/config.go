package cli

import (
	"fmt"

	"github.com/siftbot/gh-sift/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := config.FindConfigPath(cfgFile)
			if cfgPath == "" {
				return fmt.Errorf("config file not found")
			}

			fmt.Printf("Validating config: %s\n", cfgPath)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			errs := config.Validate(cfg)
			if len(errs) > 0 {
				fmt.Println("\nValidation errors:")
				for _, e := range errs {
					fmt.Printf("  - %v\n", e)
				}
				return fmt.Errorf("configuration is invalid")
			}

			mode := "stateless (recent item scan)"
			if cfg.Stateful() {
				mode = fmt.Sprintf("stateful (qdrant at %s)", cfg.Qdrant.URL)
			}

			fmt.Println("\nConfiguration is valid!")
			fmt.Printf("  - Mode: %s\n", mode)
			fmt.Printf("  - LLM: %s (%s)\n", cfg.LLM.Provider, cfg.LLM.Model)
			fmt.Printf("  - Primary embedding: %s (%s)\n", cfg.Embedding.Primary.Provider, cfg.Embedding.Primary.Model)
			fmt.Printf("  - Similarity threshold: %.2f\n", cfg.Detection.SimilarityThreshold)
			fmt.Printf("  - Ready threshold: %d\n", cfg.Review.ReadyThreshold)

			return nil
		},
	}
}
