package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glycoguide/backend/config"
	"github.com/glycoguide/backend/internal/domain"
	"github.com/glycoguide/backend/internal/infrastructure/imageindex"
	"github.com/glycoguide/backend/internal/infrastructure/manifest"
	"github.com/glycoguide/backend/internal/infrastructure/postgres"
	"github.com/glycoguide/backend/internal/usecase"
)

var (
	flagTimeout time.Duration
	flagSource  string
	flagOutput  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "curate",
		Short: "Batch data-quality jobs for the GlycoGuide meals database",
		Long: `curate runs the offline maintenance jobs against the meals database:
re-pairing recipes with stock images, rewriting malformed cooking
instructions, auditing current image assignments and rebuilding the
image index.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Minute, "overall run timeout")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "image source override: dir, index or manifest")

	rootCmd.AddCommand(newImagesCmd())
	rootCmd.AddCommand(newInstructionsCmd())
	rootCmd.AddCommand(newAuditCmd())
	rootCmd.AddCommand(newIndexCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "Re-pair every recipe with the best-matching stock image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCuration(cmd.Context(), func(ctx context.Context, svc *usecase.CurationService) error {
				summary, err := svc.RematchImages(ctx)
				if summary != nil {
					fmt.Printf("scanned=%d updated=%d unmatched=%d\n",
						summary.Scanned, summary.Updated, summary.Unmatched)
				}
				return err
			})
		},
	}
}

func newInstructionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instructions",
		Short: "Rewrite malformed cooking instructions into numbered steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCuration(cmd.Context(), func(ctx context.Context, svc *usecase.CurationService) error {
				summary, err := svc.ReformatInstructions(ctx)
				if summary != nil {
					fmt.Printf("scanned=%d updated=%d skipped=%d\n",
						summary.Scanned, summary.Updated, summary.Skipped)
				}
				return err
			})
		},
	}
}

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Score current image assignments without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCuration(cmd.Context(), func(ctx context.Context, svc *usecase.CurationService) error {
				report, err := svc.AuditImages(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("run=%s total=%d high=%d medium=%d low=%d\n",
					report.RunID, report.Total, report.High, report.Medium, report.Low)
				for _, entry := range report.Entries {
					if entry.Confidence == domain.ConfidenceLow {
						fmt.Printf("  LOW %s (%s): score=%d issues=%v\n",
							entry.RecipeName, entry.ImageURL, entry.Score, entry.Issues)
					}
				}
				return nil
			})
		},
	}
}

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan the stock image directory and save the searchable index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			output := flagOutput
			if output == "" {
				output = cfg.Images.IndexPath
			}

			tokenizer := usecase.NewTokenizer(usecase.TokenizerConfig{})
			builder := imageindex.NewBuilder(cfg.Images.Dir, tokenizer, logger)
			index, err := builder.Build()
			if err != nil {
				return err
			}
			if err := builder.Save(index, output); err != nil {
				return err
			}
			fmt.Printf("indexed=%d output=%s\n", len(index), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "index output path (defaults to configured index path)")
	return cmd
}

// withCuration wires the full curation stack (config, logger, database,
// image source, services) and runs one job under the shared timeout.
func withCuration(parent context.Context, run func(context.Context, *usecase.CurationService) error) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url is required for this command")
	}

	ctx, cancel := context.WithTimeout(parent, flagTimeout)
	defer cancel()

	repo, err := postgres.NewRecipeRepository(ctx, cfg.Database.URL, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer repo.Close()

	images, err := imageSource(cfg, logger)
	if err != nil {
		return err
	}

	tokenizer := usecase.NewTokenizer(usecase.TokenizerConfig{})
	matcher := usecase.NewMatchingService(tokenizer, usecase.MatchConfig{
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})
	formatter := usecase.NewInstructionService(cfg.Matching.EnableDebugLogging)
	svc := usecase.NewCurationService(repo, images, tokenizer, matcher, formatter, logger)

	return run(ctx, svc)
}

// imageSource resolves the candidate source, honoring the --source override
func imageSource(cfg *config.Config, logger *zap.Logger) (domain.ImageSource, error) {
	source := flagSource
	if source == "" {
		switch {
		case cfg.Images.ManifestURL != "":
			source = "manifest"
		default:
			source = "dir"
		}
	}

	tokenizer := usecase.NewTokenizer(usecase.TokenizerConfig{})
	switch source {
	case "dir":
		return imageindex.NewDirSource(imageindex.NewBuilder(cfg.Images.Dir, tokenizer, logger)), nil
	case "index":
		return imageindex.NewFileSource(cfg.Images.IndexPath), nil
	case "manifest":
		if cfg.Images.ManifestURL == "" {
			return nil, fmt.Errorf("images.manifest_url is required for --source=manifest")
		}
		return manifest.NewClient(cfg.Images.ManifestURL, cfg.Images.HTTPTimeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown image source %q (want dir, index or manifest)", source)
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}
	return cfg, logger, nil
}
