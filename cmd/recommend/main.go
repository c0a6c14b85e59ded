// Command recommend 抓取一份食譜頁面，為單一使用者推薦食譜並印出結果。
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/core/scraper"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultUser         = "JohnDoe"
	defaultInstructions = "Mix all ingredients in a bowl"
)

type options struct {
	url          string
	user         string
	instructions string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a recipe from a scraped page",
		Long: `Scrapes a recipe page into an in-memory catalog, stores the user's
preferred instructions and prints the most similar recipe.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// 推薦結果寫到 stdout，日誌只在 verbose 時開啟
			if opts.verbose {
				if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				defer common.Sync()
			}

			return run(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "recipe page to scrape (default: scraper.url from config)")
	cmd.Flags().StringVarP(&opts.user, "user", "u", defaultUser, "username to store preferences for")
	cmd.Flags().StringVarP(&opts.instructions, "instructions", "i", defaultInstructions, "preferred cooking instructions")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable logging")

	return cmd
}

// run 抓取失敗不中止：目錄維持空白並印出無推薦訊息
func run(ctx context.Context, out io.Writer, cfg *config.Config, opts options) error {
	url := opts.url
	if url == "" {
		url = cfg.Scraper.URL
	}

	store, err := cache.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	svc := recipe.NewService(cfg, scraper.New(cfg.Scraper, store))

	if _, err := svc.Ingest(ctx, url); err != nil {
		common.LogWarn("食譜擷取失敗，以空目錄繼續",
			zap.String("url", url),
			zap.Error(err),
		)
	}

	svc.SetPreferences(opts.user, common.UserPreferences{Instructions: opts.instructions})

	match, err := svc.RecommendForUser(opts.user)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if match == nil {
		_, err = fmt.Fprintln(out, common.FormatRecommendation("", false))
		return err
	}
	common.LogDebug("Recommendation selected",
		zap.String("title", match.Entry.Title()),
		zap.Float64("score", match.Score),
	)
	_, err = fmt.Fprintln(out, common.FormatRecommendation(match.Entry.Title(), true))
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
