package cmd

import (
	"context"
	"fmt"
	"os"

	"setlist/internal/config"
	"setlist/internal/database"
	"setlist/internal/services"
	"setlist/pkg/logger"
	"setlist/pkg/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "setlist",
	Short:         "setlist is a music catalog service: songs, playlists and ratings.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the logger every command uses.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, OutputPath: cfg.LogFile})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, log)
	if err != nil {
		return nil, err
	}
	log.Info("database connected", zap.String("driver", cfg.DatabaseDriver))
	return db, nil
}

// openElastic connects to the configured cluster and makes sure both indices
// exist with their mappings.
func openElastic(ctx context.Context, cfg *config.Config) (*search.ElasticIndex, error) {
	es, err := search.NewElasticIndex(cfg.ElasticsearchURLs)
	if err != nil {
		return nil, err
	}
	if err := es.Ping(ctx); err != nil {
		return nil, err
	}
	if err := es.EnsureIndex(ctx, cfg.SongIndex, services.SongIndexMapping); err != nil {
		return nil, err
	}
	if err := es.EnsureIndex(ctx, cfg.RatingIndex, services.RatingIndexMapping); err != nil {
		return nil, err
	}
	return es, nil
}

func indexNames(cfg *config.Config) services.IndexNames {
	return services.IndexNames{Songs: cfg.SongIndex, Ratings: cfg.RatingIndex}
}
