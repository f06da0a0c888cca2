package cmd

import (
	"context"
	"errors"

	"setlist/internal/database"
	"setlist/internal/repositories"
	"setlist/internal/services"
	"setlist/pkg/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the songs and ratings search indices from the database",
	Long: `Writes every stored song and rating into their indices. Use it to repair
the indices after a write that reached the database but not the index.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if len(cfg.ElasticsearchURLs) == 0 {
			return errors.New("ELASTICSEARCH_URLS is not set; nothing to reindex")
		}

		ctx := cmd.Context()
		index, err := openElastic(ctx, cfg)
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db)

		_, _, err = rebuildIndex(ctx, db, index, indexNames(cfg), log)
		return err
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

// rebuildIndex writes every stored song and rating into index.
func rebuildIndex(ctx context.Context, db *gorm.DB, index search.Index, names services.IndexNames, log *zap.Logger) (songs, ratings int, err error) {
	songRepo := repositories.NewGORMSongRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)
	mirror := services.NewMirror(index, names)

	songService := services.NewSongService(
		songRepo,
		ratingRepo,
		repositories.NewGORMUserRepository(db),
		repositories.NewGORMArtistRepository(db),
		mirror,
		nil,
		log,
	)
	ratingService := services.NewRatingService(ratingRepo, songRepo, mirror, log)

	songs, err = songService.Reindex(ctx)
	if err != nil {
		log.Error("song reindex stopped", zap.Int("indexed", songs), zap.Error(err))
		return songs, 0, err
	}
	ratings, err = ratingService.Reindex(ctx)
	if err != nil {
		log.Error("rating reindex stopped", zap.Int("indexed", ratings), zap.Error(err))
		return songs, ratings, err
	}

	log.Info("reindex finished", zap.Int("songs", songs), zap.Int("ratings", ratings))
	return songs, ratings, nil
}
