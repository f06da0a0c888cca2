package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"setlist/internal/config"
	"setlist/internal/database"
	"setlist/internal/handlers"
	"setlist/internal/services"
	"setlist/pkg/rabbitmq"
	"setlist/pkg/search"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		return serve(cmd.Context(), cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	// --- Database ---
	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		return err
	}

	// --- Search index ---
	var index search.Index
	searchBackend := "memory"
	if len(cfg.ElasticsearchURLs) > 0 {
		es, err := openElastic(ctx, cfg)
		if err != nil {
			log.Warn("elasticsearch unavailable, using in-memory index", zap.Strings("urls", cfg.ElasticsearchURLs), zap.Error(err))
		} else {
			index = es
			searchBackend = "elasticsearch"
		}
	}
	if index == nil {
		// The in-memory index starts empty; load it from the database.
		index = search.NewMemoryIndex()
		if _, _, err := rebuildIndex(ctx, db, index, indexNames(cfg), log); err != nil {
			return err
		}
	}
	log.Info("search index ready", zap.String("backend", searchBackend))

	// --- Catalog events ---
	var events services.EventPublisher
	eventsState := "disabled"
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.Warn("rabbitmq unavailable, catalog events disabled", zap.Error(err))
		} else {
			defer mqClient.Close()
			events = mqClient
			eventsState = "connected"
			if err := mqClient.ConsumeCatalogEvents(logCatalogEvent(log)); err != nil {
				log.Warn("failed to start catalog event consumer", zap.Error(err))
			}
		}
	}

	app := handlers.NewApp(handlers.Deps{
		DB:         db,
		Index:      index,
		IndexNames: indexNames(cfg),
		Events:     events,
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
		Log:        log,
		Health: func() fiber.Map {
			return fiber.Map{"search": searchBackend, "events": eventsState}
		},
	})

	// --- Start HTTP Server ---
	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.AppPort))
		listenErr <- app.Listen(cfg.AppPort)
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-listenErr:
		return err
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("error during shutdown", zap.Error(err))
		return err
	}
	log.Info("server gracefully stopped")
	return nil
}

// logCatalogEvent records every catalog event read back from the queue.
func logCatalogEvent(log *zap.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event services.CatalogEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			// Malformed messages are dropped rather than requeued forever.
			log.Warn("discarding malformed catalog event", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(err))
			return nil
		}
		log.Info("catalog event",
			zap.String("event", event.Event),
			zap.String("song_id", event.SongID),
			zap.Time("at", event.At),
		)
		return nil
	}
}
