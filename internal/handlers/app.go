package handlers

import (
	"time"

	"setlist/internal/middleware"
	"setlist/internal/repositories"
	"setlist/internal/services"
	"setlist/pkg/logger"
	"setlist/pkg/search"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators NewApp wires together.
type Deps struct {
	DB         *gorm.DB
	Index      search.Index
	IndexNames services.IndexNames
	Events     services.EventPublisher // optional
	JWTSecret  string
	JWTTTL     time.Duration
	Log        *zap.Logger
	// Health adds component states to the /health response.
	Health func() fiber.Map
}

// NewApp builds the Fiber app with every route registered.
func NewApp(deps Deps) *fiber.App {
	log := logger.OrNop(deps.Log)

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	songRepo := repositories.NewGORMSongRepository(deps.DB)
	playlistRepo := repositories.NewGORMPlaylistRepository(deps.DB)
	ratingRepo := repositories.NewGORMRatingRepository(deps.DB)
	artistRepo := repositories.NewGORMArtistRepository(deps.DB)

	// --- Services ---
	mirror := services.NewMirror(deps.Index, deps.IndexNames)
	authService := services.NewAuthService(userRepo, deps.JWTSecret, deps.JWTTTL)
	playlistService := services.NewPlaylistService(playlistRepo, songRepo, userRepo, log)
	songService := services.NewSongService(songRepo, ratingRepo, userRepo, artistRepo, mirror, deps.Events, log)
	ratingService := services.NewRatingService(ratingRepo, songRepo, mirror, log)
	artistService := services.NewArtistService(artistRepo, userRepo, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}
		if deps.Health != nil {
			for k, v := range deps.Health() {
				body[k] = v
			}
		}
		return c.Status(fiber.StatusOK).JSON(body)
	})

	authenticate := middleware.AuthenticateCommon(authService)
	NewAuthHandler(authService).RegisterRoutes(app)
	NewPlaylistHandler(playlistService).RegisterRoutes(app, authenticate)
	NewSongHandler(songService).RegisterRoutes(app, authenticate)
	NewRatingHandler(ratingService).RegisterRoutes(app, authenticate)
	NewArtistHandler(artistService).RegisterRoutes(app, authenticate)

	return app
}
