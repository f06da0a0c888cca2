package handlers

import (
	"setlist/internal/middleware"
	"setlist/internal/models"
	"setlist/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ArtistHandler handles HTTP requests related to artist profiles.
type ArtistHandler struct {
	artistService *services.ArtistService
	validate      *validator.Validate
}

// NewArtistHandler creates a new ArtistHandler.
func NewArtistHandler(artistService *services.ArtistService) *ArtistHandler {
	return &ArtistHandler{
		artistService: artistService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the artist routes behind authenticate.
func (h *ArtistHandler) RegisterRoutes(router fiber.Router, authenticate fiber.Handler) {
	artistRoutes := router.Group("/artist", authenticate)
	artistRoutes.Post("/create", middleware.AuthenticateArtist(), h.CreateArtist)
	artistRoutes.Get("/:id", h.GetArtist)
}

// CreateArtist creates an artist profile.
func (h *ArtistHandler) CreateArtist(c *fiber.Ctx) error {
	var attrs models.ArtistAttributes
	if err := bind(c, h.validate, &attrs); err != nil {
		return err
	}

	artist, err := h.artistService.CreateArtist(c.UserContext(), attrs, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Artist Created Successfully!", artist)
}

// GetArtist returns an artist profile.
func (h *ArtistHandler) GetArtist(c *fiber.Ctx) error {
	artist, err := h.artistService.GetArtist(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Artist Found!", artist)
}
