package handlers

import (
	"setlist/internal/middleware"
	"setlist/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RatingHandler handles HTTP requests related to ratings.
type RatingHandler struct {
	ratingService *services.RatingService
	validate      *validator.Validate
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the rating routes behind authenticate.
func (h *RatingHandler) RegisterRoutes(router fiber.Router, authenticate fiber.Handler) {
	ratingRoutes := router.Group("/rating", authenticate)
	ratingRoutes.Post("/create", h.CreateRating)
	ratingRoutes.Delete("/:id", h.DeleteRating)
}

// RatingRequest is the body of a new rating.
type RatingRequest struct {
	SongID string `json:"song_id" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// CreateRating records the caller's rating of a song.
func (h *RatingHandler) CreateRating(c *fiber.Ctx) error {
	var req RatingRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	rating, err := h.ratingService.CreateRating(c.UserContext(), req.SongID, req.Rating, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Rating Created Successfully!", rating)
}

// DeleteRating deletes a rating owned by the caller.
func (h *RatingHandler) DeleteRating(c *fiber.Ctx) error {
	if err := h.ratingService.DeleteRating(c.UserContext(), c.Params("id"), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Rating Deleted Successfully!", nil)
}
