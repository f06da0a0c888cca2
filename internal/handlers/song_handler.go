package handlers

import (
	"setlist/internal/middleware"
	"setlist/internal/models"
	"setlist/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SongHandler handles HTTP requests related to songs.
type SongHandler struct {
	songService *services.SongService
	validate    *validator.Validate
}

// NewSongHandler creates a new SongHandler.
func NewSongHandler(songService *services.SongService) *SongHandler {
	return &SongHandler{
		songService: songService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the song routes behind authenticate. Writes
// additionally require an artist or admin.
func (h *SongHandler) RegisterRoutes(router fiber.Router, authenticate fiber.Handler) {
	songRoutes := router.Group("/song", authenticate)
	songRoutes.Post("/create", middleware.AuthenticateArtist(), h.CreateSong)
	songRoutes.Get("/search", h.SearchSongs)
	songRoutes.Get("/:id", h.GetSong)
	songRoutes.Put("/:id", middleware.AuthenticateArtist(), h.UpdateSong)
	songRoutes.Delete("/:id", middleware.AuthenticateArtist(), h.DeleteSong)
}

// CreateSong handles the creation of a new song.
func (h *SongHandler) CreateSong(c *fiber.Ctx) error {
	var attrs models.SongAttributes
	if err := bind(c, h.validate, &attrs); err != nil {
		return err
	}

	song, err := h.songService.CreateSong(c.UserContext(), attrs, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Song Created Successfully!", song)
}

// GetSong returns a song with its artist and rating summary.
func (h *SongHandler) GetSong(c *fiber.Ctx) error {
	view, err := h.songService.GetSong(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Song Found!", view)
}

// UpdateSong replaces the fields of a song managed by the caller.
func (h *SongHandler) UpdateSong(c *fiber.Ctx) error {
	var attrs models.SongAttributes
	if err := bind(c, h.validate, &attrs); err != nil {
		return err
	}

	song, err := h.songService.UpdateSong(c.UserContext(), c.Params("id"), attrs, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Song Updated Successfully!", song)
}

// DeleteSong deletes a song managed by the caller.
func (h *SongHandler) DeleteSong(c *fiber.Ctx) error {
	if err := h.songService.DeleteSong(c.UserContext(), c.Params("id"), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Song Deleted Successfully!", nil)
}

// SearchSongs queries the search index. All parameters are optional.
func (h *SongHandler) SearchSongs(c *fiber.Ctx) error {
	docs, err := h.songService.SearchSongs(c.UserContext(), services.SongSearch{
		Text:     c.Query("q"),
		Genre:    c.Query("genre"),
		ArtistID: c.Query("artist_id"),
		Size:     c.QueryInt("size"),
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Songs Found!", docs)
}
