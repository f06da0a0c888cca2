package handlers

import (
	"setlist/internal/middleware"
	"setlist/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PlaylistHandler handles HTTP requests related to playlists.
type PlaylistHandler struct {
	playlistService *services.PlaylistService
	validate        *validator.Validate
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(playlistService *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the playlist routes behind authenticate.
func (h *PlaylistHandler) RegisterRoutes(router fiber.Router, authenticate fiber.Handler) {
	playlistRoutes := router.Group("/playlist", authenticate)
	playlistRoutes.Post("/create", h.CreatePlaylist)
	playlistRoutes.Post("/add-song", h.AddSong)
	playlistRoutes.Post("/remove-song", h.RemoveSong)
	playlistRoutes.Get("/:id", h.GetPlaylist)
	playlistRoutes.Put("/:id", h.UpdatePlaylist)
	playlistRoutes.Delete("/:id", h.DeletePlaylist)
}

// PlaylistRequest is the body of playlist create and update.
type PlaylistRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

// MembershipRequest names a song and the playlist it is added to or removed from.
type MembershipRequest struct {
	PlaylistID string `json:"playlist_id" validate:"required"`
	SongID     string `json:"song_id" validate:"required"`
}

// CreatePlaylist handles the creation of a new playlist owned by the caller.
func (h *PlaylistHandler) CreatePlaylist(c *fiber.Ctx) error {
	var req PlaylistRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	playlist, err := h.playlistService.CreatePlaylist(c.UserContext(), req.Title, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Playlist Created Successfully!", playlist)
}

// GetPlaylist returns a playlist with its songs and owner.
func (h *PlaylistHandler) GetPlaylist(c *fiber.Ctx) error {
	view, err := h.playlistService.GetPlaylist(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Playlist Found!", view)
}

// UpdatePlaylist renames a playlist owned by the caller.
func (h *PlaylistHandler) UpdatePlaylist(c *fiber.Ctx) error {
	var req PlaylistRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	playlist, err := h.playlistService.UpdatePlaylist(c.UserContext(), c.Params("id"), req.Title, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Playlist Updated Successfully!", playlist)
}

// DeletePlaylist deletes a playlist owned by the caller.
func (h *PlaylistHandler) DeletePlaylist(c *fiber.Ctx) error {
	if err := h.playlistService.DeletePlaylist(c.UserContext(), c.Params("id"), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Playlist Deleted Successfully!", nil)
}

// AddSong adds a song to a playlist. Adding a member again is not an error.
func (h *PlaylistHandler) AddSong(c *fiber.Ctx) error {
	var req MembershipRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	result, err := h.playlistService.AddSongToPlaylist(c.UserContext(), req.PlaylistID, req.SongID, middleware.CurrentUser(c))
	if err != nil {
		return err
	}

	message := "Song Added to Playlist Successfully!"
	if !result.Changed {
		message = "Song Already Exists in Playlist!"
	}
	return respond(c, fiber.StatusOK, message, result.Playlist)
}

// RemoveSong removes a song from a playlist. Removing a non-member is not an error.
func (h *PlaylistHandler) RemoveSong(c *fiber.Ctx) error {
	var req MembershipRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	result, err := h.playlistService.RemoveSongFromPlaylist(c.UserContext(), req.PlaylistID, req.SongID, middleware.CurrentUser(c))
	if err != nil {
		return err
	}

	message := "Song Removed from Playlist Successfully!"
	if !result.Changed {
		message = "Song Does Not Exist in Playlist!"
	}
	return respond(c, fiber.StatusOK, message, result.Playlist)
}
