package photos

import (
	"errors"

	"photo-sync/core/logger"
	"photo-sync/core/source"
	"photo-sync/feature/photos/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for albums.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the album routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/albums")
	group.Post("/sync", h.HandleSyncAlbum)
	group.Get("/:token", h.HandleGetAlbum)
	group.Get("/:token/posts", h.HandleGetPosts)
}

// SyncRequest is the body of a sync request.
type SyncRequest struct {
	// Input is a pasted share link, a raw URL, or a bare album token.
	Input string `json:"input"`
	// BaseURL optionally overrides the album API base URL.
	BaseURL string `json:"base_url"`
	// Post drafts a post from the most recent batch.
	Post bool `json:"post"`
	// Mirror copies imported images into the archive bucket.
	Mirror bool `json:"mirror"`
}

// HandleSyncAlbum runs one reconciliation pass for an album.
// @Summary Sync Album
// @Description Fetch the shared album stream and reconcile its photos into the database.
// @Tags albums
// @Accept json
// @Produce json
// @Param request body SyncRequest true "Sync Request"
// @Success 200 {object} sync.Report "Sync Report"
// @Failure 400 {object} map[string]string "Invalid Input"
// @Failure 502 {object} map[string]string "Upstream Failure"
// @Router /albums/sync [post]
func (h *Handler) HandleSyncAlbum(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	report, err := h.service.Sync(c.Context(), req.Input, sync.Options{
		BaseURL:        req.BaseURL,
		SynthesizePost: req.Post,
		Mirror:         req.Mirror,
	})
	if err != nil {
		if errors.Is(err, source.ErrNoToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Album sync failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleGetAlbum returns an album and its most recent photos.
// @Summary Get Album
// @Description Get an album's sync status and most recent photos.
// @Tags albums
// @Produce json
// @Param token path string true "Album Token"
// @Param limit query int false "Maximum photos returned (default 50)"
// @Success 200 {object} AlbumView "Album"
// @Failure 404 {object} map[string]string "Unknown Album"
// @Router /albums/{token} [get]
func (h *Handler) HandleGetAlbum(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	view, err := h.service.GetAlbum(c.Context(), c.Params("token"), c.QueryInt("limit"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "unknown album",
			})
		}
		l.Error("Album lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(view)
}

// HandleGetPosts returns an album's synthesized posts.
// @Summary Get Album Posts
// @Description Get the draft posts synthesized from an album's photo batches.
// @Tags albums
// @Produce json
// @Param token path string true "Album Token"
// @Success 200 {array} models.Post "Posts"
// @Failure 404 {object} map[string]string "Unknown Album"
// @Router /albums/{token}/posts [get]
func (h *Handler) HandleGetPosts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	posts, err := h.service.GetPosts(c.Context(), c.Params("token"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "unknown album",
			})
		}
		l.Error("Post listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(posts)
}
