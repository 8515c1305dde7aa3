package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/iryspinter/backend/internal/models"
	"github.com/iryspinter/backend/internal/notifier"
	"github.com/iryspinter/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	pinRepository  repositories.PinRepository // to verify pins and keep the likes counter
	notifier       *notifier.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, pinRepo repositories.PinRepository, n *notifier.Notifier) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		pinRepository:  pinRepo,
		notifier:       n,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/pins/:id/like", h.ToggleLike)
	g.GET("/pins/:id/likes/:user", h.GetLikeStatus)
}

// ToggleLike likes a pin the user has not liked and unlikes one they have.
// Two calls by the same user return the pin to its original state. The
// delete-if-present / insert-if-absent order plus the unique (pin, user)
// index keeps concurrent double clicks from double counting.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	pinID := c.Param("id")

	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pin, err := h.pinRepository.GetPinByID(c.Request().Context(), pinID)
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liked := false
	err = h.likeRepository.DeleteLike(pinID, req.User)
	switch {
	case err == nil:
		if err := h.pinRepository.DecrementLikes(c.Request().Context(), pinID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	case errors.Is(err, repositories.ErrLikeNotFound):
		like := &models.Like{
			PinID:       pinID,
			UserAddress: req.User,
			Txid:        req.Txid,
		}
		if err := h.likeRepository.CreateLike(like); err != nil {
			if errors.Is(err, repositories.ErrAlreadyLiked) {
				return echo.NewHTTPError(http.StatusConflict, "Pin already liked by this user")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.pinRepository.IncrementLikes(c.Request().Context(), pinID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		liked = true

		if err := h.notifier.NotifyLike(c.Request().Context(), req.User, pin); err != nil {
			log.Printf("failed to create like notification: %v", err)
		}
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.likeRepository.GetLikesCountByPinID(pinID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked, "likes": count})
}

// GetLikeStatus checks if a user has liked a specific pin. An unknown pin is
// reported the same as an absent like.
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	liked, err := h.likeRepository.HasLiked(c.Param("id"), c.Param("user"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}
