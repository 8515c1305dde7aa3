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

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	pinRepository     repositories.PinRepository // to verify pins and keep the comments counter
	notifier          *notifier.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, pinRepo repositories.PinRepository, n *notifier.Notifier) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		pinRepository:     pinRepo,
		notifier:          n,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/pins/:id/comments", h.CreateComment)
	g.GET("/pins/:id/comments", h.GetCommentsByPinID)
}

// CreateComment adds a comment to a pin
func (h *CommentHandler) CreateComment(c echo.Context) error {
	pinID := c.Param("id")

	var req models.CreateCommentRequest
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

	comment := &models.Comment{
		PinID:       pinID,
		UserAddress: req.User,
		Content:     req.Content,
		Txid:        req.Txid,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.pinRepository.IncrementComments(c.Request().Context(), pinID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.notifier.NotifyComment(c.Request().Context(), req.User, pin); err != nil {
		log.Printf("failed to create comment notification: %v", err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPinID retrieves all comments for a pin, most recent first
func (h *CommentHandler) GetCommentsByPinID(c echo.Context) error {
	pinID := c.Param("id")

	_, err := h.pinRepository.GetPinByID(c.Request().Context(), pinID)
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByPinID(pinID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comments)
}
