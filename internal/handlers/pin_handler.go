package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/iryspinter/backend/internal/models"
	"github.com/iryspinter/backend/internal/notifier"
	"github.com/iryspinter/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// PinHandler handles HTTP requests related to pins and owns the pin
// sale/expiration lifecycle
type PinHandler struct {
	pinRepository     repositories.PinRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
	notifier          *notifier.Notifier
}

// NewPinHandler creates a new PinHandler
func NewPinHandler(pinRepo repositories.PinRepository, likeRepo repositories.LikeRepository, commentRepo repositories.CommentRepository, n *notifier.Notifier) *PinHandler {
	return &PinHandler{
		pinRepository:     pinRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
		notifier:          n,
	}
}

// RegisterPinRoutes registers pin-related routes
func (h *PinHandler) RegisterPinRoutes(g *echo.Group) {
	g.POST("/pins", h.CreatePin)
	g.GET("/pins", h.GetPins)
	g.GET("/pins/:id", h.GetPin)
	g.GET("/pins/user/:address", h.GetPinsByUser)
	g.GET("/pins/liked/:address", h.GetLikedPins)
	g.PUT("/pins/:id", h.UpdatePin)
	g.PUT("/pins/:id/list", h.ListPinForSale)
	g.PUT("/pins/:id/transfer-ownership", h.TransferOwnership)
	g.DELETE("/pins/:id", h.DeletePin)
}

// expiresAt computes a listing deadline from a duration in days
func expiresAt(durationDays int) *time.Time {
	t := time.Now().Add(time.Duration(durationDays) * 24 * time.Hour)
	return &t
}

// sweepExpired closes elapsed listings before a read. Best effort: a failed
// sweep never fails the read it precedes.
func (h *PinHandler) sweepExpired(c echo.Context) {
	if _, err := h.pinRepository.ExpireListings(c.Request().Context(), time.Now()); err != nil {
		log.Printf("listing expiration sweep failed: %v", err)
	}
}

// CreatePin publishes a new pin
func (h *PinHandler) CreatePin(c echo.Context) error {
	var req models.CreatePinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pin := &models.Pin{
		Title:       req.Title,
		Description: req.Description,
		Owner:       req.Owner,
		MintAddress: req.MintAddress,
		ImageURL:    req.ImageURL,
		MetadataURL: req.MetadataURL,
		Price:       req.Price,
		ForSale:     req.ForSale,
		Duration:    req.Duration,
	}
	if req.Duration != nil {
		pin.ExpiresAt = expiresAt(*req.Duration)
	}

	if err := h.pinRepository.CreatePin(c.Request().Context(), pin); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, pin)
}

// GetPins retrieves all minted pins, most recent first
func (h *PinHandler) GetPins(c echo.Context) error {
	h.sweepExpired(c)

	pins, err := h.pinRepository.GetVisiblePins(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pins)
}

// GetPin retrieves a single pin by ID
func (h *PinHandler) GetPin(c echo.Context) error {
	pin, err := h.pinRepository.GetPinByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pin)
}

// GetPinsByUser retrieves the pins owned by a wallet address
func (h *PinHandler) GetPinsByUser(c echo.Context) error {
	h.sweepExpired(c)

	pins, err := h.pinRepository.GetPinsByOwner(c.Request().Context(), c.Param("address"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pins)
}

// GetLikedPins retrieves the pins a wallet address has liked
func (h *PinHandler) GetLikedPins(c echo.Context) error {
	h.sweepExpired(c)

	pinIDs, err := h.likeRepository.GetPinIDsLikedBy(c.Param("address"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pins, err := h.pinRepository.GetPinsByIDs(c.Request().Context(), pinIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pins)
}

// UpdatePin applies a partial edit to a pin. Likes and comments counters are
// ledger-owned and cannot be edited here.
func (h *PinHandler) UpdatePin(c echo.Context) error {
	var req models.UpdatePinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.MetadataURL != nil {
		fields["metadata_url"] = *req.MetadataURL
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Duration != nil {
		fields["duration"] = *req.Duration
		fields["expires_at"] = expiresAt(*req.Duration)
	}
	if req.ForSale != nil {
		fields["for_sale"] = *req.ForSale
		if !*req.ForSale {
			// delisting closes the window
			fields["expires_at"] = nil
			fields["duration"] = nil
		}
	}

	pin, err := h.pinRepository.UpdatePin(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pin)
}

// ListPinForSale puts a pin on the market with a price and an optional
// listing window. Without a duration the listing stays open indefinitely.
func (h *PinHandler) ListPinForSale(c echo.Context) error {
	var req models.ListPinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fields := bson.M{
		"for_sale": true,
		"price":    req.Price,
	}
	if req.Duration != nil {
		fields["duration"] = *req.Duration
		fields["expires_at"] = expiresAt(*req.Duration)
	} else {
		fields["duration"] = nil
		fields["expires_at"] = nil
	}

	pin, err := h.pinRepository.UpdatePin(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pin)
}

// TransferOwnership completes a sale: the pin is reassigned to the buyer,
// delisted and its price cleared. Re-listing requires an explicit new listing
// call. The previous owner is notified of the sale.
func (h *PinHandler) TransferOwnership(c echo.Context) error {
	var req models.TransferOwnershipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pin, err := h.pinRepository.GetPinByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	seller := pin.Owner
	salePrice := pin.Price

	updated, err := h.pinRepository.UpdatePin(c.Request().Context(), c.Param("id"), bson.M{
		"owner":      req.NewOwner,
		"for_sale":   false,
		"price":      nil,
		"duration":   nil,
		"expires_at": nil,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.notifier.NotifyPurchase(c.Request().Context(), seller, req.NewOwner, updated, salePrice); err != nil {
		log.Printf("failed to create purchase notification: %v", err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeletePin removes a pin and its likes and comments. Only the owner may
// delete; the pin itself is removed last so a cascade failure never leaves
// dependents without their parent.
func (h *PinHandler) DeletePin(c echo.Context) error {
	requester := c.QueryParam("requester")
	if requester == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Requester wallet address required")
	}

	pinID := c.Param("id")
	pin, err := h.pinRepository.GetPinByID(c.Request().Context(), pinID)
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if pin.Owner != requester {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this pin")
	}

	if err := h.likeRepository.DeleteByPinID(pinID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.commentRepository.DeleteByPinID(pinID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.pinRepository.DeletePin(c.Request().Context(), pinID); err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Pin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
