package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/iryspinter/backend/internal/models"
	"github.com/iryspinter/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles wallet-keyed profile requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/:address", h.GetUser)
	g.PUT("/users/:address/device-token", h.RegisterDeviceToken)
}

// GetUser returns the profile for a wallet address, creating it on first
// sight
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userRepository.GetOrCreateByWallet(c.Param("address"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

// RegisterDeviceToken stores the FCM device token used for push delivery
func (h *UserHandler) RegisterDeviceToken(c echo.Context) error {
	var req models.RegisterDeviceTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userRepository.SetDeviceToken(c.Param("address"), req.DeviceToken); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
