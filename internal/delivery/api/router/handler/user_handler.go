package handler

import (
	"log/slog"
	"net/http"

	"bridge/internal/delivery/api/response"
	"bridge/internal/domain/entity"
	"bridge/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves /api/users.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// RegisterUserRequest represents the request body for creating a user
type RegisterUserRequest struct {
	Name     string           `json:"name" validate:"required,max=255"`
	Email    string           `json:"email" validate:"required,email"`
	Location *LocationRequest `json:"location" validate:"omitempty"`
}

// UpdateUserRequest carries the optional profile fields. Location changes go
// through UpdateLocation.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (h *UserHandler) RegisterUser(c echo.Context) error {
	var req RegisterUserRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.RegisterUserInput{Name: req.Name, Email: req.Email}
	if req.Location != nil {
		input.Location = req.Location.coordinate().Ptr()
	}

	user, err := h.userUC.RegisterUser(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, users)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), id, entity.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *UserHandler) UpdateLocation(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req LocationRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.UpdateUserLocation(c.Request().Context(), id, req.coordinate())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// FindNearby lists located users within radiusKm of the query point, nearest first.
func (h *UserHandler) FindNearby(c echo.Context) error {
	var query NearbyQuery
	if err := bind(c, &query); err != nil {
		return response.HandleAppError(c, err)
	}

	matches, err := h.userUC.FindNearbyUsers(c.Request().Context(), query.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, matches)
}
