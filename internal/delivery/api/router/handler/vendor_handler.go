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

// VendorHandlerParams holds dependencies for VendorHandler, injected by Fx.
type VendorHandlerParams struct {
	fx.In

	VendorUC usecase.VendorUsecase
	Logger   *slog.Logger
}

// VendorHandler serves /api/vendors.
type VendorHandler struct {
	vendorUC usecase.VendorUsecase
	logger   *slog.Logger
}

// NewVendorHandler is the constructor for VendorHandler
func NewVendorHandler(params VendorHandlerParams) *VendorHandler {
	return &VendorHandler{
		vendorUC: params.VendorUC,
		logger:   params.Logger,
	}
}

// RegisterVendorRequest represents the request body for creating a vendor
type RegisterVendorRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Email       string           `json:"email" validate:"required,email"`
	Category    string           `json:"category" validate:"max=100"`
	Description string           `json:"description"`
	Phone       string           `json:"phone" validate:"max=50"`
	Address     string           `json:"address"`
	Location    *LocationRequest `json:"location" validate:"omitempty"`
}

// UpdateVendorRequest carries the optional vendor fields.
type UpdateVendorRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	Address     *string `json:"address"`
}

func (h *VendorHandler) RegisterVendor(c echo.Context) error {
	var req RegisterVendorRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.RegisterVendorInput{
		Name:        req.Name,
		Email:       req.Email,
		Category:    req.Category,
		Description: req.Description,
		Phone:       req.Phone,
		Address:     req.Address,
	}
	if req.Location != nil {
		input.Location = req.Location.coordinate().Ptr()
	}

	vendor, err := h.vendorUC.RegisterVendor(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, vendor)
}

func (h *VendorHandler) GetVendor(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	vendor, err := h.vendorUC.GetVendor(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, vendor)
}

func (h *VendorHandler) ListVendors(c echo.Context) error {
	vendors, err := h.vendorUC.ListVendors(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, vendors)
}

func (h *VendorHandler) ListByCategory(c echo.Context) error {
	vendors, err := h.vendorUC.ListVendorsByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, vendors)
}

func (h *VendorHandler) UpdateVendor(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateVendorRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	patch := entity.VendorPatch{
		Name:        req.Name,
		Email:       req.Email,
		Category:    req.Category,
		Description: req.Description,
		Phone:       req.Phone,
		Address:     req.Address,
	}

	vendor, err := h.vendorUC.UpdateVendor(c.Request().Context(), id, patch)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, vendor)
}

func (h *VendorHandler) UpdateLocation(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req LocationRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	vendor, err := h.vendorUC.UpdateVendorLocation(c.Request().Context(), id, req.coordinate())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, vendor)
}

func (h *VendorHandler) DeleteVendor(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.vendorUC.DeleteVendor(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// FindNearby serves both /nearby (category from the query string) and
// /nearby/category/:category.
func (h *VendorHandler) FindNearby(c echo.Context) error {
	var query NearbyQuery
	if err := bind(c, &query); err != nil {
		return response.HandleAppError(c, err)
	}
	if category := c.Param("category"); category != "" {
		query.Category = category
	}

	matches, err := h.vendorUC.FindNearbyVendors(c.Request().Context(), query.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, matches)
}

// ShareQR returns a PNG QR code that encodes the vendor's profile link.
func (h *VendorHandler) ShareQR(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.vendorUC.VendorShareQR(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
