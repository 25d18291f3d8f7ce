package handler

import (
	"log/slog"
	"net/http"

	"bridge/internal/delivery/api/response"
	"bridge/internal/domain/entity"
	"bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler serves /api/products.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// AddProductRequest represents the request body for creating a product.
// New products are active unless is_active is sent as false.
type AddProductRequest struct {
	VendorID    uuid.UUID `json:"vendor_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description"`
	Price       float64   `json:"price" validate:"min=0"`
	Category    string    `json:"category" validate:"max=100"`
	ImageURL    string    `json:"image_url" validate:"omitempty,url"`
	IsActive    *bool     `json:"is_active"`
}

// UpdateProductRequest carries the optional product fields.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
	IsActive    *bool    `json:"is_active"`
}

// SearchQuery is the query string of a product search.
type SearchQuery struct {
	Term string `query:"q"`
}

func (h *ProductHandler) AddProduct(c echo.Context) error {
	var req AddProductRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.AddProductInput{
		VendorID:    req.VendorID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	product, err := h.productUC.AddProduct(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// ListProducts lists active products.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productUC.ListActiveProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, products)
}

func (h *ProductHandler) ListByVendor(c echo.Context) error {
	vendorID, err := pathUUID(c, "vendorId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	products, err := h.productUC.ListProductsByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, products)
}

func (h *ProductHandler) ListByCategory(c echo.Context) error {
	products, err := h.productUC.ListProductsByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, products)
}

func (h *ProductHandler) Search(c echo.Context) error {
	var query SearchQuery
	if err := bind(c, &query); err != nil {
		return response.HandleAppError(c, err)
	}

	products, err := h.productUC.SearchProducts(c.Request().Context(), query.Term)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, products)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateProductRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	patch := entity.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), id, patch)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
