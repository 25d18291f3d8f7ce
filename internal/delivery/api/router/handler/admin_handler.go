package handler

import (
	"log/slog"
	"net/http"

	"bridge/internal/delivery/api/response"
	"bridge/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	UserUC    usecase.UserUsecase
	VendorUC  usecase.VendorUsecase
	ProductUC usecase.ProductUsecase
	ReviewUC  usecase.ReviewUsecase
	Logger    *slog.Logger
}

// AdminHandler serves /api/admin. It composes the regular use cases and adds
// the views that include inactive products.
type AdminHandler struct {
	userUC    usecase.UserUsecase
	vendorUC  usecase.VendorUsecase
	productUC usecase.ProductUsecase
	reviewUC  usecase.ReviewUsecase
	logger    *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		userUC:    params.UserUC,
		vendorUC:  params.VendorUC,
		productUC: params.ProductUC,
		reviewUC:  params.ReviewUC,
		logger:    params.Logger,
	}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, users)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathUUID(c, "userId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListVendors(c echo.Context) error {
	vendors, err := h.vendorUC.ListVendors(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, vendors)
}

func (h *AdminHandler) DeleteVendor(c echo.Context) error {
	id, err := pathUUID(c, "vendorId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.vendorUC.DeleteVendor(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListProducts lists every product, inactive ones included.
func (h *AdminHandler) ListProducts(c echo.Context) error {
	products, err := h.productUC.ListAllProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, products)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, err := pathUUID(c, "productId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ActivateProduct(c echo.Context) error {
	id, err := pathUUID(c, "productId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.ActivateProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

func (h *AdminHandler) ActivateVendorProducts(c echo.Context) error {
	vendorID, err := pathUUID(c, "vendorId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	products, err := h.productUC.ActivateProductsByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.logger.Info("Admin activated vendor products",
		slog.String("vendor_id", vendorID.String()),
		slog.Int("products", len(products)),
	)

	return response.List(c, products)
}

func (h *AdminHandler) ListReviews(c echo.Context) error {
	reviews, err := h.reviewUC.ListAllReviews(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, reviews)
}

func (h *AdminHandler) DeleteReview(c echo.Context) error {
	id, err := pathUUID(c, "reviewId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.reviewUC.DeleteReview(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
