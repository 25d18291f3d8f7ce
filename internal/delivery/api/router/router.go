// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bridge/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	VendorHandler  *handler.VendorHandler
	ProductHandler *handler.ProductHandler
	ReviewHandler  *handler.ReviewHandler
	AdminHandler   *handler.AdminHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	vendorHandler  *handler.VendorHandler
	productHandler *handler.ProductHandler
	reviewHandler  *handler.ReviewHandler
	adminHandler   *handler.AdminHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		vendorHandler:  params.VendorHandler,
		productHandler: params.ProductHandler,
		reviewHandler:  params.ReviewHandler,
		adminHandler:   params.AdminHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Static segments (nearby, category, search) are registered next to :id;
// echo prefers static matches, so they never reach the :id handlers.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	users := api.Group("/users")
	{
		users.POST("", r.userHandler.RegisterUser)
		users.GET("", r.userHandler.ListUsers)
		users.GET("/nearby", r.userHandler.FindNearby)
		users.GET("/:id", r.userHandler.GetUser)
		users.PUT("/:id", r.userHandler.UpdateUser)
		users.DELETE("/:id", r.userHandler.DeleteUser)
		users.PUT("/:id/location", r.userHandler.UpdateLocation)
	}

	vendors := api.Group("/vendors")
	{
		vendors.POST("", r.vendorHandler.RegisterVendor)
		vendors.GET("", r.vendorHandler.ListVendors)
		vendors.GET("/nearby", r.vendorHandler.FindNearby)
		vendors.GET("/nearby/category/:category", r.vendorHandler.FindNearby)
		vendors.GET("/category/:category", r.vendorHandler.ListByCategory)
		vendors.GET("/:id", r.vendorHandler.GetVendor)
		vendors.PUT("/:id", r.vendorHandler.UpdateVendor)
		vendors.DELETE("/:id", r.vendorHandler.DeleteVendor)
		vendors.PUT("/:id/location", r.vendorHandler.UpdateLocation)
		vendors.GET("/:id/qr", r.vendorHandler.ShareQR)
	}

	products := api.Group("/products")
	{
		products.POST("", r.productHandler.AddProduct)
		products.GET("", r.productHandler.ListProducts)
		products.GET("/search", r.productHandler.Search)
		products.GET("/vendor/:vendorId", r.productHandler.ListByVendor)
		products.GET("/category/:category", r.productHandler.ListByCategory)
		products.GET("/:id", r.productHandler.GetProduct)
		products.PUT("/:id", r.productHandler.UpdateProduct)
		products.DELETE("/:id", r.productHandler.DeleteProduct)
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", r.reviewHandler.SubmitReview)
		reviews.GET("/product/:productId", r.reviewHandler.ListByProduct)
		reviews.GET("/product/:productId/rating", r.reviewHandler.ProductRating)
		reviews.GET("/user/:userId", r.reviewHandler.ListByUser)
		reviews.GET("/:id", r.reviewHandler.GetReview)
		reviews.PUT("/:id", r.reviewHandler.UpdateReview)
		reviews.DELETE("/:id", r.reviewHandler.DeleteReview)
	}

	admin := api.Group("/admin")
	{
		admin.GET("/users", r.adminHandler.ListUsers)
		admin.DELETE("/users/:userId", r.adminHandler.DeleteUser)
		admin.GET("/vendors", r.adminHandler.ListVendors)
		admin.DELETE("/vendors/:vendorId", r.adminHandler.DeleteVendor)
		admin.PUT("/vendors/:vendorId/products/activate", r.adminHandler.ActivateVendorProducts)
		admin.GET("/products", r.adminHandler.ListProducts)
		admin.DELETE("/products/:productId", r.adminHandler.DeleteProduct)
		admin.PUT("/products/:productId/activate", r.adminHandler.ActivateProduct)
		admin.GET("/reviews", r.adminHandler.ListReviews)
		admin.DELETE("/reviews/:reviewId", r.adminHandler.DeleteReview)
	}
}
