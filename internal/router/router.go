package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"
)

// Register wires every route onto the Echo instance.  Token verification
// and role authorization are separate, composable gates: JWTAuth
// establishes identity, RequireRole checks permission, and each route
// group applies only the gates it needs.
func Register(e *echo.Echo, jwtSecret string, a *handler.AuthHandler, p *handler.ProductHandler, o *handler.OrderHandler) {
	e.GET("/healthz", handler.Health)

	// Auth: register/login/refresh are open, profile requires identity.
	auth := e.Group("/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/refresh-token", a.Refresh)

	profile := auth.Group("/profile", middleware.JWTAuth(jwtSecret))
	profile.GET("", a.Profile)
	profile.PUT("", a.UpdateProfile)

	// Catalog: reads are public, mutations are gated by role.  Deleting
	// products is admin-only; creating and updating also allow managers.
	products := e.Group("/products")
	products.GET("", p.Search)
	products.GET("/:id", p.GetByID)

	manage := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	products.POST("", p.Create, middleware.JWTAuth(jwtSecret), manage)
	products.PUT("/:id", p.Update, middleware.JWTAuth(jwtSecret), manage)
	products.DELETE("/:id", p.Delete, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))

	// Orders: every operation requires an authenticated identity.
	orders := e.Group("/orders", middleware.JWTAuth(jwtSecret))
	orders.POST("", o.Create)
	orders.GET("/:orderId", o.GetByID)
	orders.GET("/user/:userId", o.GetByUserID)
	orders.PUT("/:orderId", o.Update)
	orders.DELETE("/:orderId", o.Cancel)
}
