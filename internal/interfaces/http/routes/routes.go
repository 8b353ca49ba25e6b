// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// SetupRoutes registers every storefront route on rg. The Session middleware
// must already be installed on rg.
func SetupRoutes(rg *gin.RouterGroup, catalog *product.Catalog) {
	SetupProductRoutes(rg, catalog)
	SetupFilterRoutes(rg)
	SetupCartRoutes(rg, catalog)
	SetupWishlistRoutes(rg, catalog)
	SetupAuthRoutes(rg)
	SetupCheckoutRoutes(rg)
}

// SetupProductRoutes sets up product and category routes
func SetupProductRoutes(rg *gin.RouterGroup, catalog *product.Catalog) {
	productHandler := handlers.NewProductHandler(catalog)
	categoryHandler := handlers.NewCategoryHandler(catalog)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", categoryHandler.GetCategories)
		categories.GET("/:slug/products", categoryHandler.GetCategoryProducts)
	}
}

// SetupFilterRoutes sets up the session filter routes
func SetupFilterRoutes(rg *gin.RouterGroup) {
	filterHandler := handlers.NewFilterHandler()

	filters := rg.Group("/filters")
	{
		filters.GET("", filterHandler.GetFilters)
		filters.PATCH("", filterHandler.UpdateFilters)
		filters.DELETE("", filterHandler.ResetFilters)
		filters.PUT("/sort", filterHandler.SetSortOption)
		filters.PUT("/search", filterHandler.SetSearchQuery)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, catalog *product.Catalog) {
	cartHandler := handlers.NewCartHandler(catalog)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:productId", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveFromCart)
	}
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, catalog *product.Catalog) {
	wishlistHandler := handlers.NewWishlistHandler(catalog)

	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("/items", wishlistHandler.AddToWishlist)
		wishlist.GET("/items/:productId", wishlistHandler.CheckWishlist)
		wishlist.DELETE("/items/:productId", wishlistHandler.RemoveFromWishlist)
		wishlist.POST("/items/:productId/move-to-cart", wishlistHandler.MoveToCart)
	}
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup) {
	authHandler := handlers.NewAuthHandler()

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)

		protected := auth.Group("")
		protected.Use(middleware.RequireLogin())
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupCheckoutRoutes sets up the simulated checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup) {
	checkoutHandler := handlers.NewCheckoutHandler()

	checkout := rg.Group("/checkout")
	{
		checkout.POST("", checkoutHandler.StartCheckout)
		checkout.GET("", checkoutHandler.GetCheckoutStatus)
	}
}
