package router

import "github.com/inslanka/shop-api/pkg/auth"

func InitializeRoutes() {
	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", Register)
			authGroup.POST("/login", Login)
			authGroup.POST("/refresh", RefreshSession)
			authGroup.POST("/logout", Logout)
			authGroup.GET("/me", AuthRequired(), GetProfile)
			authGroup.PUT("/me", AuthRequired(), UpdateProfile)
		}

		products := api.Group("/products")
		{
			products.GET("/", GetAllProducts)
			products.GET("/:slug", GetProductBySlug)
			products.GET("/:slug/reviews", GetProductReviews)
			products.POST("/", AuthRequired(), RequireAction(auth.ActionManageCatalog), CreateNewProducts)
			products.PUT("/:slug", AuthRequired(), RequireAction(auth.ActionManageCatalog), EditProductBySlug)
			products.DELETE("/:slug", AuthRequired(), RequireAction(auth.ActionManageCatalog), DeleteProductBySlug)
			products.POST("/:slug/reviews", AuthRequired(), CreateProductReview)
		}

		categories := api.Group("/categories")
		{
			categories.GET("/", GetAllCategories)
		}

		cart := api.Group("/cart")
		cart.Use(AuthRequired())
		{
			cart.GET("/", GetCart)
			cart.POST("/items", AddToCart)
			cart.PUT("/items/:sku", UpdateCartItem)
			cart.DELETE("/items/:sku", RemoveFromCart)
			cart.DELETE("/clear", ClearCart)
		}

		guestCart := api.Group("/guest-cart")
		{
			guestCart.GET("/", GetGuestCart)
			guestCart.POST("/items", AddToGuestCart)
			guestCart.PUT("/items/:sku", UpdateGuestCartItem)
			guestCart.DELETE("/clear", ClearGuestCart)
		}

		orders := api.Group("/orders")
		orders.Use(AuthRequired())
		{
			orders.POST("/checkout", Checkout)
			orders.GET("/", GetMyOrders)
			orders.GET("/:orderNumber", GetOrderByNumber)
			orders.POST("/:orderNumber/cancel", CancelOrder)
			orders.PUT("/:orderNumber/status", RequireAction(auth.ActionManageOrders), UpdateOrderStatus)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/webhook", PaymentWebhook)
		}

		inventory := api.Group("/inventory")
		inventory.Use(AuthRequired(), RequireAction(auth.ActionViewInventory))
		{
			inventory.GET("/", ListStock)
			inventory.GET("/:sku", GetStockBySKU)
			inventory.GET("/:sku/movements", GetStockMovements)
			inventory.PUT("/:sku", RequireAction(auth.ActionManageInventory), SetStockLevel)
			inventory.POST("/:sku/adjust", RequireAction(auth.ActionManageInventory), AdjustStock)
		}

		coupons := api.Group("/coupons")
		{
			coupons.POST("/validate", ValidateCoupon)
			coupons.GET("/", AuthRequired(), RequireAction(auth.ActionManageCoupons), ListCoupons)
			coupons.POST("/", AuthRequired(), RequireAction(auth.ActionManageCoupons), CreateCoupon)
			coupons.DELETE("/:code", AuthRequired(), RequireAction(auth.ActionManageCoupons), DeactivateCoupon)
		}

		flashSales := api.Group("/flash-sales")
		{
			flashSales.GET("/live", GetLiveFlashSales)
			flashSales.POST("/", AuthRequired(), RequireAction(auth.ActionManageCoupons), CreateFlashSale)
		}

		shipping := api.Group("/shipping")
		{
			shipping.GET("/zones", GetShippingZones)
			shipping.GET("/methods", GetShippingMethods)
			shipping.POST("/zones", AuthRequired(), RequireAction(auth.ActionManageShipping), CreateShippingZone)
			shipping.POST("/methods", AuthRequired(), RequireAction(auth.ActionManageShipping), CreateShippingMethod)
		}

		reviews := api.Group("/reviews")
		reviews.Use(AuthRequired())
		{
			reviews.DELETE("/:id", DeleteReview)
		}

		analytics := api.Group("/analytics")
		analytics.Use(AuthRequired(), RequireAction(auth.ActionViewAnalytics))
		{
			analytics.GET("/sales", GetSalesAnalytics)
			analytics.GET("/top-products", GetTopProducts)
			analytics.GET("/inventory", GetInventoryAnalytics)

			aiAnalytics := analytics.Group("/ai")
			{
				aiAnalytics.GET("/sales-report", GenerateAISalesReport)
				aiAnalytics.GET("/inventory-report", GenerateAIInventoryReport)
				aiAnalytics.GET("/product-analysis", GenerateAIProductAnalysis)
			}
		}
	}
}
