package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/controllers"
	"github.com/crabkhai/crabkhai-shop/middlewares"
)

func SetupRouter(db *gorm.DB, rl *middlewares.RateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Must be attached before any route is registered; gin snapshots the
	// handler chain per route at registration time.
	r.Use(rl.RateLimit())

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	orderCtrl := controllers.NewOrderController(db)
	couponCtrl := controllers.NewCouponController(db)
	securityCtrl := controllers.NewSecurityController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	heroCtrl := controllers.NewHeroController(db)
	promoCtrl := controllers.NewPromoController(db)
	reviewCtrl := controllers.NewReviewController(db)
	sectionCtrl := controllers.NewSectionController(db)
	storyCtrl := controllers.NewStoryController(db)
	settingsCtrl := controllers.NewSettingsController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register and device setup
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
		public.POST("/admin/security/authorize-device", securityCtrl.AuthorizeDevice)
	}

	// -- STOREFRONT (no auth) --
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:product_id", productCtrl.GetProductByID)
	r.GET("/hero-slides", heroCtrl.GetHeroSlides)
	r.GET("/promo", promoCtrl.GetActivePromo)
	r.GET("/sections", sectionCtrl.GetHomeSections)
	r.GET("/products/:product_id/reviews", reviewCtrl.GetProductReviews)
	r.POST("/products/:product_id/reviews", reviewCtrl.CreateReview)
	r.GET("/story", storyCtrl.GetStorySections)
	r.GET("/site-config", settingsCtrl.GetSiteConfig)
	r.POST("/coupons/validate", couponCtrl.ValidateCoupon)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByPublicID)

	// Device trust check is ambient-cookie only, usable before setup
	r.GET("/admin/security/check", securityCtrl.CheckDeviceTrust)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES (device-gated)
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.DeviceTrust(db))
	{
		admin.GET("/events/ws", controllers.EventsHandler)
		admin.GET("/dashboard", adminCtrl.GetDashboardStats)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/pending-count", orderCtrl.GetPendingCount)
		admin.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
		admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:category_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:category_id", categoryCtrl.DeleteCategory)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:product_id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:product_id", productCtrl.DeleteProduct)

		admin.GET("/coupons", couponCtrl.GetAllCoupons)
		admin.POST("/coupons", couponCtrl.CreateCoupon)
		admin.PATCH("/coupons/:coupon_id", couponCtrl.UpdateCoupon)
		admin.PATCH("/coupons/:coupon_id/toggle", couponCtrl.ToggleCoupon)
		admin.DELETE("/coupons/:coupon_id", couponCtrl.DeleteCoupon)

		admin.GET("/notifications", notificationCtrl.GetAllNotifications)
		admin.POST("/notifications", notificationCtrl.CreateNotification)
		admin.PATCH("/notifications/:notification_id/read", notificationCtrl.MarkAsRead)
		admin.DELETE("/notifications", notificationCtrl.ClearNotifications)

		admin.GET("/expenses", inventoryCtrl.GetExpenses)
		admin.POST("/expenses", inventoryCtrl.AddExpense)
		admin.DELETE("/expenses/:expense_id", inventoryCtrl.DeleteExpense)
		admin.GET("/inventory/stats", inventoryCtrl.GetInventoryStats)
		admin.PATCH("/stock/:product_id", inventoryCtrl.UpdateStock)
		admin.PATCH("/stock/:product_id/adjust", inventoryCtrl.AdjustStock)

		admin.POST("/hero-slides", heroCtrl.CreateHeroSlide)
		admin.PATCH("/hero-slides/reorder", heroCtrl.ReorderHeroSlides)
		admin.PATCH("/hero-slides/:slide_id", heroCtrl.UpdateHeroSlide)
		admin.DELETE("/hero-slides/:slide_id", heroCtrl.DeleteHeroSlide)

		admin.GET("/promos", promoCtrl.GetAllPromos)
		admin.POST("/promos", promoCtrl.CreatePromo)
		admin.PATCH("/promos/:promo_id", promoCtrl.UpdatePromo)
		admin.PATCH("/promos/:promo_id/toggle", promoCtrl.TogglePromo)
		admin.DELETE("/promos/:promo_id", promoCtrl.DeletePromo)

		admin.GET("/sections", sectionCtrl.GetAllSections)
		admin.POST("/sections", sectionCtrl.CreateSection)
		admin.PATCH("/sections/reorder", sectionCtrl.ReorderSections)
		admin.PATCH("/sections/:section_id", sectionCtrl.UpdateSection)
		admin.PUT("/sections/:section_id/products", sectionCtrl.AssignProducts)
		admin.DELETE("/sections/:section_id", sectionCtrl.DeleteSection)

		admin.PUT("/story", storyCtrl.UpsertStorySection)
		admin.PUT("/site-config", settingsCtrl.UpdateSiteConfig)

		admin.GET("/security/devices", securityCtrl.ListDevices)
		admin.DELETE("/security/devices/:device_id", securityCtrl.RevokeDevice)
		admin.GET("/security/logs", securityCtrl.ListSecurityLogs)
		admin.PUT("/security/setup-token", securityCtrl.RotateSetupToken)

		// User-bound admin actions also need an authenticated session
		session := admin.Group("/")
		session.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("admin"))
		{
			session.GET("/users", userCtrl.GetAllUsers)
			session.GET("/profile", userCtrl.GetProfile)
			session.POST("/logout", userCtrl.Logout)
		}
	}

	return r
}
