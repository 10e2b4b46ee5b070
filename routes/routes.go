package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/configs"
	"github.com/n4mp3un9/car-rental-sub001/controllers"
	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/middlewares"
	"github.com/n4mp3un9/car-rental-sub001/repository"
	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
	"github.com/n4mp3un9/car-rental-sub001/ws"
)

// RegisterRoutes wires every handler. Groups are split by capability, so
// handlers never check roles themselves. hub may be nil when live
// notifications are not wanted.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.Hub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.Static("/uploads", cfg.UploadDir)

	var notifier services.Notifier = services.NopNotifier{}
	if hub != nil {
		notifier = hub
	}
	storage := utils.NewStorage(cfg.UploadDir, cfg.PublicBaseURL)
	users := repository.NewUserRepository(db)

	// Services
	authSvc := services.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL)
	carSvc := services.NewCarService(db, storage)
	rentalSvc := services.NewRentalService(db, notifier, cfg.CancelWindow)
	paymentSvc := services.NewPaymentService(db, storage, notifier)
	reviewSvc := services.NewReviewService(repository.NewReviewRepository(db), repository.NewRentalRepository(db))
	blacklistSvc := services.NewBlacklistService(repository.NewBlacklistRepository(db), users)
	shopSvc := services.NewShopService(db)
	notifySvc := services.NewNotificationService(db)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	carCtrl := controllers.NewCarController(carSvc)
	rentalCtrl := controllers.NewRentalController(rentalSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)
	blacklistCtrl := controllers.NewBlacklistController(blacklistSvc)
	shopCtrl := controllers.NewShopController(shopSvc, notifySvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret, authSvc)

	api := r.Group("/api")

	// Public
	api.POST("/register", authCtrl.Register)
	api.POST("/login", authCtrl.Login)
	pub := api.Group("", middlewares.OptionalAuth(cfg.JWTSecret))
	{
		pub.GET("/cars", carCtrl.Search)
		pub.GET("/cars/:id", carCtrl.Get)
		pub.GET("/cars/:id/images", carCtrl.ListImages)
		pub.GET("/cars/:id/reviews", reviewCtrl.ListForCar)
		pub.GET("/shops/:id", shopCtrl.Profile)
		pub.GET("/shops/:id/reviews", reviewCtrl.ListForShop)
	}

	// Any signed-in user
	me := api.Group("", auth)
	{
		me.GET("/me", authCtrl.Me)
		me.PUT("/profile", authCtrl.UpdateProfile)
		me.PUT("/profile/password", authCtrl.ChangePassword)
	}

	// Customer
	cust := api.Group("/customer", auth, middlewares.RequireRole(entity.RoleCustomer))
	{
		cust.POST("/rentals", rentalCtrl.Create)
		cust.GET("/rentals", rentalCtrl.ListMine)
		cust.GET("/rentals/:id", rentalCtrl.GetMine)
		cust.PUT("/rentals/:id/cancel", rentalCtrl.CustomerCancel)
		cust.PUT("/rentals/:id/return", rentalCtrl.RequestReturn)
		cust.POST("/rentals/:id/payment", paymentCtrl.SubmitProof)

		cust.GET("/reviews", reviewCtrl.ListMine)
		cust.POST("/reviews", reviewCtrl.Create)
		cust.PUT("/reviews/:id", reviewCtrl.Update)
		cust.DELETE("/reviews/:id", reviewCtrl.Delete)

		cust.GET("/notifications", shopCtrl.CustomerNotifications)
	}

	// Shop: car management
	cars := api.Group("/cars", auth, middlewares.RequireRole(entity.RoleShop))
	{
		cars.POST("", carCtrl.Create)
		cars.PUT("/:id", carCtrl.Update)
		cars.PUT("/:id/status", carCtrl.SetStatus)
		cars.DELETE("/:id", carCtrl.Delete)
		cars.POST("/:id/images", carCtrl.UploadImages)
		cars.PUT("/:id/images/:imageId/primary", carCtrl.SetPrimaryImage)
		cars.DELETE("/:id/images/:imageId", carCtrl.DeleteImage)
	}

	// Shop: back office
	shop := api.Group("/shop", auth, middlewares.RequireRole(entity.RoleShop))
	{
		shop.GET("/cars", carCtrl.ListMine)

		shop.GET("/rentals", rentalCtrl.ListForShop)
		shop.GET("/rentals/:id", rentalCtrl.GetForShop)
		shop.PUT("/rentals/:id/confirm", rentalCtrl.Confirm())
		shop.PUT("/rentals/:id/start", rentalCtrl.Start())
		shop.PUT("/rentals/:id/complete", rentalCtrl.Complete())
		shop.PUT("/rentals/:id/cancel", rentalCtrl.ShopCancel())
		shop.PUT("/rentals/:id/acknowledge", rentalCtrl.Acknowledge())

		shop.GET("/payments", paymentCtrl.ListForShop)
		shop.PUT("/payments/:id/verify", paymentCtrl.Verify)
		shop.PUT("/payments/:id/reject", paymentCtrl.Reject)
		shop.GET("/refunds", paymentCtrl.ListRefunds)
		shop.PUT("/refunds/:id/approve", paymentCtrl.ApproveRefund)
		shop.PUT("/refunds/:id/deny", paymentCtrl.DenyRefund)

		shop.GET("/policy", shopCtrl.GetPolicy)
		shop.PUT("/policy", shopCtrl.UpdatePolicy)
		shop.GET("/dashboard", shopCtrl.Dashboard)
		shop.GET("/customers", shopCtrl.Customers)
		shop.GET("/notifications", shopCtrl.ShopNotifications)
	}

	bl := api.Group("/blacklist", auth, middlewares.RequireRole(entity.RoleShop))
	{
		bl.GET("", blacklistCtrl.List)
		bl.POST("", blacklistCtrl.Add)
		bl.GET("/search", blacklistCtrl.Search)
		bl.DELETE("/:customerId", blacklistCtrl.Remove)
	}

	if hub != nil {
		r.GET("/ws/notifications", middlewares.WSAuthMiddleware(cfg.JWTSecret, authSvc), hub.HandleWebSocket)
	}
}
