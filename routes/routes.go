package routes

import (
	"habita/auth"
	"habita/cart"
	"habita/inventory"
	"habita/lease"
	"habita/middleware"
	"habita/notify"
	"habita/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddApartmentRoutes(router *httprouter.Router) {
	// Marketplace browsing is guest-accessible.
	router.GET("/api/apartments", middleware.OptionalAuth(inventory.GetApartments))
	router.GET("/api/apartments/:apartmentid", middleware.OptionalAuth(inventory.GetApartmentHandler))

	router.POST("/api/apartments", middleware.Authenticate(inventory.CreateApartment))
	router.PUT("/api/apartments/:apartmentid/listing", middleware.Authenticate(inventory.UpdateListing))
	router.DELETE("/api/apartments/:apartmentid", middleware.Authenticate(inventory.DeleteApartment))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.GET("/api/cart/summary", middleware.Authenticate(cart.GetCartSummary))
	router.POST("/api/cart", ratelim.RateLimit(middleware.Authenticate(cart.AddToCart)))
	router.POST("/api/cart/checkout", ratelim.RateLimit(middleware.Authenticate(cart.Checkout)))
	router.PATCH("/api/cart/select-all", middleware.Authenticate(cart.SelectAll))
	router.PATCH("/api/cart/item/:itemid", middleware.Authenticate(cart.UpdateCartItem))
	router.PATCH("/api/cart/item/:itemid/select", middleware.Authenticate(cart.ToggleSelection))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
	router.DELETE("/api/cart/item/:itemid", middleware.Authenticate(cart.RemoveCartItem))
}

func AddLeaseRoutes(router *httprouter.Router) {
	router.POST("/api/leases", ratelim.RateLimit(middleware.Authenticate(lease.CreateLease)))
	router.GET("/api/leases", middleware.Authenticate(lease.GetLeases))
	router.GET("/api/leases/mine", middleware.Authenticate(lease.GetMyLeases))
	router.GET("/api/leases/owner", middleware.Authenticate(lease.GetOwnerLeases))
	router.GET("/api/leases/verify", ratelim.RateLimit(lease.VerifyDocument))
	router.POST("/api/leases/lease/:leaseid/decision", middleware.Authenticate(lease.ManagerDecision))
	router.POST("/api/leases/lease/:leaseid/owner-decision", middleware.Authenticate(lease.OwnerDecision))
	router.POST("/api/leases/lease/:leaseid/cancel", middleware.Authenticate(lease.CancelLease))
	router.GET("/api/leases/lease/:leaseid/document", middleware.Authenticate(lease.PrintLeaseDocument))
}

func AddNotifyRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/notifications", notify.ServeWS(hub))
}
