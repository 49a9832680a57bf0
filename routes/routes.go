package routes

import (
	"net/http"

	"ultrarent/accounts"
	"ultrarent/auth"
	"ultrarent/bookings"
	"ultrarent/bus"
	"ultrarent/home"
	"ultrarent/middleware"
	"ultrarent/pay"
	"ultrarent/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/accountpic/*filepath", http.Dir("static/accountpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *auth.Handlers) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(h.LogoutUser))
	// no Authenticate here: refresh must work after the access token expires
	router.POST("/api/auth/token/refresh", rl.Limit(h.RefreshToken))
}

func AddAccountRoutes(router *httprouter.Router, h *accounts.Handlers) {
	router.GET("/api/accounts", middleware.OptionalAuth(h.ListAccounts))
	router.GET("/api/accounts/:id", middleware.OptionalAuth(h.GetAccount))
	router.POST("/api/accounts", middleware.AdminOnly(h.CreateAccount))
	router.PUT("/api/accounts/:id", middleware.AdminOnly(h.UpdateAccount))
	router.DELETE("/api/accounts/:id", middleware.AdminOnly(h.DeleteAccount))
	router.POST("/api/accounts/:id/image", middleware.AdminOnly(h.UploadImage))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *bookings.Handlers) {
	// guests may submit and look up claims; customer fields stay empty until login
	router.POST("/api/bookings", rl.Limit(middleware.OptionalAuth(h.CreateBooking)))
	router.GET("/api/bookings", middleware.Authenticate(h.ListBookings))
	router.GET("/api/bookings/:orderid", middleware.OptionalAuth(h.GetBooking))
	router.POST("/api/bookings/:orderid/approve", middleware.AdminOnly(h.Approve))
	router.POST("/api/bookings/:orderid/reject", middleware.AdminOnly(h.Reject))
	router.POST("/api/bookings/:orderid/complete", middleware.AdminOnly(h.Complete))
	// lives under /api/admin so the static segment cannot collide with :orderid
	router.POST("/api/admin/batch-approve", middleware.AdminOnly(h.BatchApprove))
}

func AddPayRoutes(router *httprouter.Router, h *pay.Handlers) {
	router.GET("/api/pay/qr/:orderid", h.PaymentQR)
	router.GET("/api/pay/link/:orderid", h.PaymentLinks)
	router.GET("/api/bookings/:orderid/receipt.pdf", h.PrintReceipt)
}

func AddHomeRoutes(router *httprouter.Router, h *home.Handlers) {
	router.GET("/api/home", h.GetHomeConfig)
	router.PUT("/api/home", middleware.AdminOnly(h.UpdateHomeConfig))
}

func AddChangeFeedRoutes(router *httprouter.Router, b *bus.Bus) {
	router.GET("/ws/changes", bus.WebSocketHandler(b))
}
