package handler

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. Guards always run authenticate first, then
// the admin check.
func NewRouter(h *Handler, tokens TokenVerifier, admins AdminChecker, origins []string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(origins)))

	auth := RequireAuth(tokens)
	admin := RequireAdmin(admins)

	r.GET("/", h.Root)

	// Products
	r.GET("/products", h.ListProducts)
	r.POST("/products", auth, admin, h.CreateProduct)
	r.GET("/products/:id", auth, h.GetProduct)
	r.DELETE("/products/:id", auth, admin, h.DeleteProduct)

	// Users
	r.PUT("/user/:email", h.UpsertUser)
	r.PUT("/user/admin/:email", auth, admin, h.MakeAdmin)
	r.GET("/users", auth, admin, h.ListUsers)
	r.GET("/users/:email", auth, h.CheckAdmin)
	r.DELETE("/users/:id", auth, admin, h.DeleteUser)

	// Orders
	r.POST("/orders", auth, h.CreateOrder)
	r.GET("/orders", auth, admin, h.ListOrders)
	r.GET("/orders/:email", auth, h.ListOrdersByEmail)
	r.GET("/order/:id", auth, h.GetOrder)
	r.PATCH("/orders/:id", auth, admin, h.ShipOrder)
	r.PATCH("/order/:id", auth, h.PayOrder)
	r.DELETE("/orders/:id", auth, h.DeleteOwnOrder)
	r.DELETE("/orders/admin/:id", auth, admin, h.DeleteAnyOrder)

	// Reviews
	r.POST("/reviews", auth, h.CreateReview)
	r.GET("/reviews", h.ListReviews)

	// Payments
	r.POST("/create-payment-intent", auth, h.CreatePaymentIntent)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
