package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"toolfacturer-backend/internal/core/service"
	"toolfacturer-backend/internal/domain"
)

type Handler struct {
	catalog  *service.CatalogService
	users    *service.UserService
	orders   *service.OrderService
	reviews  *service.ReviewService
	payments *service.PaymentService
}

func New(
	catalog *service.CatalogService,
	users *service.UserService,
	orders *service.OrderService,
	reviews *service.ReviewService,
	payments *service.PaymentService,
) *Handler {
	return &Handler{catalog: catalog, users: users, orders: orders, reviews: reviews, payments: payments}
}

func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "ToolFacturer server is running!")
}

// ----- Products -----

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req domain.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	res, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	res, err := h.catalog.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ----- Users -----

func (h *Handler) UpsertUser(c *gin.Context) {
	var req domain.UserFields
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid input")
			return
		}
	}
	res, err := h.users.Upsert(c.Request.Context(), c.Param("email"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) MakeAdmin(c *gin.Context) {
	res, err := h.users.MakeAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) CheckAdmin(c *gin.Context) {
	admin, err := h.users.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	res, err := h.users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ----- Orders -----

func (h *Handler) CreateOrder(c *gin.Context) {
	var req domain.Order
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	res, err := h.orders.Create(c.Request.Context(), req, currentEmail(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) ListOrdersByEmail(c *gin.Context) {
	orders, err := h.orders.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) ShipOrder(c *gin.Context) {
	res, err := h.orders.MarkShipped(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) PayOrder(c *gin.Context) {
	var req domain.Payment
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	res, err := h.orders.ConfirmPayment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteOwnOrder(c *gin.Context) {
	res, err := h.orders.DeleteOwn(c.Request.Context(), c.Param("id"), currentEmail(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteAnyOrder(c *gin.Context) {
	res, err := h.orders.DeleteAsAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ----- Reviews -----

func (h *Handler) CreateReview(c *gin.Context) {
	var req domain.Review
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	res, err := h.reviews.Create(c.Request.Context(), req, currentEmail(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ----- Payments -----

func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid input")
		return
	}
	secret, err := h.payments.CreateIntent(c.Request.Context(), req.Price)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
