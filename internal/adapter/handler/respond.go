package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"toolfacturer-backend/internal/adapter/payment"
	"toolfacturer-backend/internal/core/service"
	"toolfacturer-backend/internal/port"
)

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

// fail maps an error from the service layer onto a status code. Anything
// unrecognised is an upstream failure and is logged.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, port.ErrInvalidID):
		badRequest(c, "invalid id")
	case errors.Is(err, service.ErrInvalidAmount):
		badRequest(c, "invalid amount")
	case errors.Is(err, service.ErrInvalidEmail):
		badRequest(c, "invalid email")
	case errors.Is(err, payment.ErrProcessorUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"message": "payment processor unavailable"})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
