package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

// A placed order carries no status at all; OrderStatusPlaced is only what
// Order.State reports for it.
const (
	OrderStatusPlaced  OrderStatus = "placed"
	OrderStatusPaid    OrderStatus = "Paid"
	OrderStatusShipped OrderStatus = "Shipped"
)

// Order references its product by name and its owner by email. Neither link
// is enforced at write time.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	UserName      string             `bson:"userName,omitempty" json:"userName,omitempty"`
	ProductName   string             `bson:"productName" json:"productName"`
	OrderQuantity int                `bson:"orderQuantity" json:"orderQuantity"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status        OrderStatus        `bson:"status,omitempty" json:"status,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	ShippedAt     *time.Time         `bson:"shippedAt,omitempty" json:"shippedAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

func (o Order) State() OrderStatus {
	if o.Status == "" {
		return OrderStatusPlaced
	}
	return o.Status
}

// Payment is append-only. It is written once per confirmed payment.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	UserEmail     string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	ProductName   string             `bson:"productName,omitempty" json:"productName,omitempty"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
}
