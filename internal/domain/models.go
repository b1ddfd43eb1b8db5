// models.go

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RoleAdmin = "admin"

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Education string             `bson:"education,omitempty" json:"education,omitempty"`
	LinkedIn  string             `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Password  string             `bson:"password,omitempty" json:"-"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserFields is the set of profile fields a client may upsert. Empty fields
// are left untouched in the stored record.
type UserFields struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Education string `json:"education"`
	LinkedIn  string `json:"linkedin"`
	Password  string `json:"password"`
}

// Product.AvailableQnt holds the stored base quantity. Listings replace it
// with the derived availability, see catalog.ComputeAvailability.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	AvailableQnt int                `bson:"availableQnt" json:"availableQnt"`
	MinimumQnt   int                `bson:"minimumQnt,omitempty" json:"minimumQnt,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Rating    int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
