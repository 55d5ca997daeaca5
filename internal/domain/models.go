// internal/domain/models.go
package domain

import "time"

type Medicine struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Dosage      string  `bson:"dosage" json:"dosage"`
	Price       float64 `bson:"price" json:"price"`
	Description string  `bson:"description" json:"description"`
	ImageURL    string  `bson:"imageUrl" json:"imageUrl"`
	InStock     bool    `bson:"inStock" json:"inStock"`
}

// CartItem carries denormalized display fields captured at add time so the
// cart stays renderable even after the catalog cache is cleared.
type CartItem struct {
	MedicineID string  `bson:"medicineId" json:"medicineId"`
	Name       string  `bson:"name" json:"name"`
	Price      float64 `bson:"price" json:"price"`
	ImageURL   string  `bson:"imageUrl" json:"imageUrl"`
	Quantity   int     `bson:"quantity" json:"quantity"`
}

type Address struct {
	Street   string `bson:"street" json:"street"`
	City     string `bson:"city" json:"city"`
	Postcode string `bson:"postcode" json:"postcode"`
}

// Order embeds a frozen copy of the cart items at placement time. Immutable
// after creation; there is no edit or cancel operation.
type Order struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	UserID          string     `bson:"userId" json:"userId"`
	Items           []CartItem `bson:"items" json:"items"`
	Address         Address    `bson:"address" json:"address"`
	TotalPrice      float64    `bson:"totalPrice" json:"totalPrice"`
	Status          Status     `bson:"status" json:"status"`
	Timestamp       time.Time  `bson:"timestamp" json:"timestamp"`
	PrescriptionURI string     `bson:"prescriptionUri,omitempty" json:"prescriptionUri,omitempty"`
}

type UserProfile struct {
	UID   string `bson:"_id" json:"uid"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
}

// User is the credential record owned by the auth collaborator.
type User struct {
	UID          string `bson:"_id" json:"uid"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	ResetToken   string `bson:"resetToken,omitempty" json:"-"`
}
