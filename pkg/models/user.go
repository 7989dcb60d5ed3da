package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the closed set of account roles
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleAdmin    Role = "ADMIN"
)

// User represents an account in the system
type User struct {
	ID         bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Email      string        `json:"email" bson:"email" validate:"required,email"`
	Password   string        `json:"-" bson:"password" validate:"required"` // bcrypt hash, never exposed
	FirstName  string        `json:"first_name" bson:"first_name" validate:"required,min=1,max=100"`
	LastName   string        `json:"last_name" bson:"last_name" validate:"required,min=1,max=100"`
	Phone      string        `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,min=10,max=20"`
	Role       Role          `json:"role" bson:"role" validate:"required,oneof=CUSTOMER STAFF ADMIN"`
	IsActive   bool          `json:"is_active" bson:"is_active"`
	IsVerified bool          `json:"is_verified" bson:"is_verified"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) SetTimestamps() {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// Address is a shipping destination. Orders freeze a copy of it at
// checkout time; District drives the shipping-zone lookup.
type Address struct {
	FullName   string `json:"full_name" bson:"full_name" validate:"required,min=2,max=200"`
	Phone      string `json:"phone" bson:"phone" validate:"required,min=10,max=20"`
	Line1      string `json:"line1" bson:"line1" validate:"required,max=255"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty" validate:"max=255"`
	City       string `json:"city" bson:"city" validate:"required,max=100"`
	District   string `json:"district" bson:"district" validate:"required,max=100"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty" validate:"max=20"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Phone     string `json:"phone" binding:"omitempty,min=10,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone     string `json:"phone" binding:"omitempty,min=10,max=20"`
}
