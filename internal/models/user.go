package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email" validate:"required,email"`
	DisplayName string             `json:"displayName" bson:"displayName" validate:"required,min=2,max=100"`
	Password    string             `json:"-" bson:"password" validate:"required,min=6"`
	Role        string             `json:"role" bson:"role"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	LastLogin   time.Time          `json:"lastLogin" bson:"lastLogin"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	DisplayName string `json:"displayName" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
}

type RoleChangeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
