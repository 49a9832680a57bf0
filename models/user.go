package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Password    string    `json:"-" bson:"password"` // bcrypt hash
	Role        string    `json:"role" bson:"role"`
	UltraPoints int       `json:"ultraPoints" bson:"ultraPoints"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	LastLogin   time.Time `json:"lastLogin" bson:"lastLogin"`
}
