package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User model. Email and Password are optional because Google-only accounts
// may carry neither until the upgrade path sets them.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	GoogleID  string             `bson:"google_id,omitempty" json:"google_id,omitempty"`
	Password  string             `bson:"password,omitempty" json:"password,omitempty"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Sanitized returns a copy with the password hash stripped.
func (u *User) Sanitized() *User {
	c := *u
	c.Password = ""
	return &c
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
