package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User roles. Role checks are exact-match by default; see access.Policy.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superAdmin"
)

// User represents an account in the system.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	UserType  string             `bson:"userType" json:"userType"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"` // bcrypt digest, never exposed
	Mobile    string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Gender    string             `bson:"gender,omitempty" json:"gender,omitempty"`
}
