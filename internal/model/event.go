package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultEventGroup is assigned when an event is created without groups.
var DefaultEventGroup = []string{"default"}

// Event represents a scheduled event owned by a user. OwnerID references a
// User id; referential integrity is not enforced by the store.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OwnerID     string             `bson:"ownerId" json:"ownerId"`
	Type        string             `bson:"type" json:"type"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        string             `bson:"date" json:"date"`
	From        string             `bson:"from" json:"from"`
	To          string             `bson:"to" json:"to"`
	Location    string             `bson:"location" json:"location"`
	Group       []string           `bson:"group" json:"group"`
	Organizer   string             `bson:"organizer" json:"organizer"`
	IsPublic    bool               `bson:"is_public" json:"is_public"`
}
