package models

import "time"

// RelationshipType labels a directed friendship edge.
type RelationshipType string

const (
	RelationshipFriend    RelationshipType = "friend"
	RelationshipFamily    RelationshipType = "family"
	RelationshipStreamer  RelationshipType = "streamer"
	RelationshipFan       RelationshipType = "fan"
	RelationshipModerator RelationshipType = "moderator"
)

// Valid reports whether the relationship type is one of the known values.
func (r RelationshipType) Valid() bool {
	switch r {
	case RelationshipFriend, RelationshipFamily, RelationshipStreamer, RelationshipFan, RelationshipModerator:
		return true
	}
	return false
}

// FriendshipStatus tracks the lifecycle of a friendship edge.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipBlocked  FriendshipStatus = "blocked"
)

// Valid reports whether the status is one of the known values.
func (s FriendshipStatus) Valid() bool {
	switch s {
	case FriendshipPending, FriendshipAccepted, FriendshipBlocked:
		return true
	}
	return false
}

// Friendship is a directed edge from UserID to FriendID. Moderator standing is
// symmetric: either direction of the edge grants it once accepted.
type Friendship struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	FriendID  string           `json:"friendId"`
	Type      RelationshipType `json:"relationshipType"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
