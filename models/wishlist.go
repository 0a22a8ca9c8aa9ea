package models

import "time"

// PrivacyTier controls who may view a wishlist.
type PrivacyTier string

const (
	// PrivacyPublic wishlists are visible to anyone, authenticated or not.
	PrivacyPublic PrivacyTier = "public"
	// PrivacyPrivate wishlists are visible to the owner and any authenticated viewer.
	PrivacyPrivate PrivacyTier = "private"
	// PrivacyPersonal wishlists are visible to the owner only.
	PrivacyPersonal PrivacyTier = "personal"
)

// Valid reports whether the tier is one of the known values.
func (p PrivacyTier) Valid() bool {
	switch p {
	case PrivacyPublic, PrivacyPrivate, PrivacyPersonal:
		return true
	}
	return false
}

// Wishlist is a container of items owned by a single user.
type Wishlist struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"ownerId"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Privacy     PrivacyTier `json:"privacy"`
	ShareToken  string      `json:"shareToken"`
	Icon        string      `json:"icon,omitempty"`
	Color       string      `json:"color,omitempty"`
	IsDefault   bool        `json:"isDefault"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// WishlistUpsert captures the caller-editable fields of a wishlist.
type WishlistUpsert struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Privacy     PrivacyTier `json:"privacy,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	Color       string      `json:"color,omitempty"`
	IsDefault   bool        `json:"isDefault,omitempty"`
}
