package models

import "time"

// ClaimStatus tracks where an item sits in the claim/purchase pipeline.
type ClaimStatus string

const (
	ClaimNone      ClaimStatus = "none"
	ClaimPending   ClaimStatus = "pending"
	ClaimConfirmed ClaimStatus = "confirmed"
	ClaimRejected  ClaimStatus = "rejected"
	ClaimPurchased ClaimStatus = "purchased"
)

// PurchaseProof carries the metadata a claimer submits when marking an item purchased.
type PurchaseProof struct {
	ProofURL       string     `json:"proofUrl,omitempty"`
	PurchasedAt    *time.Time `json:"purchasedAt,omitempty"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	AmountPaid     string     `json:"amountPaid,omitempty"`
	Anonymous      bool       `json:"anonymous,omitempty"`
}

// Claim is the claim/purchase sub-record attached to every item.
type Claim struct {
	IsClaimed     bool          `json:"isClaimed"`
	ClaimedBy     *string       `json:"claimedBy,omitempty"`
	Status        ClaimStatus   `json:"claimStatus"`
	IsPurchased   bool          `json:"isPurchased"`
	PurchasedBy   *string       `json:"purchasedBy,omitempty"`
	Proof         PurchaseProof `json:"proof"`
	ProofVerified bool          `json:"proofVerified"`
	ProofRejected bool          `json:"proofRejected"`
	VerifiedAt    *time.Time    `json:"verifiedAt,omitempty"`
	VerifiedBy    *string       `json:"verifiedBy,omitempty"`
}

// PricePoint is one entry of an item's append-only price history.
type PricePoint struct {
	Price      string    `json:"price"`
	RecordedAt time.Time `json:"recordedAt"`
}

// PriceHistoryCap bounds how many price snapshots are kept per item.
const PriceHistoryCap = 30

// Item is a single wishlist entry, usually scraped from a product URL.
type Item struct {
	ID           string       `json:"id"`
	WishlistID   string       `json:"wishlistId"`
	OwnerID      string       `json:"ownerId"`
	Title        string       `json:"title"`
	SourceURL    string       `json:"sourceUrl,omitempty"`
	AffiliateURL string       `json:"affiliateUrl,omitempty"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	Price        string       `json:"price,omitempty"`       // free-text, currency-symbol-prefixed
	ParsedPrice  *Price       `json:"parsedPrice,omitempty"` // structured form, derived on read
	Description  string       `json:"description,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Size         string       `json:"size,omitempty"`
	Priority     int          `json:"priority"` // -1 low, 0 normal, 1 high
	Quantity     int          `json:"quantity"`
	Claim        Claim        `json:"claim"`
	PriceHistory []PricePoint `json:"priceHistory,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ItemUpsert captures the caller-editable fields of an item.
type ItemUpsert struct {
	Title        string `json:"title"`
	SourceURL    string `json:"sourceUrl,omitempty"`
	AffiliateURL string `json:"affiliateUrl,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Price        string `json:"price,omitempty"`
	Description  string `json:"description,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Size         string `json:"size,omitempty"`
	Priority     int    `json:"priority,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
}
