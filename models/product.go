package models

// ProductMeta is the best-effort result of fetching a pasted product URL.
// Fields that could not be extracted are left empty.
type ProductMeta struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Price       string `json:"price,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
}
