package wishlists

import "wishloop/models"

// CanView is the single access decision for rendering or serving a wishlist.
// It is evaluated identically whether the list was reached by id or by share
// token; share-link possession grants no privilege of its own.
//
//   - personal: owner only, no exception for share-link holders
//   - private:  owner always; other viewers only when authenticated
//   - public:   anyone
func CanView(w *models.Wishlist, viewerID string, authenticated bool) bool {
	if w == nil {
		return false
	}
	switch w.Privacy {
	case models.PrivacyPersonal:
		return viewerID != "" && viewerID == w.OwnerID
	case models.PrivacyPrivate:
		if viewerID != "" && viewerID == w.OwnerID {
			return true
		}
		return authenticated
	default: // public
		return true
	}
}
