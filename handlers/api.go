package handlers

import (
	"log"
	"net/http"

	"github.com/go-pkgz/auth/v2/middleware"
	"github.com/go-pkgz/auth/v2/token"
	"github.com/gorilla/mux"

	"wishloop/internal/database"
	"wishloop/models"
	"wishloop/services/alerts"
	"wishloop/services/claims"
	"wishloop/services/comments"
	"wishloop/services/friends"
	"wishloop/services/items"
	"wishloop/services/scrape"
	"wishloop/services/uploads"
	"wishloop/services/wishlists"
)

// API bundles the HTTP handlers over the wishlist services.
type API struct {
	db        *database.DB
	wishlists *wishlists.Service
	items     *items.Service
	claims    *claims.Service
	alerts    *alerts.Service
	friends   *friends.Service
	comments  *comments.Service
	scrape    *scrape.Service
	uploads   *uploads.Service
}

// NewAPI creates the handler set.
func NewAPI(db *database.DB, w *wishlists.Service, i *items.Service, c *claims.Service,
	a *alerts.Service, f *friends.Service, cm *comments.Service, sc *scrape.Service, up *uploads.Service) *API {
	return &API{
		db:        db,
		wishlists: w,
		items:     i,
		claims:    c,
		alerts:    a,
		friends:   f,
		comments:  cm,
		scrape:    sc,
		uploads:   up,
	}
}

// Register attaches all API routes. Routes under the authenticated subrouter
// require a session; public routes run with the trace middleware so an
// authenticated viewer is recognised when present.
func (api *API) Register(r *mux.Router, m *middleware.Authenticator) {
	public := r.PathPrefix("/api").Subrouter()
	public.Use(m.Trace)
	public.HandleFunc("/wishlists/shared/{token}", api.getSharedWishlist).Methods(http.MethodGet)
	public.HandleFunc("/wishlists/{id}", api.getWishlist).Methods(http.MethodGet)
	public.HandleFunc("/wishlists/{id}/items", api.listItems).Methods(http.MethodGet)
	public.HandleFunc("/items/{id}", api.getItem).Methods(http.MethodGet)
	public.HandleFunc("/items/{id}/comments", api.listComments).Methods(http.MethodGet)
	public.HandleFunc("/items/{id}/reactions", api.listReactions).Methods(http.MethodGet)

	private := r.PathPrefix("/api").Subrouter()
	private.Use(m.Auth, api.ensureUser)

	private.HandleFunc("/me/wishlists", api.listMyWishlists).Methods(http.MethodGet)
	private.HandleFunc("/wishlists", api.createWishlist).Methods(http.MethodPost)
	private.HandleFunc("/wishlists/{id}", api.updateWishlist).Methods(http.MethodPut)
	private.HandleFunc("/wishlists/{id}", api.deleteWishlist).Methods(http.MethodDelete)
	private.HandleFunc("/wishlists/{id}/default", api.setDefaultWishlist).Methods(http.MethodPost)

	private.HandleFunc("/wishlists/{id}/items", api.createItem).Methods(http.MethodPost)
	private.HandleFunc("/items/{id}", api.updateItem).Methods(http.MethodPut)
	private.HandleFunc("/items/{id}", api.deleteItem).Methods(http.MethodDelete)

	private.HandleFunc("/items/{id}/claim", api.claimItem).Methods(http.MethodPost)
	private.HandleFunc("/items/{id}/claim", api.unclaimItem).Methods(http.MethodDelete)
	private.HandleFunc("/items/{id}/claim/confirm", api.confirmClaim).Methods(http.MethodPost)
	private.HandleFunc("/items/{id}/purchased", api.markPurchased).Methods(http.MethodPost)
	private.HandleFunc("/items/{id}/proof/verify", api.verifyProof).Methods(http.MethodPost)
	private.HandleFunc("/items/{id}/purchase", api.purchaseItem).Methods(http.MethodPost)
	private.HandleFunc("/items/{id}/purchase", api.unpurchaseItem).Methods(http.MethodDelete)

	private.HandleFunc("/items/{id}/alerts", api.createAlert).Methods(http.MethodPost)
	private.HandleFunc("/me/alerts", api.listMyAlerts).Methods(http.MethodGet)
	private.HandleFunc("/alerts/{id}", api.updateAlert).Methods(http.MethodPut)
	private.HandleFunc("/alerts/{id}", api.deleteAlert).Methods(http.MethodDelete)

	private.HandleFunc("/me/friends", api.listFriends).Methods(http.MethodGet)
	private.HandleFunc("/friends", api.addFriend).Methods(http.MethodPost)
	private.HandleFunc("/friends/{userId}/{friendId}", api.updateFriend).Methods(http.MethodPut)
	private.HandleFunc("/friends/{userId}/{friendId}", api.removeFriend).Methods(http.MethodDelete)

	private.HandleFunc("/items/{id}/comments", api.addComment).Methods(http.MethodPost)
	private.HandleFunc("/comments/{id}", api.deleteComment).Methods(http.MethodDelete)
	private.HandleFunc("/items/{id}/reactions", api.toggleReaction).Methods(http.MethodPost)

	private.HandleFunc("/scrape", api.scrapeProduct).Methods(http.MethodPost)
	private.HandleFunc("/uploads/proof", api.uploadProof).Methods(http.MethodPost)
	private.HandleFunc("/uploads/proof/{name}", api.getProof).Methods(http.MethodGet)
}

// ensureUser mirrors the session's profile into the users table so that
// foreign references to the actor resolve. Failures are logged, not fatal.
func (api *API) ensureUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, err := token.GetUserInfo(r); err == nil && u.ID != "" {
			err := api.db.Users.Upsert(r.Context(), &models.User{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				AvatarURL: u.Picture,
			})
			if err != nil {
				log.Printf("[handlers] failed to upsert user %s: %v", u.ID, err)
			}
		}
		next.ServeHTTP(w, r)
	})
}
