package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"wishloop/models"
)

func (api *API) listMyWishlists(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)

	// First access creates the default wishlist lazily.
	if _, err := api.wishlists.EnsureDefault(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	lists, err := api.wishlists.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (api *API) createWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)

	var in models.WishlistUpsert
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := api.wishlists.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) getWishlist(w http.ResponseWriter, r *http.Request) {
	viewerID, authenticated := actor(r)
	id := mux.Vars(r)["id"]

	list, err := api.wishlists.Get(r.Context(), id, viewerID, authenticated)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) getSharedWishlist(w http.ResponseWriter, r *http.Request) {
	viewerID, authenticated := actor(r)
	shareToken := mux.Vars(r)["token"]

	list, err := api.wishlists.GetByShareToken(r.Context(), shareToken, viewerID, authenticated)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) updateWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	var in models.WishlistUpsert
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := api.wishlists.Update(r.Context(), userID, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *API) setDefaultWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	if err := api.wishlists.SetDefault(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (api *API) deleteWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	if err := api.wishlists.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
