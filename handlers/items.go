package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"wishloop/models"
)

func (api *API) createItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	wishlistID := mux.Vars(r)["id"]

	var in models.ItemUpsert
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := api.items.Create(r.Context(), userID, wishlistID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) getItem(w http.ResponseWriter, r *http.Request) {
	viewerID, authenticated := actor(r)
	id := mux.Vars(r)["id"]

	item, err := api.items.Get(r.Context(), id, viewerID, authenticated)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (api *API) listItems(w http.ResponseWriter, r *http.Request) {
	viewerID, authenticated := actor(r)
	wishlistID := mux.Vars(r)["id"]

	list, err := api.items.List(r.Context(), wishlistID, viewerID, authenticated)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) updateItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	var in models.ItemUpsert
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := api.items.Update(r.Context(), userID, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *API) deleteItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	if err := api.items.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
