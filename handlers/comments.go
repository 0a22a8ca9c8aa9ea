package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (api *API) addComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	itemID := mux.Vars(r)["id"]

	var in struct {
		Body string `json:"body"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	comment, err := api.comments.AddComment(r.Context(), userID, itemID, in.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (api *API) listComments(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	list, err := api.comments.ListComments(r.Context(), itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) deleteComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	if err := api.comments.DeleteComment(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (api *API) toggleReaction(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	itemID := mux.Vars(r)["id"]

	var in struct {
		Emoji string `json:"emoji"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	active, err := api.comments.ToggleReaction(r.Context(), userID, itemID, in.Emoji)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": active})
}

func (api *API) listReactions(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	list, err := api.comments.ListReactions(r.Context(), itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
