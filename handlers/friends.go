package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"wishloop/models"
)

func (api *API) listFriends(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)

	edges, err := api.friends.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edges)
}

func (api *API) addFriend(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)

	var in struct {
		FriendID         string                  `json:"friendId"`
		RelationshipType models.RelationshipType `json:"relationshipType,omitempty"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	edge, err := api.friends.Add(r.Context(), userID, in.FriendID, in.RelationshipType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, edge)
}

func (api *API) updateFriend(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actor(r)
	vars := mux.Vars(r)

	var in struct {
		Status           models.FriendshipStatus `json:"status,omitempty"`
		RelationshipType models.RelationshipType `json:"relationshipType,omitempty"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	edge, err := api.friends.Respond(r.Context(), actorID, vars["userId"], vars["friendId"], in.Status, in.RelationshipType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edge)
}

func (api *API) removeFriend(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actor(r)
	vars := mux.Vars(r)

	if err := api.friends.Remove(r.Context(), actorID, vars["userId"], vars["friendId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
