package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (api *API) createAlert(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	itemID := mux.Vars(r)["id"]

	var in struct {
		TargetPrice *string  `json:"targetPrice,omitempty"`
		PercentDrop *float64 `json:"percentDrop,omitempty"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	alert, err := api.alerts.Create(r.Context(), userID, itemID, in.TargetPrice, in.PercentDrop)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, alert)
}

func (api *API) listMyAlerts(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)

	list, err := api.alerts.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) updateAlert(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	var in struct {
		IsActive bool `json:"isActive"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := api.alerts.SetActive(r.Context(), userID, id, in.IsActive); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (api *API) deleteAlert(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	if err := api.alerts.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
