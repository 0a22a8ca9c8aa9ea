package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"wishloop/models"
)

func (api *API) claimItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	item, err := api.claims.Claim(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// unclaimItem enforces the permission the claim layer leaves to its caller:
// only the claimer or the item owner may reset a claim.
func (api *API) unclaimItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	item, err := api.items.Get(r.Context(), id, userID, true)
	if err != nil {
		writeError(w, err)
		return
	}
	isClaimer := item.Claim.ClaimedBy != nil && *item.Claim.ClaimedBy == userID
	if !isClaimer && item.OwnerID != userID {
		writeError(w, fmt.Errorf("%w: only the claimer or the item owner can unclaim", models.ErrUnauthorized))
		return
	}

	updated, err := api.claims.Unclaim(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *API) confirmClaim(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	var in struct {
		Confirm bool `json:"confirm"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, err := api.claims.ConfirmClaim(r.Context(), userID, id, in.Confirm)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (api *API) markPurchased(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	var proof models.PurchaseProof
	if err := decodeBody(r, &proof); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, err := api.claims.MarkPurchased(r.Context(), userID, id, proof)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (api *API) verifyProof(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	var in struct {
		Verified bool `json:"verified"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, err := api.claims.VerifyProof(r.Context(), userID, id, in.Verified)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (api *API) purchaseItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	item, err := api.claims.Purchase(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (api *API) unpurchaseItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	id := mux.Vars(r)["id"]

	item, err := api.claims.Unpurchase(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
