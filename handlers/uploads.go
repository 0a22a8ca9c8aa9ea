package handlers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"wishloop/services/uploads"
)

const maxProofFormSize = 12 * 1024 * 1024

func (api *API) uploadProof(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProofFormSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
		return
	}
	defer file.Close()

	path, err := api.uploads.SaveProof(header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

func (api *API) getProof(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	f, err := api.uploads.Open(name)
	if err != nil {
		writeError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", uploads.ContentTypeForName(name))
	if _, err := io.Copy(w, f); err != nil {
		return
	}
}
