package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/kozaktomas/companion-backend/internal/config"
	"github.com/kozaktomas/companion-backend/internal/constants"
	"github.com/kozaktomas/companion-backend/internal/database"
)

// ImagesHandler handles face image storage and matching endpoints.
type ImagesHandler struct {
	images    database.ImageStore
	responses config.ResponsesConfig
}

// NewImagesHandler creates a new images handler.
func NewImagesHandler(images database.ImageStore, responses config.ResponsesConfig) *ImagesHandler {
	return &ImagesHandler{
		images:    images,
		responses: responses,
	}
}

// StoreImageRequest is the request body for POST /api/store-image.
type StoreImageRequest struct {
	Image       string `json:"image"`
	Description string `json:"description"`
	Name        string `json:"name"`
	Relation    string `json:"relation"`
}

// MatchImageRequest is the request body for POST /api/match-image.
type MatchImageRequest struct {
	Image string `json:"image"`
}

// filenameFromDescription derives a filename by replacing spaces in the
// description with underscores and appending the image extension.
func filenameFromDescription(description string) string {
	return strings.ReplaceAll(description, " ", "_") + constants.ImageExtension
}

// Store handles POST /api/store-image. The image arrives base64-encoded
// together with a description and the person's name and relation.
func (h *ImagesHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req StoreImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.Image == "" || req.Description == "" || req.Name == "" || req.Relation == "" {
		respondError(w, http.StatusBadRequest, "Image, description, name, and relation are required.")
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		log.Printf("store-image: decoding payload for %q: %v", sanitizeForLog(req.Description), err)
		respondError(w, http.StatusOK, h.responses.ImageStoreFailed)
		return
	}

	img := database.StoredImage{
		Description: req.Description,
		Data:        raw,
		Filename:    filenameFromDescription(req.Description),
		Name:        req.Name,
		Relation:    req.Relation,
	}
	if err := h.images.StoreImage(r.Context(), img); err != nil {
		log.Printf("store-image: storing %q: %v", sanitizeForLog(req.Description), err)
		respondError(w, http.StatusOK, h.responses.ImageStoreFailed)
		return
	}

	respondMessage(w, http.StatusOK, h.responses.ImageStored)
}

// Match handles POST /api/match-image. The candidate image is compared
// byte-for-byte against every stored image; the first exact match wins.
func (h *ImagesHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.Image == "" {
		respondError(w, http.StatusBadRequest, "Image data is required.")
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		log.Printf("match-image: decoding payload: %v", err)
		respondJSON(w, http.StatusNotFound, map[string]string{"response": h.responses.ImageNotFound})
		return
	}

	match, err := h.images.MatchImage(r.Context(), raw)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Printf("match-image: matching image: %v", err)
		}
		respondJSON(w, http.StatusNotFound, map[string]string{"response": h.responses.ImageNotFound})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": h.responses.ImageMatched,
		"data":    match,
	})
}
