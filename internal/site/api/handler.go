// Package api serves the read-only blog JSON API.
package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/louisbranch.dev/internal/platform/web/httpx"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
)

// Fixed error bodies are part of the API contract.
const (
	msgFetchFailed  = "Failed to fetch posts"
	msgPostNotFound = "Post not found"
)

type postPayload struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toPayload(post storage.Post) postPayload {
	return postPayload{
		ID:        post.ID,
		Title:     post.Title,
		Slug:      post.Slug,
		Content:   post.Content,
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: post.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type handler struct {
	store storage.PostStore
}

// NewHandler builds the JSON API handler.
func NewHandler(store storage.PostStore) http.Handler {
	h := &handler{store: store}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", h.handleList)
	mux.HandleFunc("/api/posts/", h.handleShow)
	return mux
}

func (h *handler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	posts, err := h.store.ListPosts(httpx.RequestContext(r))
	if err != nil {
		log.Printf("api list posts: %v", err)
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	payload := make([]postPayload, 0, len(posts))
	for _, post := range posts {
		payload = append(payload, toPayload(post))
	}
	_ = httpx.WriteJSON(w, http.StatusOK, payload)
}

func (h *handler) handleShow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rawID := strings.TrimPrefix(r.URL.Path, "/api/posts/")
	// Identifiers outside the numeric id space cannot match a post, so they
	// share the not-found contract rather than a separate 400 surface.
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		_ = httpx.WriteJSONError(w, http.StatusNotFound, msgPostNotFound)
		return
	}

	post, err := h.store.GetPost(httpx.RequestContext(r), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_ = httpx.WriteJSONError(w, http.StatusNotFound, msgPostNotFound)
			return
		}
		log.Printf("api get post %d: %v", id, err)
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, toPayload(post))
}
