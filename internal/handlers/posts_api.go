package handlers

import (
	"net/http"

	"github.com/crucial707/springboard/internal/models"
	"github.com/crucial707/springboard/internal/service"
)

type PostsAPIHandler struct {
	Service *service.PostsService
}

//
// ==========================
// Save Post
// ==========================
//

func (h *PostsAPIHandler) Save(w http.ResponseWriter, r *http.Request) {
	var input models.PostSaveRequest
	if err := decodeJSON(r.Body, &input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	id, err := h.Service.Create(r.Context(), input)
	if err != nil {
		serviceError(w, r, "save post", err)
		return
	}

	writeJSON(w, id)
}

//
// ==========================
// Update Post
// ==========================
//

func (h *PostsAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var input models.PostUpdateRequest
	if err := decodeJSON(r.Body, &input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, input)
	if err != nil {
		serviceError(w, r, "update post", err)
		return
	}

	writeJSON(w, updated)
}

//
// ==========================
// Get Post
// ==========================
//

func (h *PostsAPIHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, r, "get post", err)
		return
	}

	writeJSON(w, post)
}

//
// ==========================
// List Posts
// ==========================
//

func (h *PostsAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Service.ListAllDescending(r.Context())
	if err != nil {
		serviceError(w, r, "list posts", err)
		return
	}

	writeJSON(w, posts)
}

//
// ==========================
// Delete Post
// ==========================
//

func (h *PostsAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		serviceError(w, r, "delete post", err)
		return
	}

	writeJSON(w, id)
}
