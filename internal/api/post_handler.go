package api

import (
	"encoding/json"
	"net/http"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

type PostHandler struct {
	service domain.PostService
	logger  logger.Logger
}

func NewPostHandler(service domain.PostService, logger logger.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		logger:  logger,
	}
}

type createPostRequest struct {
	Kind     domain.PostKind `json:"kind"`
	Content  string          `json:"content"`
	ImageURL string          `json:"image_url"`
	VideoURL string          `json:"video_url"`
	LinkURL  string          `json:"link_url"`
}

type postResponse struct {
	Message string       `json:"message"`
	Post    *domain.Post `json:"post"`
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	var req createPostRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request body", map[string]interface{}{"error": err.Error()})
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.service.CreatePost(username, req.Kind, domain.PostContent{
		Content:  req.Content,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
		LinkURL:  req.LinkURL,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, postResponse{
		Message: "Post created successfully",
		Post:    post,
	})
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	posts, err := h.service.ListPosts(username)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

type updatePostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
	VideoURL string `json:"video_url"`
	LinkURL  string `json:"link_url"`
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	postID := r.PathValue("postID")

	var req updatePostRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request body", map[string]interface{}{"error": err.Error()})
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.service.UpdatePost(username, postID, domain.PostContent{
		Content:  req.Content,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
		LinkURL:  req.LinkURL,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, postResponse{
		Message: "Post updated successfully",
		Post:    post,
	})
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	postID := r.PathValue("postID")

	post, err := h.service.DeletePost(username, postID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, postResponse{
		Message: "Post deleted successfully",
		Post:    post,
	})
}

func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	liker := r.PathValue("name")

	if err := h.service.LikePost(liker, postID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Post liked successfully")
}

type addCommentRequest struct {
	Text string `json:"text"`
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	commenter := r.PathValue("name")

	var req addCommentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request body", map[string]interface{}{"error": err.Error()})
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.AddComment(commenter, postID, req.Text); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Comment added successfully")
}

func (h *PostHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /users/{username}/posts", h.CreatePost)
	mux.HandleFunc("GET /users/{username}/posts", h.ListPosts)
	mux.HandleFunc("PUT /users/{username}/posts/{postID}", h.UpdatePost)
	mux.HandleFunc("DELETE /users/{username}/posts/{postID}", h.DeletePost)
	mux.HandleFunc("POST /users/{username}/posts/{postID}/like/{name}", h.LikePost)
	mux.HandleFunc("POST /users/{username}/posts/{postID}/comments/{name}", h.AddComment)
}
