package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/desperati0n/ismism/internal/domain"
	"github.com/desperati0n/ismism/internal/http/response"
)

// AddCommentRequest is the body for posting a top-level comment.
type AddCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// AddReplyRequest is the body for posting a reply. ReplyTo optionally
// names the user being addressed.
type AddReplyRequest struct {
	Content string       `json:"content" validate:"required,max=2000"`
	ReplyTo *domain.User `json:"replyTo,omitempty"`
}

// RenameUserRequest is the body for updating the viewer display name.
type RenameUserRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// handleGetLikes returns the like state for one entry.
func (s *Server) handleGetLikes(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	likes, err := s.interactionService.Likes(r.Context(), code)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, likes, s.logger)
}

// handleToggleLike flips the viewer's like on one entry.
func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	likes, err := s.interactionService.ToggleLike(r.Context(), code)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, likes, s.logger)
}

// handleGetComments returns the comment thread for one entry.
func (s *Server) handleGetComments(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	comments, err := s.interactionService.Comments(r.Context(), code)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, comments, s.logger)
}

// handleAddComment posts a new top-level comment.
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req AddCommentRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	comment, err := s.interactionService.AddComment(r.Context(), code, req.Content)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, comment, s.logger)
}

// handleDeleteComment removes a comment and its replies.
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	commentID := chi.URLParam(r, "commentID")

	if err := s.interactionService.DeleteComment(r.Context(), code, commentID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleToggleCommentLike flips the viewer's like on a comment.
func (s *Server) handleToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	commentID := chi.URLParam(r, "commentID")

	comment, err := s.interactionService.ToggleCommentLike(r.Context(), code, commentID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, comment, s.logger)
}

// handleAddReply posts a reply under an existing comment.
func (s *Server) handleAddReply(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	commentID := chi.URLParam(r, "commentID")

	var req AddReplyRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	reply, err := s.interactionService.AddReply(r.Context(), code, commentID, req.Content, req.ReplyTo)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, reply, s.logger)
}

// handleDeleteReply removes one reply.
func (s *Server) handleDeleteReply(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	commentID := chi.URLParam(r, "commentID")
	replyID := chi.URLParam(r, "replyID")

	if err := s.interactionService.DeleteReply(r.Context(), code, commentID, replyID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleToggleReplyLike flips the viewer's like on a reply.
func (s *Server) handleToggleReplyLike(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	commentID := chi.URLParam(r, "commentID")
	replyID := chi.URLParam(r, "replyID")

	reply, err := s.interactionService.ToggleReplyLike(r.Context(), code, commentID, replyID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, reply, s.logger)
}

// handleGetCurrentUser returns the viewer identity, creating one on
// first access.
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.interactionService.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

// handleRenameCurrentUser updates the viewer display name.
func (s *Server) handleRenameCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req RenameUserRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.interactionService.RenameCurrentUser(r.Context(), req.Name)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}
