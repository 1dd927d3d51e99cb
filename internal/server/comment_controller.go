package server

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/model"
	"github.com/inkpost/inkpost/internal/repository"
)

// CommentController serves commenting, likes, and comment moderation.
type CommentController struct {
	comments   repository.Comments
	contextKey string
	logger     auth.Logger
}

// NewCommentController wires the comment routes controller.
func NewCommentController(comments repository.Comments, contextKey string, logger auth.Logger) *CommentController {
	return &CommentController{
		comments:   comments,
		contextKey: contextKey,
		logger:     logger,
	}
}

// CreateCommentRequest payload
type CreateCommentRequest struct {
	Content string `json:"content"`
	PostID  string `json:"postId"`
	UserID  string `json:"userId"`
}

// Validate will run validation rules
func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.PostID, validation.Required),
		validation.Field(&r.UserID, validation.Required),
	)
}

// Create handles POST /api/comment/create. The body author id must match
// the session identity.
func (cc *CommentController) Create(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, cc.contextKey)
	if err != nil {
		return err
	}

	payload := new(CreateCommentRequest)
	if err := c.BodyParser(payload); err != nil {
		cc.logger.Error("create comment parse payload", "error", err)
		return auth.Validation("Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return auth.Validation(firstValidationMessage(err))
	}

	authorID, err := uuid.Parse(payload.UserID)
	if err != nil || !session.IsOwner(authorID) {
		return auth.ErrUnauthenticated
	}

	postID, err := uuid.Parse(payload.PostID)
	if err != nil {
		return auth.Validation("Invalid post id")
	}

	comment, err := cc.comments.Create(c.UserContext(), &model.Comment{
		PostID:  postID,
		UserID:  authorID,
		Content: payload.Content,
		Likes:   []string{},
	})
	if err != nil {
		return err
	}

	return c.JSON(comment)
}

// GetPostComments handles GET /api/comment/getPostComments/:postId, a public
// read sorted newest first.
func (cc *CommentController) GetPostComments(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return auth.Validation("Invalid post id")
	}

	comments, err := cc.comments.ListByPost(c.UserContext(), postID)
	if err != nil {
		return err
	}

	return c.JSON(comments)
}

// Like handles PUT /api/comment/like/:commentId, toggling the caller's like.
// Read-modify-write on the like list, no optimistic locking.
func (cc *CommentController) Like(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, cc.contextKey)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return auth.Validation("Invalid comment id")
	}

	comment, err := cc.comments.GetByID(c.UserContext(), commentID)
	if err != nil {
		return err
	}

	comment.ToggleLike(session.UserID)

	updated, err := cc.comments.Update(c.UserContext(), comment)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// EditCommentRequest payload
type EditCommentRequest struct {
	Content string `json:"content"`
}

// Edit handles PUT /api/comment/edit/:commentId. Author or admin.
func (cc *CommentController) Edit(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, cc.contextKey)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return auth.Validation("Invalid comment id")
	}

	comment, err := cc.comments.GetByID(c.UserContext(), commentID)
	if err != nil {
		return err
	}

	if err := auth.CanModerateComment(session, comment.UserID); err != nil {
		return err
	}

	payload := new(EditCommentRequest)
	if err := c.BodyParser(payload); err != nil {
		cc.logger.Error("edit comment parse payload", "error", err)
		return auth.Validation("Invalid request body")
	}

	if payload.Content == "" {
		return auth.Validation("Comment content is required")
	}

	comment.Content = payload.Content

	updated, err := cc.comments.Update(c.UserContext(), comment)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// Delete handles DELETE /api/comment/delete/:commentId. Author or admin.
func (cc *CommentController) Delete(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, cc.contextKey)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return auth.Validation("Invalid comment id")
	}

	comment, err := cc.comments.GetByID(c.UserContext(), commentID)
	if err != nil {
		return err
	}

	if err := auth.CanModerateComment(session, comment.UserID); err != nil {
		return err
	}

	if err := cc.comments.Delete(c.UserContext(), commentID); err != nil {
		return err
	}

	return c.JSON("Comment has been deleted")
}

// GetComments handles GET /api/comment/getcomments, the admin moderation
// view over all comments.
func (cc *CommentController) GetComments(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, cc.contextKey)
	if err != nil {
		return err
	}

	if err := auth.CanListAccounts(session); err != nil {
		return err
	}

	comments, total, err := cc.comments.List(c.UserContext(), listOptionsFromQuery(c))
	if err != nil {
		return err
	}

	lastMonth, err := cc.comments.CountCreatedSince(c.UserContext(), time.Now().AddDate(0, -1, 0))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"comments":          comments,
		"totalComments":     total,
		"lastMonthComments": lastMonth,
	})
}
