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

// PostController serves article authoring and the public post feed.
type PostController struct {
	posts      repository.Posts
	contextKey string
	logger     auth.Logger
}

// NewPostController wires the post routes controller.
func NewPostController(posts repository.Posts, contextKey string, logger auth.Logger) *PostController {
	return &PostController{
		posts:      posts,
		contextKey: contextKey,
		logger:     logger,
	}
}

// CreatePostRequest payload
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// Validate will run validation rules
func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
	)
}

// Create handles POST /api/post/create. Admin only.
func (p *PostController) Create(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, p.contextKey)
	if err != nil {
		return err
	}

	if err := auth.CanCreatePost(session); err != nil {
		return err
	}

	payload := new(CreatePostRequest)
	if err := c.BodyParser(payload); err != nil {
		p.logger.Error("create post parse payload", "error", err)
		return auth.Validation("Please provide all required fields")
	}

	if err := payload.Validate(); err != nil {
		return auth.Validation("Please provide all required fields")
	}

	image := payload.Image
	if image == "" {
		image = model.DefaultPostImage
	}

	category := payload.Category
	if category == "" {
		category = "uncategorized"
	}

	post, err := p.posts.Create(c.UserContext(), &model.Post{
		UserID:   session.UserID,
		Title:    payload.Title,
		Slug:     slugify(payload.Title),
		Content:  payload.Content,
		Image:    image,
		Category: category,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/post/getposts, the public feed with filters.
func (p *PostController) GetPosts(c *fiber.Ctx) error {
	filter := repository.PostFilter{
		ListOptions: listOptionsFromQuery(c),
		Category:    c.Query("category"),
		Slug:        c.Query("slug"),
		SearchTerm:  c.Query("searchTerm"),
	}

	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return auth.Validation("Invalid user id")
		}
		filter.UserID = id
	}

	if raw := c.Query("postId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return auth.Validation("Invalid post id")
		}
		filter.PostID = id
	}

	posts, total, err := p.posts.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	lastMonth, err := p.posts.CountCreatedSince(c.UserContext(), time.Now().AddDate(0, -1, 0))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"posts":          posts,
		"totalPosts":     total,
		"lastMonthPosts": lastMonth,
	})
}

// UpdatePostRequest payload
type UpdatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// Update handles PUT /api/post/update/:postId/:userId. The route carries the
// owner id and the guard requires admin AND a matching id.
func (p *PostController) Update(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, p.contextKey)
	if err != nil {
		return err
	}

	postID, ownerID, err := postRouteIDs(c)
	if err != nil {
		return err
	}

	if err := auth.CanModifyPost(session, ownerID); err != nil {
		return err
	}

	post, err := p.posts.GetByID(c.UserContext(), postID)
	if err != nil {
		return err
	}

	payload := new(UpdatePostRequest)
	if err := c.BodyParser(payload); err != nil {
		p.logger.Error("update post parse payload", "error", err)
		return auth.Validation("Invalid request body")
	}

	if payload.Title != "" {
		post.Title = payload.Title
		post.Slug = slugify(payload.Title)
	}
	if payload.Content != "" {
		post.Content = payload.Content
	}
	if payload.Image != "" {
		post.Image = payload.Image
	}
	if payload.Category != "" {
		post.Category = payload.Category
	}

	updated, err := p.posts.Update(c.UserContext(), post)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// Delete handles DELETE /api/post/delete/:postId/:userId with the same
// admin-and-owner guard as Update.
func (p *PostController) Delete(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, p.contextKey)
	if err != nil {
		return err
	}

	postID, ownerID, err := postRouteIDs(c)
	if err != nil {
		return err
	}

	if err := auth.CanModifyPost(session, ownerID); err != nil {
		return err
	}

	if err := p.posts.Delete(c.UserContext(), postID); err != nil {
		return err
	}

	return c.JSON("The post has been deleted")
}

func postRouteIDs(c *fiber.Ctx) (postID, ownerID uuid.UUID, err error) {
	postID, err = uuid.Parse(c.Params("postId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, auth.Validation("Invalid post id")
	}

	ownerID, err = uuid.Parse(c.Params("userId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, auth.Validation("Invalid user id")
	}

	return postID, ownerID, nil
}
