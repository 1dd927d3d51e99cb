package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/inkpost/inkpost/internal/model"
	"github.com/inkpost/inkpost/internal/repository"
)

func newTestManager(t *testing.T) repository.Manager {
	t.Helper()

	// A named in-memory database per test keeps fixtures isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	m := repository.NewManager(db)
	require.NoError(t, m.CreateTables(context.Background()))

	return m
}

func seedUser(t *testing.T, users repository.Users, username, email string) *model.User {
	t.Helper()

	user, err := users.Create(context.Background(), &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$notaverygoodhashbutitlldo",
	})
	require.NoError(t, err)
	return user
}

func TestUsersCreateAndGet(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	created := seedUser(t, m.Users(), "bob", "bob@x.com")
	assert.NotEqual(t, uuid.Nil, created.ID)

	byID, err := m.Users().GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "bob", byID.Username)

	byEmail, err := m.Users().GetByEmail(ctx, "bob@x.com")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byUsername, err := m.Users().GetByUsername(ctx, "bob")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)
}

func TestUsersUniqueConflict(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	seedUser(t, m.Users(), "bob", "bob@x.com")

	_, err := m.Users().Create(ctx, &model.User{
		Username:     "bobby",
		Email:        "bob@x.com",
		PasswordHash: "x",
	})
	assert.Error(t, err)

	_, err = m.Users().Create(ctx, &model.User{
		Username:     "bob",
		Email:        "bob2@x.com",
		PasswordHash: "x",
	})
	assert.Error(t, err)

	// No duplicate snuck in.
	_, total, err := m.Users().List(ctx, repository.ListOptions{})
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestUsersGetMissing(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Users().GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = m.Users().GetByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUsersUpdateAndDelete(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := seedUser(t, m.Users(), "bob", "bob@x.com")

	user.Username = "bobby"
	user.ProfilePicture = "https://example.com/pic.png"

	updated, err := m.Users().Update(ctx, user)
	assert.NoError(t, err)
	assert.Equal(t, "bobby", updated.Username)
	assert.Equal(t, "https://example.com/pic.png", updated.ProfilePicture)

	assert.NoError(t, m.Users().Delete(ctx, user.ID))

	_, err = m.Users().GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestPostsCRUDAndFilters(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	author := seedUser(t, m.Users(), "admin", "admin@x.com")

	first, err := m.Posts().Create(ctx, &model.Post{
		UserID:   author.ID,
		Title:    "Hello World",
		Slug:     "hello-world",
		Content:  "the very first post",
		Category: "general",
	})
	require.NoError(t, err)

	_, err = m.Posts().Create(ctx, &model.Post{
		UserID:   author.ID,
		Title:    "Go Tips",
		Slug:     "go-tips",
		Content:  "tips and tricks",
		Category: "golang",
	})
	require.NoError(t, err)

	t.Run("duplicate title conflicts", func(t *testing.T) {
		_, err := m.Posts().Create(ctx, &model.Post{
			UserID:  author.ID,
			Title:   "Hello World",
			Slug:    "hello-world",
			Content: "again",
		})
		assert.Error(t, err)
	})

	t.Run("filter by category", func(t *testing.T) {
		posts, total, err := m.Posts().List(ctx, repository.PostFilter{Category: "golang"})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "go-tips", posts[0].Slug)
	})

	t.Run("lookup by slug", func(t *testing.T) {
		post, err := m.Posts().GetBySlug(ctx, "go-tips")
		assert.NoError(t, err)
		assert.Equal(t, "Go Tips", post.Title)

		_, err = m.Posts().GetBySlug(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrPostNotFound)
	})

	t.Run("filter by slug", func(t *testing.T) {
		posts, total, err := m.Posts().List(ctx, repository.PostFilter{Slug: "hello-world"})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, first.ID, posts[0].ID)
	})

	t.Run("search matches title and content", func(t *testing.T) {
		_, total, err := m.Posts().List(ctx, repository.PostFilter{SearchTerm: "tricks"})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("update and delete", func(t *testing.T) {
		first.Content = "edited"
		updated, err := m.Posts().Update(ctx, first)
		assert.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)

		assert.NoError(t, m.Posts().Delete(ctx, first.ID))
		_, err = m.Posts().GetByID(ctx, first.ID)
		assert.ErrorIs(t, err, repository.ErrPostNotFound)
	})
}

func TestCommentsLifecycle(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	author := seedUser(t, m.Users(), "bob", "bob@x.com")
	postID := uuid.New()

	comment, err := m.Comments().Create(ctx, &model.Comment{
		PostID:  postID,
		UserID:  author.ID,
		Content: "first!",
		Likes:   []string{},
	})
	require.NoError(t, err)

	t.Run("list by post", func(t *testing.T) {
		comments, err := m.Comments().ListByPost(ctx, postID)
		assert.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("like toggle round trip", func(t *testing.T) {
		liker := uuid.New()

		comment.ToggleLike(liker)
		assert.Equal(t, 1, comment.NumberOfLikes)
		assert.True(t, comment.LikedBy(liker))

		updated, err := m.Comments().Update(ctx, comment)
		assert.NoError(t, err)
		assert.Equal(t, 1, updated.NumberOfLikes)

		updated.ToggleLike(liker)
		assert.Equal(t, 0, updated.NumberOfLikes)
		assert.False(t, updated.LikedBy(liker))
	})

	t.Run("moderation listing and delete", func(t *testing.T) {
		_, total, err := m.Comments().List(ctx, repository.ListOptions{})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)

		assert.NoError(t, m.Comments().Delete(ctx, comment.ID))
		_, err = m.Comments().GetByID(ctx, comment.ID)
		assert.ErrorIs(t, err, repository.ErrCommentNotFound)
	})
}

func TestCountCreatedSince(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	seedUser(t, m.Users(), "bob", "bob@x.com")

	recent, err := m.Users().CountCreatedSince(ctx, time.Now().AddDate(0, -1, 0))
	assert.NoError(t, err)
	assert.Equal(t, 1, recent)

	future, err := m.Users().CountCreatedSince(ctx, time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 0, future)
}
