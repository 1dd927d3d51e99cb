package repository

import (
	"context"
	"errors"
	"log"

	"github.com/uptrace/bun"

	"github.com/inkpost/inkpost/internal/model"
)

// Manager exposes all repositories over a shared handle.
type Manager interface {
	Users() Users
	Posts() Posts
	Comments() Comments
	CreateTables(ctx context.Context) error
	Validate() error
	MustValidate()
}

type mngr struct {
	db       *bun.DB
	users    Users
	posts    Posts
	comments Comments
}

// NewManager wires the repositories. Each operation is a single atomic
// document write; no transaction spans multiple repositories.
func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:       db,
		users:    NewUsersRepository(db),
		posts:    NewPostsRepository(db),
		comments: NewCommentsRepository(db),
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Posts() Posts {
	return m.posts
}

func (m mngr) Comments() Comments {
	return m.comments
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.posts == nil {
		return errors.New("repository posts should be initialized")
	}

	if m.comments == nil {
		return errors.New("repository comments should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

// CreateTables creates the schema when it does not exist yet.
func (m mngr) CreateTables(ctx context.Context) error {
	models := []any{
		(*model.User)(nil),
		(*model.Post)(nil),
		(*model.Comment)(nil),
	}

	for _, mdl := range models {
		if _, err := m.db.NewCreateTable().Model(mdl).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
