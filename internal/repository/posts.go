package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/inkpost/inkpost/internal/model"
)

// PostFilter narrows post listings. Zero values are ignored.
type PostFilter struct {
	ListOptions
	UserID     uuid.UUID
	PostID     uuid.UUID
	Category   string
	Slug       string
	SearchTerm string
}

// Posts is the article repository.
type Posts interface {
	Create(ctx context.Context, record *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	Update(ctx context.Context, record *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter PostFilter) ([]*model.Post, int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type posts struct {
	db *bun.DB
}

var _ Posts = (*posts)(nil)

// NewPostsRepository builds a Posts repository over the given handle.
func NewPostsRepository(db *bun.DB) Posts {
	return &posts{db: db}
}

func (r *posts) Create(ctx context.Context, record *model.Post) (*model.Post, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, conflict(err, "a post with this title already exists")
		}
		return nil, err
	}

	return record, nil
}

func (r *posts) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	record := new(model.Post)
	err := r.db.NewSelect().Model(record).Where("pst.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *posts) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	record := new(model.Post)
	err := r.db.NewSelect().Model(record).Where("pst.slug = ?", slug).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *posts) Update(ctx context.Context, record *model.Post) (*model.Post, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(record).
		Column("title", "slug", "content", "image", "category", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflict(err, "a post with this title already exists")
		}
		return nil, err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrPostNotFound
	}

	return r.GetByID(ctx, record.ID)
}

func (r *posts) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().Model((*model.Post)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *posts) List(ctx context.Context, filter PostFilter) ([]*model.Post, int, error) {
	var records []*model.Post

	q := r.db.NewSelect().Model(&records)

	if filter.UserID != uuid.Nil {
		q = q.Where("pst.user_id = ?", filter.UserID)
	}
	if filter.PostID != uuid.Nil {
		q = q.Where("pst.id = ?", filter.PostID)
	}
	if filter.Category != "" {
		q = q.Where("pst.category = ?", filter.Category)
	}
	if filter.Slug != "" {
		q = q.Where("pst.slug = ?", filter.Slug)
	}
	if filter.SearchTerm != "" {
		term := "%" + filter.SearchTerm + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("pst.title LIKE ?", term).WhereOr("pst.content LIKE ?", term)
		})
	}

	total, err := q.
		OrderExpr(filter.order("pst.updated_at")).
		Offset(filter.Offset).
		Limit(filter.limit()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *posts) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*model.Post)(nil)).
		Where("pst.created_at >= ?", since).
		Count(ctx)
}
