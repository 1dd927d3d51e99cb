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

// Comments is the comment repository.
type Comments interface {
	Create(ctx context.Context, record *model.Comment) (*model.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error)
	List(ctx context.Context, opts ListOptions) ([]*model.Comment, int, error)
	Update(ctx context.Context, record *model.Comment) (*model.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type comments struct {
	db *bun.DB
}

var _ Comments = (*comments)(nil)

// NewCommentsRepository builds a Comments repository over the given handle.
func NewCommentsRepository(db *bun.DB) Comments {
	return &comments{db: db}
}

func (r *comments) Create(ctx context.Context, record *model.Comment) (*model.Comment, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

func (r *comments) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	record := new(model.Comment)
	err := r.db.NewSelect().Model(record).Where("cmt.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *comments) ListByPost(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error) {
	var records []*model.Comment
	err := r.db.NewSelect().
		Model(&records).
		Where("cmt.post_id = ?", postID).
		OrderExpr("cmt.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *comments) List(ctx context.Context, opts ListOptions) ([]*model.Comment, int, error) {
	var records []*model.Comment

	total, err := r.db.NewSelect().
		Model(&records).
		OrderExpr(opts.order("cmt.created_at")).
		Offset(opts.Offset).
		Limit(opts.limit()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *comments) Update(ctx context.Context, record *model.Comment) (*model.Comment, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(record).
		Column("content", "likes", "number_of_likes", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrCommentNotFound
	}

	return r.GetByID(ctx, record.ID)
}

func (r *comments) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().Model((*model.Comment)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *comments) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*model.Comment)(nil)).
		Where("cmt.created_at >= ?", since).
		Count(ctx)
}
