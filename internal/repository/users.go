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

// ListOptions paginate moderation listings.
type ListOptions struct {
	Offset    int
	Limit     int
	Ascending bool
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 || o.Limit > 100 {
		return 9
	}
	return o.Limit
}

func (o ListOptions) order(column string) string {
	if o.Ascending {
		return column + " ASC"
	}
	return column + " DESC"
}

// Users is the account repository.
type Users interface {
	Create(ctx context.Context, record *model.User) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, record *model.User) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts ListOptions) ([]*model.User, int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository builds a Users repository over the given handle.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) Create(ctx context.Context, record *model.User) (*model.User, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, conflict(err, "username or email already taken")
		}
		return nil, err
	}

	return record, nil
}

func (r *users) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	record := new(model.User)
	err := r.db.NewSelect().Model(record).Where("usr.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	record := new(model.User)
	err := r.db.NewSelect().Model(record).Where("usr.email = ?", email).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	record := new(model.User)
	err := r.db.NewSelect().Model(record).Where("usr.username = ?", username).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *users) Update(ctx context.Context, record *model.User) (*model.User, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(record).
		Column("username", "email", "password_hash", "profile_picture", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflict(err, "username or email already taken")
		}
		return nil, err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrUserNotFound
	}

	return r.GetByID(ctx, record.ID)
}

func (r *users) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().Model((*model.User)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *users) List(ctx context.Context, opts ListOptions) ([]*model.User, int, error) {
	var records []*model.User

	total, err := r.db.NewSelect().
		Model(&records).
		OrderExpr(opts.order("usr.created_at")).
		Offset(opts.Offset).
		Limit(opts.limit()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *users) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*model.User)(nil)).
		Where("usr.created_at >= ?", since).
		Count(ctx)
}
