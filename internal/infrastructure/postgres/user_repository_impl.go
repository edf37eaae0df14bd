package postgres

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/domain/repository"
)

var userColumns = []interface{}{"id", "name", "email", "password_hash", "role", "created_at"}

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

func userByID(id int64) *goqu.SelectDataset {
	return dialect.From(tableUsers).Select(userColumns...).Where(goqu.C("id").Eq(id)).Prepared(true)
}

func userByEmail(email string) *goqu.SelectDataset {
	return dialect.From(tableUsers).Select(userColumns...).
		Where(goqu.Func("LOWER", goqu.C("email")).Eq(goqu.Func("LOWER", email))).
		Prepared(true)
}

func usersWithRole(role entity.Role) *goqu.SelectDataset {
	return dialect.From(tableUsers).Where(goqu.C("role").Eq(string(role)))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, userByID(id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, userByEmail(email))
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return queryCount(ctx, r.db, dialect.From(tableUsers))
}

func (r *UserRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	return queryCount(ctx, r.db, usersWithRole(role))
}

func (r *UserRepository) getOne(ctx context.Context, ds *goqu.SelectDataset) (*entity.User, error) {
	query, args, err := build(ds)
	if err != nil {
		return nil, err
	}

	u := &entity.User{}
	var role string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.Role = entity.Role(role)

	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
