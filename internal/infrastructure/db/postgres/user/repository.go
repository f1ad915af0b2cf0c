package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"docmanager-api/internal/domain/user"
	"docmanager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*User, error) {
	u := new(User)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Name,
		&u.PasswordHash,
		&u.Role,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, SelectUserByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUserByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, SelectUserByUsername, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUserSummaries(ctx context.Context) (user.Summaries, error) {
	rows, err := r.db.Query(ctx, SelectUserSummaries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ss := Summaries{}
	for rows.Next() {
		s := new(Summary)

		if err = rows.Scan(
			&s.ID,
			&s.Username,
			&s.Name,
			&s.Role,

			&s.CreatedAt,
			&s.UpdatedAt,

			&s.DocumentCount,
		); err != nil {
			return nil, err
		}

		ss = append(ss, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBSummaries(ss), nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(
		ctx,
		InsertUser,
		req.Username, req.Name, req.PasswordHash, string(req.Role),
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrUsernameTaken
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id user.UUID, passwordHash string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, UpdatePasswordByID, passwordHash, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
