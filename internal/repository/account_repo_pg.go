package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airops/internal/database"
	"github.com/Domenick1991/airops/internal/domain"
)

type AccountRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, account domain.Account) error
	// FindRole returns the stored role of the account matching both
	// username and password, or ErrNotFound.
	FindRole(ctx context.Context, username, password string) (string, error)
}

type PGAccountRepository struct {
	db database.Querier
}

func NewAccountRepository(db database.Querier) AccountRepository {
	return &PGAccountRepository{db: db}
}

func (r *PGAccountRepository) Exists(ctx context.Context, username string) (bool, error) {
	n, err := database.QueryCount(ctx, r.db, `SELECT 1 FROM Users WHERE username = $1`, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return n > 0, nil
}

func (r *PGAccountRepository) Create(ctx context.Context, account domain.Account) error {
	_, err := database.ExecuteUpdate(ctx, r.db,
		`INSERT INTO Users (username, password, role) VALUES ($1, $2, $3)`,
		account.Username, account.Password, string(account.Role))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrKeyConflict
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *PGAccountRepository) FindRole(ctx context.Context, username, password string) (string, error) {
	res, err := database.QueryRows(ctx, r.db,
		`SELECT role FROM Users WHERE username = $1 AND password = $2`, username, password)
	if err != nil {
		return "", fmt.Errorf("failed to look up account: %w", err)
	}
	if res.Empty() {
		return "", ErrNotFound
	}
	return res.Rows[0][0], nil
}

var _ AccountRepository = (*PGAccountRepository)(nil)
