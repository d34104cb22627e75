package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type accountRepositoryImpl struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) account.AccountRepository {
	return &accountRepositoryImpl{db: db}
}

const accountColumns = `id, username, password_hash, first_name, last_name, is_staff, created_at, updated_at`

func scanAccount(row pgx.Row) (account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.FirstName,
		&a.LastName,
		&a.IsStaff,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create implements account.AccountRepository.
func (r *accountRepositoryImpl) Create(ctx context.Context, newAccount account.Account) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO accounts (id, username, password_hash, first_name, last_name, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + accountColumns

	created, err := scanAccount(q.QueryRow(ctx, query,
		newID(),
		newAccount.Username,
		newAccount.PasswordHash,
		newAccount.FirstName,
		newAccount.LastName,
		newAccount.IsStaff,
	))
	if err != nil {
		if uniqueConstraint(err) != "" {
			return account.Account{}, account.ErrUsernameExists
		}
		return account.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return created, nil
}

// GetByID implements account.AccountRepository.
func (r *accountRepositoryImpl) GetByID(ctx context.Context, id string) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}

// GetByUsername implements account.AccountRepository.
func (r *accountRepositoryImpl) GetByUsername(ctx context.Context, username string) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	a, err := scanAccount(q.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, fmt.Errorf("failed to get account by username: %w", err)
	}

	return a, nil
}

// ExistsByUsername implements account.AccountRepository.
func (r *accountRepositoryImpl) ExistsByUsername(ctx context.Context, username string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE username = $1 AND ($2::uuid IS NULL OR id <> $2::uuid)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, username, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return exists, nil
}

// UpdateProfile implements account.AccountRepository.
func (r *accountRepositoryImpl) UpdateProfile(ctx context.Context, id string, req account.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE accounts
		SET username = $1, first_name = $2, last_name = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, req.Username, req.FirstName, req.LastName, id)
	if err != nil {
		if uniqueConstraint(err) != "" {
			return account.ErrUsernameExists
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// UpdatePassword implements account.AccountRepository.
func (r *accountRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE accounts SET password_hash = $1, updated_at = NOW() WHERE id = $2`

	commandTag, err := q.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// Delete implements account.AccountRepository.
func (r *accountRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}
