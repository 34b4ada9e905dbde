// ABOUTME: Account store methods for user identity persistence
// ABOUTME: Supports email/password auth with role and company assignment

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateAccount creates a new account. The email must already be
// lowercase-normalized by the caller.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO accounts (id, email, username, password_hash, mobile, role, company_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.Username,
		account.PasswordHash,
		nullString(account.Mobile),
		account.Role,
		nullString(account.CompanyID),
		account.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		// Check for unique constraint violation
		if isUniqueConstraintError(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("inserting account: %w", err)
	}

	s.logger.Info("created account", "id", account.ID, "email", account.Email)
	return nil
}

// GetAccountByID retrieves an account by ID. The password hash is never
// selected; every caller of this method handles request authorization and
// must not see credential material.
func (s *SQLiteStore) GetAccountByID(ctx context.Context, id string) (*Account, error) {
	query := `
		SELECT id, email, username, mobile, role, company_id, created_at
		FROM accounts
		WHERE id = ?
	`

	var account Account
	var mobile, companyID sql.NullString
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&mobile,
		&account.Role,
		&companyID,
		&createdAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying account: %w", err)
	}

	account.Mobile = mobile.String
	account.CompanyID = companyID.String
	account.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &account, nil
}

// GetAccountByEmail retrieves an account by email, including the password
// hash for credential verification at login.
func (s *SQLiteStore) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	query := `
		SELECT id, email, username, password_hash, mobile, role, company_id, created_at
		FROM accounts
		WHERE email = ?
	`

	var account Account
	var mobile, companyID sql.NullString
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&account.PasswordHash,
		&mobile,
		&account.Role,
		&companyID,
		&createdAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying account by email: %w", err)
	}

	account.Mobile = mobile.String
	account.CompanyID = companyID.String
	account.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &account, nil
}

// UpdateAccount updates an account's mutable fields (username, mobile, role,
// company). Email and password hash are not changed by this method.
func (s *SQLiteStore) UpdateAccount(ctx context.Context, account *Account) error {
	query := `
		UPDATE accounts
		SET username = ?, mobile = ?, role = ?, company_id = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		account.Username,
		nullString(account.Mobile),
		account.Role,
		nullString(account.CompanyID),
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	s.logger.Info("updated account", "id", account.ID)
	return nil
}

// UpdateAccountRole changes an account's role. Takes effect on the account's
// next authenticated request, regardless of any token already issued.
func (s *SQLiteStore) UpdateAccountRole(ctx context.Context, id string, role Role) error {
	query := `UPDATE accounts SET role = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("updating account role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	s.logger.Info("updated account role", "id", id, "role", role)
	return nil
}

// DeleteAccount deletes an account.
func (s *SQLiteStore) DeleteAccount(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	s.logger.Info("deleted account", "id", id)
	return nil
}

// CountAccounts returns the number of accounts.
func (s *SQLiteStore) CountAccounts(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting accounts: %w", err)
	}
	return count, nil
}

// nullString converts an empty string to a NULL database value.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
