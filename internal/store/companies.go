// ABOUTME: Company store methods for company record persistence
// ABOUTME: Companies own calibration records and group accounts

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateCompany creates a new company.
func (s *SQLiteStore) CreateCompany(ctx context.Context, company *Company) error {
	query := `
		INSERT INTO companies (id, name, address, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		company.ID,
		company.Name,
		nullString(company.Address),
		company.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}

	s.logger.Info("created company", "id", company.ID, "name", company.Name)
	return nil
}

// GetCompany retrieves a company by ID.
func (s *SQLiteStore) GetCompany(ctx context.Context, id string) (*Company, error) {
	query := `
		SELECT id, name, address, created_at
		FROM companies
		WHERE id = ?
	`

	var company Company
	var address sql.NullString
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&company.ID,
		&company.Name,
		&address,
		&createdAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying company: %w", err)
	}

	company.Address = address.String
	company.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &company, nil
}

// ListCompanies returns all companies ordered by creation time.
func (s *SQLiteStore) ListCompanies(ctx context.Context) ([]*Company, error) {
	query := `
		SELECT id, name, address, created_at
		FROM companies
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var companies []*Company
	for rows.Next() {
		var company Company
		var address sql.NullString
		var createdAtStr string

		if err := rows.Scan(&company.ID, &company.Name, &address, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}

		company.Address = address.String
		company.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		companies = append(companies, &company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}

	return companies, nil
}

// UpdateCompany updates a company's name and address.
func (s *SQLiteStore) UpdateCompany(ctx context.Context, company *Company) error {
	query := `UPDATE companies SET name = ?, address = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		company.Name,
		nullString(company.Address),
		company.ID,
	)
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCompanyNotFound
	}

	s.logger.Info("updated company", "id", company.ID)
	return nil
}

// DeleteCompany deletes a company.
func (s *SQLiteStore) DeleteCompany(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM companies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCompanyNotFound
	}

	s.logger.Info("deleted company", "id", id)
	return nil
}
