// ABOUTME: Calibration store methods for company-scoped calibration records
// ABOUTME: Supports listing by company with due-date ordering

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateCalibration creates a new calibration record.
func (s *SQLiteStore) CreateCalibration(ctx context.Context, cal *Calibration) error {
	query := `
		INSERT INTO calibrations (id, company_id, instrument, serial_number, calibrated_at, due_at, result, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		cal.ID,
		cal.CompanyID,
		cal.Instrument,
		cal.SerialNumber,
		cal.CalibratedAt.UTC().Format(time.RFC3339),
		cal.DueAt.UTC().Format(time.RFC3339),
		cal.Result,
		nullString(cal.Notes),
		cal.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting calibration: %w", err)
	}

	s.logger.Info("created calibration", "id", cal.ID, "company_id", cal.CompanyID, "instrument", cal.Instrument)
	return nil
}

// GetCalibration retrieves a calibration record by ID.
func (s *SQLiteStore) GetCalibration(ctx context.Context, id string) (*Calibration, error) {
	query := `
		SELECT id, company_id, instrument, serial_number, calibrated_at, due_at, result, notes, created_at
		FROM calibrations
		WHERE id = ?
	`

	cal, err := scanCalibration(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalibrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying calibration: %w", err)
	}

	return cal, nil
}

// ListCalibrations returns calibration records ordered by due date. When
// companyID is non-empty, only that company's records are returned.
func (s *SQLiteStore) ListCalibrations(ctx context.Context, companyID string) ([]*Calibration, error) {
	query := `
		SELECT id, company_id, instrument, serial_number, calibrated_at, due_at, result, notes, created_at
		FROM calibrations
	`
	args := []any{}
	if companyID != "" {
		query += ` WHERE company_id = ?`
		args = append(args, companyID)
	}
	query += ` ORDER BY due_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying calibrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cals []*Calibration
	for rows.Next() {
		cal, err := scanCalibration(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning calibration: %w", err)
		}
		cals = append(cals, cal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calibrations: %w", err)
	}

	return cals, nil
}

// UpdateCalibration updates a calibration record's mutable fields.
func (s *SQLiteStore) UpdateCalibration(ctx context.Context, cal *Calibration) error {
	query := `
		UPDATE calibrations
		SET instrument = ?, serial_number = ?, calibrated_at = ?, due_at = ?, result = ?, notes = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		cal.Instrument,
		cal.SerialNumber,
		cal.CalibratedAt.UTC().Format(time.RFC3339),
		cal.DueAt.UTC().Format(time.RFC3339),
		cal.Result,
		nullString(cal.Notes),
		cal.ID,
	)
	if err != nil {
		return fmt.Errorf("updating calibration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCalibrationNotFound
	}

	s.logger.Info("updated calibration", "id", cal.ID)
	return nil
}

// DeleteCalibration deletes a calibration record.
func (s *SQLiteStore) DeleteCalibration(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM calibrations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting calibration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCalibrationNotFound
	}

	s.logger.Info("deleted calibration", "id", id)
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalibration(row rowScanner) (*Calibration, error) {
	var cal Calibration
	var notes sql.NullString
	var calibratedAtStr, dueAtStr, createdAtStr string

	if err := row.Scan(
		&cal.ID,
		&cal.CompanyID,
		&cal.Instrument,
		&cal.SerialNumber,
		&calibratedAtStr,
		&dueAtStr,
		&cal.Result,
		&notes,
		&createdAtStr,
	); err != nil {
		return nil, err
	}

	cal.Notes = notes.String

	var err error
	cal.CalibratedAt, err = time.Parse(time.RFC3339, calibratedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing calibrated_at: %w", err)
	}
	cal.DueAt, err = time.Parse(time.RFC3339, dueAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing due_at: %w", err)
	}
	cal.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &cal, nil
}
