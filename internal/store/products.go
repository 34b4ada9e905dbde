// ABOUTME: Product store methods for product records with file attachments
// ABOUTME: Attachment keys reference objects in S3-compatible storage

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateProduct creates a new product.
func (s *SQLiteStore) CreateProduct(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (id, name, description, attachment_key, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		nullString(product.Description),
		nullString(product.AttachmentKey),
		product.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	s.logger.Info("created product", "id", product.ID, "name", product.Name)
	return nil
}

// GetProduct retrieves a product by ID.
func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*Product, error) {
	query := `
		SELECT id, name, description, attachment_key, created_at
		FROM products
		WHERE id = ?
	`

	var product Product
	var description, attachmentKey sql.NullString
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&description,
		&attachmentKey,
		&createdAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying product: %w", err)
	}

	product.Description = description.String
	product.AttachmentKey = attachmentKey.String
	product.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &product, nil
}

// ListProducts returns all products ordered by creation time.
func (s *SQLiteStore) ListProducts(ctx context.Context) ([]*Product, error) {
	query := `
		SELECT id, name, description, attachment_key, created_at
		FROM products
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []*Product
	for rows.Next() {
		var product Product
		var description, attachmentKey sql.NullString
		var createdAtStr string

		if err := rows.Scan(&product.ID, &product.Name, &description, &attachmentKey, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		product.Description = description.String
		product.AttachmentKey = attachmentKey.String
		product.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

// UpdateProduct updates a product's name and description.
func (s *SQLiteStore) UpdateProduct(ctx context.Context, product *Product) error {
	query := `UPDATE products SET name = ?, description = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		product.Name,
		nullString(product.Description),
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	s.logger.Info("updated product", "id", product.ID)
	return nil
}

// SetProductAttachment records the storage key of a product's file attachment.
func (s *SQLiteStore) SetProductAttachment(ctx context.Context, id, attachmentKey string) error {
	query := `UPDATE products SET attachment_key = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, attachmentKey, id)
	if err != nil {
		return fmt.Errorf("updating product attachment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	s.logger.Info("set product attachment", "id", id, "attachment_key", attachmentKey)
	return nil
}

// DeleteProduct deletes a product.
func (s *SQLiteStore) DeleteProduct(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	s.logger.Info("deleted product", "id", id)
	return nil
}
