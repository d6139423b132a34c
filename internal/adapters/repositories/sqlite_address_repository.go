package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
)

// SQLite-backed implementation of the AddressRepository port.
type SqliteAddressRepository struct{ DB *sql.DB }

func NewSqliteAddressRepository(db *sql.DB) *SqliteAddressRepository {
	return &SqliteAddressRepository{DB: db}
}

const addressColumns = `
	address_id,
	user_id,
	label,
	recipient,
	phone,
	line,
	ward,
	city,
	lon,
	lat,
	is_default
`

func scanAddress(row interface{ Scan(dest ...any) error }) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(
		&a.AddressID, &a.UserID, &a.Label, &a.Recipient, &a.Phone,
		&a.Line, &a.Ward, &a.City, &a.Coordinates.Lon, &a.Coordinates.Lat,
		&a.IsDefault,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Return all of a user's saved addresses, default first.
func (s *SqliteAddressRepository) ListAddresses(ctx context.Context, userID string) ([]*domain.Address, error) {
	if s.DB == nil {
		return nil, errors.New("address repository: DB is nil")
	}

	query := `
	SELECT ` + addressColumns + `
	FROM addresses
	WHERE user_id = ?
	ORDER BY is_default DESC, address_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: query addresses table: %w", err)
	}
	defer rows.Close()

	addresses := make([]*domain.Address, 0, 8)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("list addresses: scan row: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list addresses: row iteration: %w", err)
	}

	return addresses, nil
}

// Return one saved address, scoped to its owner.
func (s *SqliteAddressRepository) GetAddress(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	if s.DB == nil {
		return nil, errors.New("address repository: DB is nil")
	}

	query := `
	SELECT ` + addressColumns + `
	FROM addresses
	WHERE user_id = ? AND address_id = ?;
	`
	a, err := scanAddress(s.DB.QueryRowContext(ctx, query, userID, addressID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get address %q: %w", addressID, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get address %q: %w", addressID, err)
	}

	return a, nil
}

func validateAddress(a *domain.Address) error {
	if a == nil {
		return errors.New("address is nil")
	}
	if strings.TrimSpace(a.AddressID) == "" {
		return errors.New("address id must not be empty")
	}
	if strings.TrimSpace(a.UserID) == "" {
		return errors.New("user id must not be empty")
	}
	if strings.TrimSpace(a.Line) == "" {
		return errors.New("address line must not be empty")
	}
	return nil
}

// Persist a new address. The first address a user saves becomes their
// default automatically.
func (s *SqliteAddressRepository) CreateAddress(ctx context.Context, a *domain.Address) error {
	if s.DB == nil {
		return errors.New("address repository: DB is nil")
	}
	if err := validateAddress(a); err != nil {
		return fmt.Errorf("create address: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create address: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM addresses WHERE user_id = ?`, a.UserID,
	).Scan(&count); err != nil {
		return fmt.Errorf("create address: count existing: %w", err)
	}
	if count == 0 {
		a.IsDefault = true
	}

	query := `
	INSERT INTO addresses (` + addressColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	if _, err := tx.ExecContext(ctx, query,
		a.AddressID, a.UserID, a.Label, a.Recipient, a.Phone,
		a.Line, a.Ward, a.City, a.Coordinates.Lon, a.Coordinates.Lat,
		a.IsDefault,
	); err != nil {
		return fmt.Errorf("create address %q: %w", a.AddressID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create address: commit tx: %w", err)
	}

	return nil
}

// Update an existing address, scoped to its owner.
func (s *SqliteAddressRepository) UpdateAddress(ctx context.Context, a *domain.Address) error {
	if s.DB == nil {
		return errors.New("address repository: DB is nil")
	}
	if err := validateAddress(a); err != nil {
		return fmt.Errorf("update address: %w", err)
	}

	query := `
	UPDATE addresses
	SET label = ?,
		recipient = ?,
		phone = ?,
		line = ?,
		ward = ?,
		city = ?,
		lon = ?,
		lat = ?
	WHERE user_id = ? AND address_id = ?;
	`
	res, err := s.DB.ExecContext(ctx, query,
		a.Label, a.Recipient, a.Phone, a.Line, a.Ward, a.City,
		a.Coordinates.Lon, a.Coordinates.Lat,
		a.UserID, a.AddressID,
	)
	if err != nil {
		return fmt.Errorf("update address %q: %w", a.AddressID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update address %q: rows affected: %w", a.AddressID, err)
	}
	if n == 0 {
		return fmt.Errorf("update address %q: %w", a.AddressID, ports.ErrNotFound)
	}

	return nil
}

// Delete a saved address, scoped to its owner.
func (s *SqliteAddressRepository) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if s.DB == nil {
		return errors.New("address repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM addresses WHERE user_id = ? AND address_id = ?`, userID, addressID)
	if err != nil {
		return fmt.Errorf("delete address %q: %w", addressID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete address %q: rows affected: %w", addressID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete address %q: %w", addressID, ports.ErrNotFound)
	}

	return nil
}

// SetDefault marks one address as the user's default and clears the
// flag on all others, atomically.
func (s *SqliteAddressRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	if s.DB == nil {
		return errors.New("address repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set default address: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE addresses SET is_default = 1 WHERE user_id = ? AND address_id = ?`,
		userID, addressID)
	if err != nil {
		return fmt.Errorf("set default address %q: %w", addressID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set default address %q: rows affected: %w", addressID, err)
	}
	if n == 0 {
		return fmt.Errorf("set default address %q: %w", addressID, ports.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE addresses SET is_default = 0 WHERE user_id = ? AND address_id != ?`,
		userID, addressID); err != nil {
		return fmt.Errorf("set default address %q: clear others: %w", addressID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set default address: commit tx: %w", err)
	}

	return nil
}
