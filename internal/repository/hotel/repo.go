package hotel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kailas-cloud/hotelsearch/internal/db"
	"github.com/kailas-cloud/hotelsearch/internal/domain"
	domhotel "github.com/kailas-cloud/hotelsearch/internal/domain/hotel"
)

// store is the consumer interface for the record database (ISP).
type store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS tb_hotel (
	id        INTEGER PRIMARY KEY,
	name      TEXT    NOT NULL,
	address   TEXT    NOT NULL DEFAULT '',
	price     INTEGER NOT NULL DEFAULT 0,
	score     INTEGER NOT NULL DEFAULT 0,
	brand     TEXT    NOT NULL DEFAULT '',
	city      TEXT    NOT NULL DEFAULT '',
	star_name TEXT    NOT NULL DEFAULT '',
	business  TEXT    NOT NULL DEFAULT '',
	latitude  TEXT    NOT NULL DEFAULT '',
	longitude TEXT    NOT NULL DEFAULT '',
	pic       TEXT    NOT NULL DEFAULT '',
	is_ad     INTEGER NOT NULL DEFAULT 0
)`

const columns = `id, name, address, price, score, brand, city, star_name, business, latitude, longitude, pic, is_ad`

// Repo implements usecase/indexing.Records over SQLite.
type Repo struct {
	store store
}

// New creates a hotel record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Migrate creates the hotel table if it does not exist.
func (r *Repo) Migrate(ctx context.Context) error {
	if _, err := r.store.ExecContext(ctx, schema); err != nil {
		return &db.Error{Op: db.OpQuery, Err: fmt.Errorf("create tb_hotel: %w", err)}
	}
	return nil
}

// FindByID returns the hotel record with the given id.
func (r *Repo) FindByID(ctx context.Context, id int64) (domhotel.Hotel, error) {
	row := r.store.QueryRowContext(ctx, `SELECT `+columns+` FROM tb_hotel WHERE id = ?`, id)
	h, err := scanHotel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domhotel.Hotel{}, domain.ErrHotelNotFound
		}
		return domhotel.Hotel{}, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("select hotel %d: %w", id, err)}
	}
	return h, nil
}

// ListAll returns every hotel record ordered by id.
func (r *Repo) ListAll(ctx context.Context) ([]domhotel.Hotel, error) {
	rows, err := r.store.QueryContext(ctx, `SELECT `+columns+` FROM tb_hotel ORDER BY id`)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("select hotels: %w", err)}
	}
	defer rows.Close()

	var out []domhotel.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("scan hotel: %w", err)}
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("iterate hotels: %w", err)}
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHotel(s scanner) (domhotel.Hotel, error) {
	var h domhotel.Hotel
	err := s.Scan(
		&h.ID, &h.Name, &h.Address, &h.Price, &h.Score,
		&h.Brand, &h.City, &h.StarName, &h.Business,
		&h.Latitude, &h.Longitude, &h.Pic, &h.Promoted,
	)
	return h, err
}
