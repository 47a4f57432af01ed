package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotel_booking/internal/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return getHotel(ctx, r.db, id)
}

func (r *Repo) ListHotels(ctx context.Context, city string) ([]domain.Hotel, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if city == "" {
		rows, err = r.db.QueryContext(ctx, listHotelsSQL)
	} else {
		rows, err = r.db.QueryContext(ctx, listHotelsByCitySQL, city)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) DistinctCities(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, distinctCitiesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) ListBookingsByEmail(ctx context.Context, email string) ([]domain.BookingView, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsByEmailSQL, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.BookingView{}
	for rows.Next() {
		var (
			bv        domain.BookingView
			createdAt string
		)
		if err := rows.Scan(
			&bv.ID,
			&bv.HotelID,
			&bv.GuestName,
			&bv.GuestEmail,
			&bv.GuestPhone,
			&bv.CheckIn,
			&bv.CheckOut,
			&bv.Rooms,
			&bv.Guests,
			&bv.TotalPrice,
			&createdAt,
			&bv.HotelName,
			&bv.City,
			&bv.Area,
		); err != nil {
			return nil, err
		}
		if bv.CreatedAt, err = time.Parse(domain.CreatedAtLayout, createdAt); err != nil {
			return nil, fmt.Errorf("booking %d created_at: %w", bv.ID, err)
		}
		out = append(out, bv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InTx runs fn inside a transaction. The deferred rollback is a no-op after a
// successful commit, so the connection is released on every path.
func (r *Repo) InTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txRepo{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txRepo struct{ q querier }

func (t *txRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return getHotel(ctx, t.q, id)
}

func (t *txRepo) InsertBooking(ctx context.Context, b domain.Booking) (int64, error) {
	res, err := t.q.ExecContext(ctx, insertBookingSQL,
		b.HotelID,
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		b.CheckIn,
		b.CheckOut,
		b.Rooms,
		b.Guests,
		b.TotalPrice,
		b.CreatedAt.UTC().Format(domain.CreatedAtLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func getHotel(ctx context.Context, q querier, id int64) (domain.Hotel, error) {
	h, err := scanHotel(q.QueryRowContext(ctx, getHotelSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func scanHotel(s rowScanner) (domain.Hotel, error) {
	var (
		h         domain.Hotel
		amenities string
	)
	if err := s.Scan(
		&h.ID,
		&h.Name,
		&h.City,
		&h.Area,
		&h.NightlyPrice,
		&h.Rating,
		&h.Description,
		&h.ImagePath,
		&amenities,
	); err != nil {
		return domain.Hotel{}, err
	}
	h.Amenities = domain.SplitAmenities(amenities)
	return h, nil
}

func hotelArgs(h domain.Hotel) []any {
	return []any{
		h.Name,
		h.City,
		h.Area,
		h.NightlyPrice,
		h.Rating,
		h.Description,
		h.ImagePath,
		domain.JoinAmenities(h.Amenities),
	}
}
