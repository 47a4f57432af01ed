package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	SQLite Dialect = "sqlite"
	MySQL  Dialect = "mysql"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case SQLite, MySQL:
		return Dialect(s), nil
	}
	return "", fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or mysql)", s)
}

// Open connects and pings. sqlite gets a single connection so writers never
// race for the file lock.
func Open(d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if d == SQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}

var schemas = map[Dialect][]string{
	SQLite: {
		`CREATE TABLE IF NOT EXISTS hotels (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  name          TEXT    NOT NULL,
  city          TEXT    NOT NULL,
  area          TEXT    NOT NULL,
  nightly_price INTEGER NOT NULL CHECK (nightly_price > 0),
  rating        REAL    NOT NULL CHECK (rating >= 0 AND rating <= 5),
  description   TEXT    NOT NULL,
  image_path    TEXT    NOT NULL,
  amenities     TEXT    NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS bookings (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  hotel_id    INTEGER NOT NULL,
  guest_name  TEXT    NOT NULL,
  guest_email TEXT    NOT NULL,
  guest_phone TEXT    NOT NULL,
  check_in    TEXT    NOT NULL,
  check_out   TEXT    NOT NULL,
  rooms       INTEGER NOT NULL CHECK (rooms >= 1),
  guests      INTEGER NOT NULL CHECK (guests >= 1),
  total_price INTEGER NOT NULL,
  created_at  TEXT    NOT NULL,
  CHECK (check_out > check_in),
  FOREIGN KEY (hotel_id) REFERENCES hotels(id)
)`,
		`CREATE INDEX IF NOT EXISTS idx_hotels_city ON hotels (city)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_email_created ON bookings (guest_email, created_at)`,
	},
	// utf8mb4_bin keeps city and email comparisons exact, matching sqlite.
	MySQL: {
		`CREATE TABLE IF NOT EXISTS hotels (
  id            BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name          VARCHAR(255) NOT NULL,
  city          VARCHAR(128) COLLATE utf8mb4_bin NOT NULL,
  area          VARCHAR(128) NOT NULL,
  nightly_price BIGINT       NOT NULL,
  rating        DOUBLE       NOT NULL,
  description   TEXT         NOT NULL,
  image_path    VARCHAR(255) NOT NULL,
  amenities     TEXT         NOT NULL,
  KEY idx_hotels_city (city),
  CONSTRAINT chk_hotels_price CHECK (nightly_price > 0),
  CONSTRAINT chk_hotels_rating CHECK (rating >= 0 AND rating <= 5)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS bookings (
  id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  hotel_id    BIGINT       NOT NULL,
  guest_name  VARCHAR(255) NOT NULL,
  guest_email VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
  guest_phone VARCHAR(64)  NOT NULL,
  check_in    CHAR(10)     NOT NULL,
  check_out   CHAR(10)     NOT NULL,
  rooms       INT          NOT NULL,
  guests      INT          NOT NULL,
  total_price BIGINT       NOT NULL,
  created_at  CHAR(19)     NOT NULL,
  KEY idx_bookings_email_created (guest_email, created_at),
  CONSTRAINT fk_bookings_hotel FOREIGN KEY (hotel_id) REFERENCES hotels (id),
  CONSTRAINT chk_bookings_rooms CHECK (rooms >= 1),
  CONSTRAINT chk_bookings_guests CHECK (guests >= 1),
  CONSTRAINT chk_bookings_range CHECK (check_out > check_in)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
}

// EnsureSchema creates the hotels and bookings tables when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	stmts, ok := schemas[d]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", d)
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Seed inserts the demo hotels when the hotels table is empty and reports how
// many rows it wrote. Existing rows are never touched.
func Seed(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, countHotelsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count hotels: %w", err)
	}
	if n > 0 {
		log.Debug().Int("hotels", n).Msg("seed skipped; hotels present")
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, insertHotelSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, h := range DemoHotels {
		if _, err := stmt.ExecContext(ctx, hotelArgs(h)...); err != nil {
			return 0, fmt.Errorf("seed hotel %q: %w", h.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	log.Info().Int("hotels", len(DemoHotels)).Msg("demo hotels seeded")
	return len(DemoHotels), nil
}

// Init is the startup step: schema first, then seed.
func Init(ctx context.Context, db *sql.DB, d Dialect) error {
	if err := EnsureSchema(ctx, db, d); err != nil {
		return err
	}
	_, err := Seed(ctx, db)
	return err
}
