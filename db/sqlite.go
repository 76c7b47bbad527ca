package db

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"aptprice/pricing"
	_ "github.com/mattn/go-sqlite3"
)

// Store records served estimates.
type Store struct {
	database *sql.DB
}

// EstimateRecord is one row of the estimate log.
type EstimateRecord struct {
	RequestID string    `json:"request_id"`
	District  string    `json:"district"`
	Area      int       `json:"area"`
	Bedroom   int       `json:"bedroom"`
	Floor     int       `json:"floor"`
	Raw       float64   `json:"raw"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// Open opens (creating if needed) the SQLite database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway; one connection avoids SQLITE_BUSY.
	database.SetMaxOpenConns(1)

	query := `
    CREATE TABLE IF NOT EXISTS estimates (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        request_id TEXT NOT NULL,
        district TEXT NOT NULL,
        area INTEGER NOT NULL,
        bedroom INTEGER NOT NULL,
        floor INTEGER NOT NULL,
        raw REAL NOT NULL,
        price INTEGER NOT NULL,
        created_at DATETIME NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_estimates_created_at ON estimates(created_at);
    `
	if _, err := database.Exec(query); err != nil {
		database.Close()
		return nil, err
	}
	return &Store{database: database}, nil
}

// Close releases the database handle. It is safe on a nil Store.
func (s *Store) Close() error {
	if s == nil || s.database == nil {
		return nil
	}
	return s.database.Close()
}

// SaveEstimate appends a served estimate under the request id that produced it.
func (s *Store) SaveEstimate(requestID string, est pricing.Estimate) error {
	if s == nil || s.database == nil {
		return errors.New("database not initialized")
	}
	if est.Price.LessThan(decimal.Zero) {
		return errors.New("refusing to store negative price")
	}
	_, err := s.database.Exec(`
        INSERT INTO estimates (request_id, district, area, bedroom, floor, raw, price, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		requestID,
		est.Listing.District,
		est.Listing.Area,
		est.Listing.Bedroom,
		est.Listing.Floor,
		est.Raw,
		est.Price.IntPart(),
		time.Now().UTC(),
	)
	return err
}

// RecentEstimates returns the newest estimates first
func (s *Store) RecentEstimates(limit int) ([]EstimateRecord, error) {
	if s == nil || s.database == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.database.Query(`
        SELECT request_id, district, area, bedroom, floor, raw, price, created_at
        FROM estimates
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]EstimateRecord, 0)
	for rows.Next() {
		var r EstimateRecord
		if err := rows.Scan(&r.RequestID, &r.District, &r.Area, &r.Bedroom, &r.Floor, &r.Raw, &r.Price, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
