package adapters

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS pending_records (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	body TEXT NOT NULL
)`

// SQLiteStorageAdapter persists pending records in a SQLite database.
// Records are stored as JSON rows in insertion order.
type SQLiteStorageAdapter struct {
	db         *sql.DB
	maxRecords int
}

var _ StorageAdapter = (*SQLiteStorageAdapter)(nil)

// NewSQLiteStorageAdapter opens (or creates) the database at path.
//
// Parameters:
//   - path: Database file path, or ":memory:"
//   - maxRecords: Upper bound on stored records; zero means unbounded
func NewSQLiteStorageAdapter(path string, maxRecords int) (*SQLiteStorageAdapter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStorageAdapter{db: db, maxRecords: maxRecords}, nil
}

// Save replaces the stored records with records.
func (s *SQLiteStorageAdapter) Save(records []Record) error {
	if s.maxRecords > 0 && len(records) > s.maxRecords {
		return &StorageQuotaExceededError{
			Message: fmt.Sprintf("cannot store %d records, quota is %d", len(records), s.maxRecords),
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pending_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO pending_records (body) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		body, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := stmt.Exec(string(body)); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return tx.Commit()
}

// Load returns all stored records in insertion order.
func (s *SQLiteStorageAdapter) Load() ([]Record, error) {
	rows, err := s.db.Query(`SELECT body FROM pending_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var record Record
		if err := json.Unmarshal([]byte(body), &record); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Clear deletes all stored records.
func (s *SQLiteStorageAdapter) Clear() error {
	_, err := s.db.Exec(`DELETE FROM pending_records`)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStorageAdapter) Close() error {
	return s.db.Close()
}
