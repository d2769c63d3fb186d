//  Copyright 2015 by Leipzig University Library, http://ub.uni-leipzig.de
//                    The Finc Authors, http://finc.info
//                    Martin Czygan, <martin.czygan@uni-leipzig.de>
//
// This file is part of some open source application.
//
// Some open source application is free software: you can redistribute
// it and/or modify it under the terms of the GNU General Public
// License as published by the Free Software Foundation, either
// version 3 of the License, or (at your option) any later version.
//
// Some open source application is distributed in the hope that it will
// be useful, but WITHOUT ANY WARRANTY; without even the implied warranty
// of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Foobar.  If not, see <http://www.gnu.org/licenses/>.
//
// @license GPL-3.0+ <http://spdx.org/licenses/GPL-3.0+>

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/miku/indexoai"
	_ "modernc.org/sqlite"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		datestamp INTEGER NOT NULL,
		language TEXT NOT NULL DEFAULT '',
		mime_type TEXT NOT NULL DEFAULT '',
		entries_json TEXT NOT NULL DEFAULT '[]'
	);`,
	`CREATE INDEX IF NOT EXISTS idx_records_datestamp ON records(datestamp);`,
}

// SQLite stores records in a SQLite database. Datestamps are kept as unix
// seconds.
type SQLite struct {
	DB *sql.DB
}

// OpenSQLite opens or creates the database at path and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, err
	}
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &SQLite{DB: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.DB.Close()
}

// execer is implemented by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Put inserts or replaces a record, matched by key. A zero ID lets the
// database assign one.
func (s *SQLite) Put(ctx context.Context, rec indexoai.Record) error {
	return put(ctx, s.DB, rec)
}

// Load puts all records in a single transaction.
func (s *SQLite) Load(ctx context.Context, records []indexoai.Record) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := put(ctx, tx, rec); err != nil {
			tx.Rollback()
			return fmt.Errorf("record %q: %w", rec.Key, err)
		}
	}
	return tx.Commit()
}

func put(ctx context.Context, ex execer, rec indexoai.Record) error {
	if rec.Key == "" {
		return ErrNoKey
	}
	if rec.ID < 0 {
		return ErrNegativeID
	}
	entries, err := encodeEntries(rec.Entries)
	if err != nil {
		return err
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	res, err := ex.ExecContext(ctx,
		`UPDATE records SET datestamp = ?, language = ?, mime_type = ?, entries_json = ? WHERE key = ?`,
		rec.Datestamp.Unix(), rec.Language, rec.MimeType, string(b), rec.Key)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return err
	}
	var id interface{}
	if rec.ID != 0 {
		id = rec.ID
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO records (id, key, datestamp, language, mime_type, entries_json) VALUES (?, ?, ?, ?, ?, ?)`,
		id, rec.Key, rec.Datestamp.Unix(), rec.Language, rec.MimeType, string(b))
	return err
}

// Earliest returns the smallest datestamp of all records.
func (s *SQLite) Earliest(ctx context.Context) (time.Time, error) {
	var min sql.NullInt64
	if err := s.DB.QueryRowContext(ctx, `SELECT MIN(datestamp) FROM records`).Scan(&min); err != nil {
		return time.Time{}, err
	}
	if !min.Valid {
		return time.Time{}, indexoai.ErrNoEarliestDatestamp
	}
	return time.Unix(min.Int64, 0).UTC(), nil
}

const selectRecord = `SELECT id, key, datestamp, language, mime_type, entries_json FROM records`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (indexoai.Record, error) {
	var (
		rec         indexoai.Record
		datestamp   int64
		entriesJSON string
	)
	if err := row.Scan(&rec.ID, &rec.Key, &datestamp, &rec.Language, &rec.MimeType, &entriesJSON); err != nil {
		return rec, err
	}
	rec.Datestamp = time.Unix(datestamp, 0).UTC()
	var entries []entryJSON
	if err := json.Unmarshal([]byte(entriesJSON), &entries); err != nil {
		return rec, fmt.Errorf("record %q: entries: %w", rec.Key, err)
	}
	decoded, err := decodeEntries(entries)
	if err != nil {
		return rec, fmt.Errorf("record %q: %w", rec.Key, err)
	}
	rec.Entries = decoded
	return rec, nil
}

// Lookup finds a record by key, nil if there is none.
func (s *SQLite) Lookup(ctx context.Context, key string) (*indexoai.Record, error) {
	row := s.DB.QueryRowContext(ctx, selectRecord+` WHERE key = ?`, key)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Scan runs a list query in a single statement.
func (s *SQLite) Scan(ctx context.Context, q indexoai.Query) ([]indexoai.Record, error) {
	var (
		conds []string
		args  []interface{}
	)
	if q.ResumeID != 0 {
		conds = append(conds, "id >= ?")
		args = append(args, q.ResumeID)
	}
	if !q.Window.From.IsZero() {
		conds = append(conds, "datestamp >= ?")
		args = append(args, q.Window.From.Unix())
	}
	if !q.Window.Until.IsZero() {
		conds = append(conds, "datestamp <= ?")
		args = append(args, q.Window.Until.Unix())
	}
	query := selectRecord
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id ASC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []indexoai.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
