// Package catalog persists summaries of loaded vector-field sequences
// in a local sqlite database, so repeated batch loads over the same
// experiment directories can be compared without reloading the files.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Catalog wraps the sqlite handle.
type Catalog struct {
	*sql.DB
}

// Open opens (creating if needed) the catalog database at path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sequences (
			id TEXT PRIMARY KEY,
			directory TEXT,
			frames INTEGER,
			rows INTEGER,
			cols INTEGER,
			delta_t DOUBLE,
			length_unit TEXT,
			velocity_unit TEXT,
			mean_speed DOUBLE,
			loaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{db}, nil
}

// Record is one catalogued sequence load.
type Record struct {
	ID           string
	Directory    string
	Frames       int
	Rows         int
	Cols         int
	DeltaT       float64
	LengthUnit   string
	VelocityUnit string
	MeanSpeed    float64
	LoadedAt     time.Time
}

func (r *Record) String() string {
	return fmt.Sprintf("%s: %d frames of %dx%d, dt %g us, mean speed %g %s",
		r.Directory, r.Frames, r.Rows, r.Cols, r.DeltaT, r.MeanSpeed, r.VelocityUnit)
}

// Insert stores a record, assigning a fresh id when none is set, and
// returns the id.
func (c *Catalog) Insert(rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := c.Exec(
		`INSERT INTO sequences (id, directory, frames, rows, cols, delta_t, length_unit, velocity_unit, mean_speed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Directory, rec.Frames, rec.Rows, rec.Cols, rec.DeltaT,
		rec.LengthUnit, rec.VelocityUnit, rec.MeanSpeed,
	)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// List returns the most recent records, newest first.
func (c *Catalog) List(limit int) ([]Record, error) {
	rows, err := c.Query(
		`SELECT id, directory, frames, rows, cols, delta_t, length_unit, velocity_unit, mean_speed, loaded_at
		 FROM sequences ORDER BY loaded_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Directory, &rec.Frames, &rec.Rows, &rec.Cols,
			&rec.DeltaT, &rec.LengthUnit, &rec.VelocityUnit, &rec.MeanSpeed, &rec.LoadedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
