// Copyright 2025 Sonic Labs
// This file is part of Tephra, a Monte Carlo driver for volcanic plume models
//
// Tephra is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tephra is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Tephra. If not, see <http://www.gnu.org/licenses/>.

package report

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	// Your main or test packages require this import so the sql package is properly initialized.
	_ "github.com/mattn/go-sqlite3"
)

const (
	// bufferSize of the in-memory buffer for ensemble records
	bufferSize = 100

	// SQL statement for creating the result tables
	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS report (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	createTimestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	volcano TEXT,
	elevation FLOAT,
	uncertainty FLOAT
);
CREATE TABLE IF NOT EXISTS ensemble (
	report INTEGER,
	event TEXT,
	code INTEGER,
	mer FLOAT,
	observed FLOAT,
	trials INTEGER,
	mean FLOAT,
	std FLOAT,
	p1 FLOAT,
	p25 FLOAT,
	p50 FLOAT,
	p75 FLOAT,
	p99 FLOAT,
	ecdfLow FLOAT,
	ecdfMid FLOAT,
	ecdfHigh FLOAT
);
`

	// SQL statement for registering a new report
	insertReportSQL = `INSERT INTO report (volcano, elevation, uncertainty) VALUES (?, ?, ?)`

	// SQL statement for inserting the statistics of one ensemble
	insertEnsembleSQL = `
INSERT INTO ensemble (
	report, event, code, mer, observed, trials, mean, std, p1, p25, p50, p75, p99, ecdfLow, ecdfMid, ecdfHigh
) VALUES (
	?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
)
`

	// SQL statement for reading back all ensembles with their report
	selectSQL = `
SELECT r.id AS report, r.createTimestamp AS created, r.volcano AS volcano,
	e.event, e.code, e.mer, e.observed, e.trials, e.mean, e.std,
	e.p1, e.p25, e.p50, e.p75, e.p99, e.ecdfLow, e.ecdfMid, e.ecdfHigh
FROM ensemble e JOIN report r ON e.report = r.id
ORDER BY r.id, e.mer
`
)

// Record is one stored ensemble comparison.
type Record struct {
	Report   int64     `db:"report"`
	Created  time.Time `db:"created"`
	Volcano  string    `db:"volcano"`
	Event    string    `db:"event"`
	Code     int       `db:"code"`
	MER      float64   `db:"mer"`
	Observed float64   `db:"observed"`
	Trials   int       `db:"trials"`
	Mean     float64   `db:"mean"`
	Std      float64   `db:"std"`
	P1       float64   `db:"p1"`
	P25      float64   `db:"p25"`
	P50      float64   `db:"p50"`
	P75      float64   `db:"p75"`
	P99      float64   `db:"p99"`
	EcdfLow  float64   `db:"ecdfLow"`
	EcdfMid  float64   `db:"ecdfMid"`
	EcdfHigh float64   `db:"ecdfHigh"`
}

// ResultDB stores the comparisons of every report run.
//
//go:generate mockgen -source resultdb.go -destination resultdb_mock.go -package report
type ResultDB interface {
	// Add buffers the entry of the current report.
	Add(entry Entry) error
	// Flush writes buffered entries.
	Flush() error
	// Records reads back every stored comparison.
	Records() ([]Record, error)
	Close() error
}

type resultDB struct {
	db       *sqlx.DB
	stmt     *sqlx.Stmt
	reportID int64
	buffer   []Entry
}

// NewResultDB opens (and creates if needed) the sqlite3 database at dbFile and
// registers a new report for the given site parameters.
func NewResultDB(dbFile string, volcano string, opts Options) (ResultDB, error) {
	db, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %v", dbFile)
	}
	rdb, err := newResultDB(db, volcano, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return rdb, nil
}

func newResultDB(db *sqlx.DB, volcano string, opts Options) (*resultDB, error) {
	if _, err := db.Exec(createSQL); err != nil {
		return nil, errors.Wrap(err, "failed to create result tables")
	}
	res, err := db.Exec(insertReportSQL, volcano, opts.Elevation, opts.Uncertainty)
	if err != nil {
		return nil, errors.Wrap(err, "failed to register report")
	}
	reportID, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read report id")
	}
	stmt, err := db.Preparex(insertEnsembleSQL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare a SQL statement for ensembles")
	}
	return &resultDB{
		db:       db,
		stmt:     stmt,
		reportID: reportID,
		buffer:   make([]Entry, 0, bufferSize),
	}, nil
}

func (r *resultDB) Add(entry Entry) error {
	r.buffer = append(r.buffer, entry)
	if len(r.buffer) == cap(r.buffer) {
		if err := r.Flush(); err != nil {
			return errors.Wrap(err, "unable to flush ensembles")
		}
	}
	return nil
}

func (r *resultDB) Flush() error {
	if len(r.buffer) == 0 {
		return nil
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	stmt := tx.Stmtx(r.stmt)
	for _, e := range r.buffer {
		b, p := e.Box, e.Percentile
		_, err := stmt.Exec(r.reportID, e.Event.ID(), e.Event.Code, e.Event.MER, e.Event.ObservedHeight,
			len(e.Heights), e.Mean, e.Std, b.WhiskerLow, b.Q1, b.Median, b.Q3, b.WhiskerHigh, p.Low, p.Mid, p.High)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	r.buffer = r.buffer[:0]
	return tx.Commit()
}

func (r *resultDB) Records() ([]Record, error) {
	if err := r.Flush(); err != nil {
		return nil, err
	}
	var records []Record
	if err := r.db.Select(&records, selectSQL); err != nil {
		return nil, errors.Wrap(err, "failed to read results")
	}
	return records, nil
}

// Close flushes the buffer and closes the database.
func (r *resultDB) Close() error {
	defer func() {
		_ = r.stmt.Close()
		_ = r.db.Close()
	}()
	return r.Flush()
}
