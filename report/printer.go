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

import "github.com/cockroachdb/errors"

// PrinterToResultDB stores the entries returned by f in a result database.
type PrinterToResultDB struct {
	db ResultDB
	f  func() []Entry
}

// NewPrinterToResultDB wraps db; the printer owns db and closes it.
func NewPrinterToResultDB(db ResultDB, f func() []Entry) *PrinterToResultDB {
	return &PrinterToResultDB{db: db, f: f}
}

func (p *PrinterToResultDB) Print() error {
	for _, entry := range p.f() {
		if err := p.db.Add(entry); err != nil {
			return errors.Wrapf(err, "unable to store %v", entry.Event)
		}
	}
	return p.db.Flush()
}

func (p *PrinterToResultDB) Close() error {
	return p.db.Close()
}
