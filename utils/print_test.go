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

package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrinter_NewPrinter(t *testing.T) {
	p := NewPrinters()
	assert.Empty(t, p.printers)
}

func TestPrinter_AddPrinter(t *testing.T) {
	p := &Printers{[]Printer{}}
	p.AddPrinter(&PrinterToWriter{})
	p.AddPrinter(&PrinterToWriter{})
	assert.Equal(t, 2, len(p.printers))
}

func TestPrinter_PrintRunsAllPrintersAndCombinesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := NewPrinters().AddPrinter(first).AddPrinter(second)

	first.EXPECT().Print().Return(errors.New("disk full"))
	second.EXPECT().Print().Return(nil)
	err := p.Print()
	assert.ErrorContains(t, err, "disk full")
}

func TestPrinter_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPrinter := NewMockPrinter(ctrl)
	p := NewPrinters().AddPrinter(mockPrinter)

	mockPrinter.EXPECT().Close().Return(nil)
	assert.NoError(t, p.Close())
}

func TestPrinters_AddPrinterToFileSkipsEmptyPath(t *testing.T) {
	p := NewPrinters().AddPrinterToFile("", func() string { return "x" })
	assert.Equal(t, 0, len(p.printers))
}

func TestPrinterToWriter_Print(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterToWriter(&buf, func() string { return "Hello, World!" })
	require.NoError(t, p.Print())
	assert.Equal(t, "Hello, World!\n", buf.String())
	assert.NoError(t, p.Close())
}

func TestPrinterToFile_PrintReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.txt")
	content := "first"
	p := NewPrinters().AddPrinterToFile(path, func() string { return content })

	require.NoError(t, p.Print())
	content = "second"
	require.NoError(t, p.Print())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestPrinterToFile_PrintFailsOnMissingDirectory(t *testing.T) {
	p := NewPrinterToFile(filepath.Join(t.TempDir(), "missing", "table.txt"), func() string { return "x" })
	assert.ErrorContains(t, p.Print(), "unable to print to file")
}
