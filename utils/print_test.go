// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrinter_AddPrinter(t *testing.T) {
	p := NewPrinters()
	p.AddPrinter(&PrinterToWriter{}).AddPrinter(&PrinterToWriter{})
	assert.Equal(t, 2, p.Len())
}

func TestPrinter_PrintCallsAllPrinters(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	mockErr := errors.New("mock error")
	first.EXPECT().Print().Return(mockErr)
	second.EXPECT().Print().Return(nil)

	p := NewPrinters().AddPrinter(first).AddPrinter(second)
	err := p.Print()
	assert.ErrorIs(t, err, mockErr)
}

func TestPrinter_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPrinter := NewMockPrinter(ctrl)
	mockPrinter.EXPECT().Close().Return(nil).Times(1)

	p := NewPrinters().AddPrinter(mockPrinter)
	assert.NoError(t, p.Close())
}

func TestPrinters_AddPrinterToConsole(t *testing.T) {
	p := NewPrinters().AddPrinterToConsole(false, func() string {
		return "lower 0.1"
	})
	assert.Equal(t, 1, p.Len())

	p = NewPrinters().AddPrinterToConsole(true, func() string {
		return "lower 0.1"
	})
	assert.Equal(t, 0, p.Len())
}

func TestPrinters_AddPrinterToFile(t *testing.T) {
	p := NewPrinters().AddPrinterToFile(filepath.Join(t.TempDir(), "sweep.tsv"), func() string {
		return "cov\tlower"
	})
	assert.Equal(t, 1, p.Len())

	p = NewPrinters().AddPrinterToFile("", func() string {
		return "cov\tlower"
	})
	assert.Equal(t, 0, p.Len())
}

func TestPrinterToWriter_Print(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterToWriter(&buf, func() string {
		return "total 0.25"
	})
	require.NoError(t, p.Print())
	assert.Equal(t, "total 0.25\n", buf.String())
	assert.NoError(t, p.Close())
}

func TestPrinterToWriter_NewPrinterToConsole(t *testing.T) {
	p := NewPrinterToConsole(func() string {
		return "total 0.25"
	})
	assert.Equal(t, reflect.ValueOf(os.Stdout).Pointer(), reflect.ValueOf(p.w).Pointer())
	assert.NotNil(t, p.f)
}

func TestPrinterToFile_PrintAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.tsv")
	p := NewPrinterToFile(path, func() string {
		return "0.1\t0.5\n"
	})
	require.NoError(t, p.Print())
	require.NoError(t, p.Print())
	assert.NoError(t, p.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0.1\t0.5\n0.1\t0.5\n", string(content))
}

func TestPrinterToFile_PrintToMissingDirectory(t *testing.T) {
	p := NewPrinterToFile(filepath.Join(t.TempDir(), "missing", "sweep.tsv"), func() string {
		return ""
	})
	assert.Error(t, p.Print())
}

func newMockDbPrinter(t *testing.T, rows [][]any) (*PrinterToDb, sqlmock.Sqlmock) {
	db, mockDb, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return &PrinterToDb{
		db:     db,
		insert: "INSERT INTO sweep",
		f: func() [][]any {
			return rows
		},
	}, mockDb
}

func TestPrinterToDb_Print(t *testing.T) {
	p, mockDb := newMockDbPrinter(t, [][]any{{0.1, 0.5}, {0.2, 0.4}})
	mockDb.ExpectBegin()
	prep := mockDb.ExpectPrepare("INSERT INTO sweep")
	prep.ExpectExec().WithArgs(0.1, 0.5).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs(0.2, 0.4).WillReturnResult(sqlmock.NewResult(2, 1))
	mockDb.ExpectCommit()

	assert.NoError(t, p.Print())
	if err := mockDb.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestPrinterToDb_PrintErrors(t *testing.T) {
	mockErr := errors.New("mock error")

	// case Begin error
	p, mockDb := newMockDbPrinter(t, nil)
	mockDb.ExpectBegin().WillReturnError(mockErr)
	assert.ErrorIs(t, p.Print(), mockErr)

	// case Prepare error
	p, mockDb = newMockDbPrinter(t, nil)
	mockDb.ExpectBegin()
	mockDb.ExpectPrepare("INSERT INTO sweep").WillReturnError(mockErr)
	mockDb.ExpectRollback()
	assert.ErrorIs(t, p.Print(), mockErr)
	assert.NoError(t, mockDb.ExpectationsWereMet())

	// case Exec error
	p, mockDb = newMockDbPrinter(t, [][]any{{0.1, 0.5}})
	mockDb.ExpectBegin()
	mockDb.ExpectPrepare("INSERT INTO sweep").ExpectExec().WillReturnError(mockErr)
	mockDb.ExpectRollback()
	assert.ErrorIs(t, p.Print(), mockErr)
	assert.NoError(t, mockDb.ExpectationsWereMet())

	// case Commit error
	p, mockDb = newMockDbPrinter(t, nil)
	mockDb.ExpectBegin()
	mockDb.ExpectPrepare("INSERT INTO sweep")
	mockDb.ExpectCommit().WillReturnError(mockErr)
	assert.ErrorIs(t, p.Print(), mockErr)
}

func TestPrinterToDb_Close(t *testing.T) {
	p, mockDb := newMockDbPrinter(t, nil)
	mockDb.ExpectClose()
	assert.NoError(t, p.Close())
	if err := mockDb.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestPrinterToDb_NewPrinterToDbCreatesTable(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)
	mockDb.ExpectExec("CREATE TABLE sweep").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDb.ExpectExec("PRAGMA synchronous = OFF").WillReturnResult(sqlmock.NewResult(0, 0))

	p, err := newPrinterToDb(db, "CREATE TABLE sweep", "INSERT INTO sweep", nil)
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestPrinterToDb_NewPrinterToDbClosesOnFailure(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)
	mockErr := errors.New("mock error")
	mockDb.ExpectExec("CREATE TABLE sweep").WillReturnError(mockErr)
	mockDb.ExpectClose()

	p, err := newPrinterToDb(db, "CREATE TABLE sweep", "INSERT INTO sweep", nil)
	assert.ErrorIs(t, err, mockErr)
	assert.Nil(t, p)
	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestPrinterToDb_Sqlite3RoundTrip(t *testing.T) {
	conn := filepath.Join(t.TempDir(), "sweep.db")
	create := "CREATE TABLE IF NOT EXISTS sweep (cov REAL, lower REAL)"
	insert := "INSERT INTO sweep (cov, lower) VALUES (?, ?)"
	ps, err := NewPrinters().AddPrinterToSqlite3(conn, create, insert, func() [][]any {
		return [][]any{{0.1, 0.5}, {0.2, 0.4}}
	})
	require.NoError(t, err)
	require.Equal(t, 1, ps.Len())
	require.NoError(t, ps.Print())
	require.NoError(t, ps.Close())

	db, err := sql.Open("sqlite3", conn)
	require.NoError(t, err)
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sweep").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestPrinters_AddPrinterToSqlite3(t *testing.T) {
	ps, err := NewPrinters().AddPrinterToSqlite3("", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ps.Len())

	_, err = NewPrinters().AddPrinterToSqlite3(":memory:", "asfd;asdf", "", nil)
	assert.Error(t, err)
}
