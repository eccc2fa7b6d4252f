/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package table maps reflected structs to SQLite tables.
//
// A Store[T] keeps one row per value of T. Columns come from the fields
// of T's descriptor, so everything that shapes reflection (Reflect
// methods, registered callbacks, struct tags, the naming style) shapes
// the table too.
package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

var (
	// ErrUnsupportedType is returned for fields that have no column type.
	ErrUnsupportedType = errors.New("refl(table): unsupported column type")
	// ErrNoPrimaryKey is returned by Get on a table without a primary key.
	ErrNoPrimaryKey = errors.New("refl(table): no primary key")
	// ErrNotFound is returned by Get when no row matches.
	ErrNotFound = errors.New("refl(table): not found")
	// ErrNoColumns is returned for types that reflect no storable field.
	ErrNoColumns = errors.New("refl(table): no columns")
	// ErrBadEnum is returned when a stored enumerator name is unknown.
	ErrBadEnum = errors.New("refl(table): unknown enumerator")
)

// Column is the member tag that controls how a field is stored.
type Column struct {
	// Name overrides the column name, which defaults to the field name.
	Name string
	// PrimaryKey marks the column as the table's primary key.
	PrimaryKey bool
	// NotNull makes a pointer column NOT NULL. Other columns always are.
	NotNull bool
	// Skip leaves the field out of the table.
	Skip bool
}

func (Column) ExclusiveTag() {}

// Table is the type tag that names the table.
type Table struct {
	Name string
}

func (Table) ExclusiveTag() {}

// Open opens the SQLite database at dsn and checks the connection.
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// Each connection would get its own database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return db, nil
}
