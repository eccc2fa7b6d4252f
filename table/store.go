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

package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"dirpx.dev/refl"
	"dirpx.dev/refl/internal/logger"
	"dirpx.dev/refl/mirror"
)

// Store keeps values of the struct type T as rows of one table.
type Store[T any] struct {
	db  *sql.DB
	l   *layout
	log *slog.Logger

	insert string
	query  string
}

// New returns a store for T backed by db. T is reflected through the
// current global stack.
func New[T any](db *sql.DB) (*Store[T], error) {
	t, err := refl.TypeOf(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	l, err := plan(t)
	if err != nil {
		return nil, err
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(l.cols)), ", ")
	s := &Store[T]{
		db:     db,
		l:      l,
		log:    logger.ForComponent("table").With("table", l.name),
		insert: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(l.name), l.columns(), marks),
		query:  fmt.Sprintf("SELECT %s FROM %s", l.columns(), quote(l.name)),
	}
	return s, nil
}

// Name returns the table name.
func (s *Store[T]) Name() string { return s.l.name }

// Schema returns the CREATE TABLE statement of the store.
func (s *Store[T]) Schema() string { return s.l.create() }

// Migrate creates the table if it does not exist.
func (s *Store[T]) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.l.create()); err != nil {
		return fmt.Errorf("create table %s: %w", s.l.name, err)
	}
	s.log.Debug("migrated", "columns", len(s.l.cols))
	return nil
}

// Insert adds v as a new row.
func (s *Store[T]) Insert(ctx context.Context, v *T) error {
	args := make([]any, len(s.l.cols))
	for i, c := range s.l.cols {
		a, err := c.arg(c.field.Get(v))
		if err != nil {
			return err
		}
		args[i] = a
	}
	if _, err := s.db.ExecContext(ctx, s.insert, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", s.l.name, err)
	}
	return nil
}

// All returns every row, ordered by primary key when there is one and by
// insertion otherwise.
func (s *Store[T]) All(ctx context.Context) ([]T, error) {
	order := "rowid"
	if s.l.pk >= 0 {
		order = quote(s.l.cols[s.l.pk].name)
	}
	rows, err := s.db.QueryContext(ctx, s.query+" ORDER BY "+order)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", s.l.name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var v T
		if err := s.scan(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Get returns the row whose primary key equals key.
func (s *Store[T]) Get(ctx context.Context, key any) (T, error) {
	var v T
	if s.l.pk < 0 {
		return v, fmt.Errorf("%w: %s", ErrNoPrimaryKey, s.l.name)
	}
	pk := s.l.cols[s.l.pk]
	row := s.db.QueryRowContext(ctx, s.query+" WHERE "+quote(pk.name)+" = ?", key)
	if err := s.scan(row, &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return v, fmt.Errorf("%w: %s %s = %v", ErrNotFound, s.l.name, pk.name, key)
		}
		return v, err
	}
	return v, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store[T]) scan(r scanner, v *T) error {
	dests := make([]any, len(s.l.cols))
	names := make([]*sql.NullString, len(s.l.cols))
	for i, c := range s.l.cols {
		if c.enum != nil {
			names[i] = new(sql.NullString)
			dests[i] = names[i]
			continue
		}
		dests[i] = c.field.Get(v).Addr().Interface()
	}
	if err := r.Scan(dests...); err != nil {
		return err
	}
	for i, c := range s.l.cols {
		if names[i] == nil || !names[i].Valid {
			continue
		}
		if err := c.setEnum(c.field.Get(v), names[i].String); err != nil {
			return err
		}
	}
	return nil
}

// arg converts the field value fv to a statement argument.
func (c column) arg(fv reflect.Value) (any, error) {
	if c.pointer {
		if fv.IsNil() {
			return nil, nil
		}
		fv = fv.Elem()
	}
	if c.enum == nil {
		return fv.Interface(), nil
	}
	name, ok := c.enum.ValueName(fv.Interface())
	if !ok {
		return nil, fmt.Errorf("%w: %s(%v) in column %s", ErrBadEnum, c.enum.Name(), fv.Interface(), c.name)
	}
	return name, nil
}

func (c column) setEnum(fv reflect.Value, name string) error {
	m, ok := c.enum.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q in column %s", ErrBadEnum, name, c.name)
	}
	ev := m.(*mirror.Value).Reflect()
	if c.pointer {
		p := reflect.New(ev.Type())
		p.Elem().Set(ev)
		fv.Set(p)
		return nil
	}
	fv.Set(ev)
	return nil
}
