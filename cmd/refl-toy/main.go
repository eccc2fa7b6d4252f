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

// Command refl-toy parses its flags into a reflected struct, prints the
// result and can record it in a SQLite table.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"dirpx.dev/refl/cli"
	"dirpx.dev/refl/format"
	"dirpx.dev/refl/internal/logger"
	"dirpx.dev/refl/mirror"
	"dirpx.dev/refl/names"
	"dirpx.dev/refl/table"
)

type mode uint8

const (
	fast mode = iota
	safe
	paranoid
)

func (*mode) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Reflect("Mode",
		m.Value("fast", fast),
		m.Value("safe", safe),
		m.Value("paranoid", paranoid),
	)
}

type logging struct {
	Level  slog.Level
	Format string
}

func (l *logging) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Infer().
		With(&l.Level, cli.Flag{Arg: "LEVEL", Help: "debug, info, warn or error"}).
		With(&l.Format, cli.Flag{Arg: "text|json", Help: "log output format"})
}

type record struct {
	Store string
}

func (r *record) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Infer().
		With(&r.Store, cli.Positional{Name: "DB", Count: cli.Required, Help: "SQLite database file"})
}

type options struct {
	Name    string
	Count   int
	Verbose bool
	Mode    mode
	Timeout time.Duration
	Naming  names.Style
	Token   string
	Tags    []string
	Log     logging
	Record  *record
}

func (o *options) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Infer().
		Tag(cli.App{
			Name:          "refl-toy",
			Version:       "0.1.0",
			About:         "Parses its flags into a struct and prints it.",
			Authors:       "The DIRPX Authors",
			CopyrightYear: 2025,
			License:       "Apache-2.0",
		}).
		With(&o.Name, cli.Flag{Letter: 'n', Help: "who to greet"}).
		With(&o.Count, cli.Flag{Letter: 'c', Arg: "N", Help: "how many times"}).
		With(&o.Verbose, cli.Flag{Letter: 'v', Help: "print the debug form"}).
		With(&o.Token, cli.Flag{Vis: cli.Hidden, Help: "secret, never printed"}, format.Redact{}).
		With(&o.Tags, cli.Flag{Letter: 't', Arg: "TAG", Help: "repeatable"}).
		With(&o.Log, cli.Group{Name: "log", Help: "logging options"}).
		With(&o.Record, cli.Subcommand{Help: "store the options in a database"}, cli.Alias{Name: "rec"})
}

// row is what the record subcommand stores.
type row struct {
	ID    int64
	At    time.Time
	Name  string
	Count int
	Mode  mode
}

func (r *row) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Infer().
		Tag(table.Table{Name: "runs"}).
		With(&r.ID, table.Column{PrimaryKey: true})
}

func main() {
	opts := options{Name: "world", Count: 1, Mode: safe, Log: logging{Level: slog.LevelWarn, Format: "text"}}
	cli.MustParse(&opts)

	cfg := logger.DefaultConfig()
	cfg.Level = opts.Log.Level
	cfg.Format = opts.Log.Format
	logger.Init(cfg)

	if opts.Verbose {
		fmt.Println(format.Debug(opts))
	} else {
		fmt.Println(format.Sprint(opts))
	}
	for range opts.Count {
		fmt.Printf("hello, %s\n", opts.Name)
	}

	if opts.Record != nil {
		if err := save(context.Background(), opts.Record.Store, &opts); err != nil {
			logger.Error("record failed", "db", opts.Record.Store, "error", err)
			os.Exit(1)
		}
	}
}

func save(ctx context.Context, dsn string, opts *options) error {
	db, err := table.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := table.New[row](db)
	if err != nil {
		return err
	}
	if err := runs.Migrate(ctx); err != nil {
		return err
	}

	all, err := runs.All(ctx)
	if err != nil {
		return err
	}
	r := row{ID: int64(len(all)) + 1, At: time.Now().UTC(), Name: opts.Name, Count: opts.Count, Mode: opts.Mode}
	if err := runs.Insert(ctx, &r); err != nil {
		return err
	}
	logger.Info("recorded run", "table", runs.Name(), "id", r.ID)
	for _, r := range append(all, r) {
		fmt.Println(format.Sprint(r))
	}
	return nil
}
