// Copyright 2024 BioProv Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/go-libsql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"bioprov/internal/common"
	"bioprov/internal/util"
)

// SQLStore is the SQLite Store backend, for pipelines that want the store on
// shared storage where concurrent appenders are a real possibility. Writes
// retry on transient "database is locked" errors.
type SQLStore struct {
	path  string
	db    *sql.DB
	bunDB *bun.DB
}

// OpenSQL opens (creating if needed) a SQLite store at path.
func OpenSQL(path string) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(projectsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLStore{
		path:  path,
		db:    db,
		bunDB: bun.NewDB(db, sqlitedialect.New()),
	}, nil
}

// Path returns the store file path.
func (s *SQLStore) Path() string {
	return s.path
}

func (s *SQLStore) Insert(ctx context.Context, p *Project) error {
	if p == nil || p.ID == "" {
		return common.ErrInvalidRecord
	}
	model, err := ProjectModelFromProject(p)
	if err != nil {
		return err
	}
	return util.Retry(ctx, func() error {
		_, err := s.bunDB.NewInsert().Model(model).Exec(ctx)
		return err
	}, util.DatabaseRetryOptions(ctx)...)
}

func (s *SQLStore) All(ctx context.Context) ([]Project, error) {
	var models []ProjectModel
	err := s.bunDB.NewSelect().
		Model(&models).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	projects := make([]Project, 0, len(models))
	for i := range models {
		p, err := models[i].ToProject()
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	return util.RetryWithResult(ctx, func() (int, error) {
		return s.bunDB.NewSelect().Model((*ProjectModel)(nil)).Count(ctx)
	}, util.DatabaseRetryOptions(ctx)...)
}

func (s *SQLStore) Truncate(ctx context.Context) error {
	return util.Retry(ctx, func() error {
		_, err := s.bunDB.NewRaw(`DELETE FROM projects`).Exec(ctx)
		return err
	}, util.DatabaseRetryOptions(ctx)...)
}

func (s *SQLStore) Close() error {
	return s.bunDB.Close()
}
