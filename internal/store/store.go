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

// Package store persists provenance project records. The Store interface is
// deliberately small (append, full listing, destructive clear) and is backed
// by either a JSON document file or a SQLite database.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FileEntry is the persisted form of a provenance file record.
type FileEntry struct {
	Path    string `json:"path"`
	Tag     string `json:"tag,omitempty"`
	Size    string `json:"size,omitempty"`
	RawSize int64  `json:"raw_size,omitempty"`
}

// Project is one provenance document: who produced what, under which
// environment fingerprint.
type Project struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	User      string      `json:"user,omitempty"`
	EnvHash   string      `json:"env_hash,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	Files     []FileEntry `json:"files,omitempty"`
}

// NewProject creates a Project with a fresh ID and creation timestamp.
func NewProject(name, user, envHash string) *Project {
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		User:      user,
		EnvHash:   envHash,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the persistence facade for project records.
// Implementations are not safe for concurrent mutation; callers serialize.
type Store interface {
	// Insert appends one project record.
	Insert(ctx context.Context, p *Project) error
	// All returns every stored project.
	All(ctx context.Context) ([]Project, error)
	// Count returns the number of stored projects.
	Count(ctx context.Context) (int, error)
	// Truncate irreversibly removes all projects. Confirmation is the
	// caller's responsibility.
	Truncate(ctx context.Context) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open opens (creating if needed) the store at path using the named backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return OpenJSON(path)
	case BackendSQLite:
		return OpenSQL(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
