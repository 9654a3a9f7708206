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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"bioprov/internal/common"
)

// jsonDocument is the on-disk shape of the JSON backend.
type jsonDocument struct {
	Projects []Project `json:"projects"`
}

// JSONStore is the default Store backend: a single JSON document file.
// Writes go through a temp-file-and-rename so a crash never leaves a
// half-written store, and a flock sidecar keeps two processes from
// interleaving read-modify-write cycles.
type JSONStore struct {
	path   string
	lock   *flock.Flock
	closed bool
}

// OpenJSON opens (creating if needed) a JSON store at path.
func OpenJSON(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	s := &JSONStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(&jsonDocument{}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the store file path.
func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) Insert(ctx context.Context, p *Project) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if p == nil || p.ID == "" {
		return common.ErrInvalidRecord
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock store: %w", err)
	}
	defer s.lock.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Projects = append(doc.Projects, *p)
	return s.save(doc)
}

func (s *JSONStore) All(ctx context.Context) ([]Project, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock store: %w", err)
	}
	defer s.lock.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

func (s *JSONStore) Count(ctx context.Context) (int, error) {
	projects, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(projects), nil
}

func (s *JSONStore) Truncate(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock store: %w", err)
	}
	defer s.lock.Unlock()
	return s.save(&jsonDocument{})
}

func (s *JSONStore) Close() error {
	s.closed = true
	return nil
}

func (s *JSONStore) ready(ctx context.Context) error {
	if s.closed {
		return common.ErrClosed
	}
	return ctx.Err()
}

func (s *JSONStore) load() (*jsonDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &jsonDocument{}, nil
		}
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode store: %w", err)
	}
	return &doc, nil
}

func (s *JSONStore) save(doc *jsonDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".bioprov-store-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}
