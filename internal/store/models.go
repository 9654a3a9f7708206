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
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// ProjectModel represents the projects table. File entries are stored as a
// JSON column; the store only ever appends, lists, and truncates, so there
// is nothing to gain from normalizing them out.
type ProjectModel struct {
	bun.BaseModel `bun:"table:projects"`

	ID        string `bun:"id,pk"`
	Name      string `bun:"name,notnull"`
	User      string `bun:"user,notnull"`
	EnvHash   string `bun:"env_hash,notnull"`
	CreatedAt int64  `bun:"created_at,notnull"` // Unix timestamp
	Files     string `bun:"files,notnull"`      // JSON-encoded []FileEntry
}

// ToProject converts a ProjectModel to the Project record.
func (m *ProjectModel) ToProject() (*Project, error) {
	var files []FileEntry
	if m.Files != "" {
		if err := json.Unmarshal([]byte(m.Files), &files); err != nil {
			return nil, err
		}
	}
	return &Project{
		ID:        m.ID,
		Name:      m.Name,
		User:      m.User,
		EnvHash:   m.EnvHash,
		CreatedAt: time.Unix(m.CreatedAt, 0).UTC(),
		Files:     files,
	}, nil
}

// ProjectModelFromProject converts a Project to its table model.
func ProjectModelFromProject(p *Project) (*ProjectModel, error) {
	files := p.Files
	if files == nil {
		files = []FileEntry{}
	}
	encoded, err := json.Marshal(files)
	if err != nil {
		return nil, err
	}
	return &ProjectModel{
		ID:        p.ID,
		Name:      p.Name,
		User:      p.User,
		EnvHash:   p.EnvHash,
		CreatedAt: p.CreatedAt.Unix(),
		Files:     string(encoded),
	}, nil
}
