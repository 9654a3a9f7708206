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

package provenance

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"bioprov/internal/common"
)

// Operation identifies the pipeline step that produced a file.
type Operation struct {
	Name    string
	Command string
}

// File wraps a filesystem path with provenance metadata. Path, Name,
// Directory and Extension are derived once from the absolute path at
// construction and never recomputed, even if the underlying file moves.
// Size and RawSize are likewise probed once and cached. Existence is the
// exception: Exists re-stats the filesystem on every call, so it can never
// go stale.
type File struct {
	fs billy.Filesystem

	Path      string
	Name      string // file stem, without extension
	Directory string
	Extension string
	Tag       string
	Size      string
	RawSize   int64

	// GeneratedBy links back to the operation that produced this file.
	// Settable after construction, like Tag.
	GeneratedBy *Operation
}

// NewFile wraps path on the host filesystem. An empty tag defaults to the
// derived name.
func NewFile(path, tag string) *File {
	return NewFileOn(osfs.New("/"), path, tag)
}

// NewFileOn is NewFile over an explicit filesystem, so tests can use memfs.
func NewFileOn(fs billy.Filesystem, path, tag string) *File {
	abs, err := filepath.Abs(path)
	if err != nil {
		// filepath.Abs only fails when the working directory is gone;
		// keep the caller's path rather than failing construction.
		abs = filepath.Clean(path)
	}
	base := filepath.Base(abs)
	ext := filepath.Ext(base)
	if ext == base {
		// Dotfiles like ".profile" have no extension, they are all stem.
		ext = ""
	}
	name := strings.TrimSuffix(base, ext)
	if tag == "" {
		tag = name
	}
	return &File{
		fs:        fs,
		Path:      abs,
		Name:      name,
		Directory: filepath.Dir(abs),
		Extension: ext,
		Tag:       tag,
		Size:      common.HumanSize(fs, abs),
		RawSize:   common.Size(fs, abs),
	}
}

// Exists reports whether the path currently exists. The check is always
// live; there is no cached existence state to write to or invalidate.
func (f *File) Exists() bool {
	_, err := f.fs.Stat(f.Path)
	return err == nil
}

func (f *File) String() string {
	if f.Exists() {
		return fmt.Sprintf("File %s with %s in directory %s.", f.Name, f.Size, f.Directory)
	}
	return fmt.Sprintf("Path %s in directory %s. File does not exist.", f.Name, f.Directory)
}
