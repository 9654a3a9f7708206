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
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanDir walks dir and wraps every regular file in a File record. Rules
// from a .gitignore at the directory root are honored, and .git is always
// skipped. Used to register a pipeline output directory in one pass.
func ScanDir(fs billy.Filesystem, dir string) ([]*File, error) {
	matcher := loadIgnore(fs, dir)

	var files []*File
	err := util.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if filepath.Base(path) == ".git" {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Base(path) == ".gitignore" {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		files = append(files, NewFileOn(fs, path, ""))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// loadIgnore compiles {dir}/.gitignore if present. A missing or unreadable
// file just means no filtering.
func loadIgnore(fs billy.Filesystem, dir string) *ignore.GitIgnore {
	data, err := util.ReadFile(fs, filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}
