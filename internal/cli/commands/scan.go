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

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"bioprov/internal/provenance"
	"bioprov/internal/store"
)

var scanName string

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Register a directory's files as a provenance project",
	Long:  `Walks a pipeline output directory, wraps every file in a provenance record (honoring .gitignore rules), and appends a project document to the store.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		name := scanName
		if name == "" {
			name = filepath.Base(dir)
		}

		cfg, err := newConfig(cmd)
		if err != nil {
			return err
		}
		defer cfg.Close()

		files, err := provenance.ScanDir(osfs.New("/"), dir)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", dir, err)
		}

		project := store.NewProject(name, cfg.User, cfg.Env.Hash)
		for _, f := range files {
			project.Files = append(project.Files, store.FileEntry{
				Path:    f.Path,
				Tag:     f.Tag,
				Size:    f.Size,
				RawSize: f.RawSize,
			})
		}
		if err := cfg.DB.Insert(cmd.Context(), project); err != nil {
			return fmt.Errorf("failed to store project: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registered project %q with %d files (env %.12s).\n",
			name, len(project.Files), cfg.Env.Hash)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanName, "name", "", "project name (default: directory name)")
	rootCmd.AddCommand(scanCmd)
}
