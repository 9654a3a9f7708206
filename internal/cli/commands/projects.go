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

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Inspect and manage the local provenance store",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored provenance projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := newConfig(cmd)
		if err != nil {
			return err
		}
		defer cfg.Close()

		projects, err := cfg.ListProjects(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(projects) == 0 {
			fmt.Fprintf(out, "No projects in store at %s.\n", cfg.DBPath)
			return nil
		}
		for _, p := range projects {
			fmt.Fprintf(out, "%-8s  %-24s  %-12s  %s  %d files\n",
				p.ID[:8], p.Name, p.User, p.CreatedAt.Format("2006-01-02 15:04"), len(p.Files))
		}
		return nil
	},
}

var clearYes bool

var projectsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase the provenance store (irreversible)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := newConfig(cmd)
		if err != nil {
			return err
		}
		defer cfg.Close()

		if !clearYes {
			warn := color.New(color.FgRed, color.Bold)
			warn.Fprintln(cmd.OutOrStdout(), "Warning: this erases every stored project record.")
		}
		return cfg.ClearStore(cmd.Context(), clearYes)
	},
}

func init() {
	projectsClearCmd.Flags().BoolVar(&clearYes, "yes", false, "clear without the confirmation prompt")
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsClearCmd)
	rootCmd.AddCommand(projectsCmd)
}
