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

	"github.com/spf13/cobra"

	"bioprov/internal/provenance"
)

var fileTag string

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Show the provenance record for a file path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := provenance.NewFile(args[0], fileTag)
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, f)
		fmt.Fprintf(out, "  path:      %s\n", f.Path)
		fmt.Fprintf(out, "  tag:       %s\n", f.Tag)
		fmt.Fprintf(out, "  extension: %s\n", f.Extension)
		fmt.Fprintf(out, "  exists:    %t\n", f.Exists())
		fmt.Fprintf(out, "  size:      %s (%d bytes)\n", f.Size, f.RawSize)
		return nil
	},
}

func init() {
	fileCmd.Flags().StringVar(&fileTag, "tag", "", "tag describing the file (default: derived name)")
	rootCmd.AddCommand(fileCmd)
}
