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

var envRefresh bool

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the environment fingerprint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env := provenance.NewEnvironment()
		out := cmd.OutOrStdout()

		if envRefresh {
			if env.Update() {
				fmt.Fprintln(out, "Environment fingerprint updated.")
			} else {
				fmt.Fprintln(out, "Environment unchanged.")
			}
		}

		fmt.Fprintf(out, "user:      %s\n", env.User)
		fmt.Fprintf(out, "hash:      %s\n", env.Hash)
		fmt.Fprintf(out, "namespace: %s\n", env.Namespace)
		fmt.Fprintf(out, "variables: %d\n", len(env.EnvMap))
		return nil
	},
}

func init() {
	envCmd.Flags().BoolVar(&envRefresh, "refresh", false, "re-snapshot the environment and report whether it changed")
	rootCmd.AddCommand(envCmd)
}
