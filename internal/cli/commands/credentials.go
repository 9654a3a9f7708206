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
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage ProvStore credentials",
}

var credentialsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured ProvStore user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := newConfig(cmd)
		if err != nil {
			return err
		}
		defer cfg.Close()

		out := cmd.OutOrStdout()
		user, token := cfg.Credentials()
		if user == "" {
			fmt.Fprintf(out, "No ProvStore credentials at %s.\n", cfg.CredentialsPath())
			return nil
		}
		fmt.Fprintf(out, "user:  %s\n", user)
		fmt.Fprintf(out, "token: %s…\n", token[:min(4, len(token))])
		return nil
	},
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Write the ProvStore credentials file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := newConfig(cmd)
		if err != nil {
			return err
		}
		defer cfg.Close()

		return cfg.CreateCredentialsFile()
	},
}

func init() {
	credentialsCmd.AddCommand(credentialsShowCmd)
	credentialsCmd.AddCommand(credentialsSetCmd)
	rootCmd.AddCommand(credentialsCmd)
}
