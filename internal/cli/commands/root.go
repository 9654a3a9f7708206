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
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bioprov/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// Default logging to discard until enabled via settings
	log.SetOutput(io.Discard)
}

// SetVersion sets the version info for --version flag
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

var rootCmd = &cobra.Command{
	Use:   "bioprov",
	Short: "Provenance tracking for bioinformatics pipelines",
	Long:  `Provenance tracking for bioinformatics pipelines: wrap files with metadata, fingerprint the execution environment, and keep a local store of project records.`,
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if settings, err := config.LoadSettings(); err == nil {
			configureLogging(settings.LogLevel)
		}
		return nil
	}
}

// configureLogging routes logrus according to the settings file. The default
// is "off": provenance output belongs on stdout, not in a log stream.
func configureLogging(level string) {
	switch level {
	case "trace":
		log.SetLevel(log.TraceLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		return
	}
	log.SetOutput(rootCmd.ErrOrStderr())
}

// newConfig builds the process Config wired to the command's streams.
func newConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.New(config.Options{
		Prompt: &config.TerminalPrompt{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
		Out:    cmd.OutOrStdout(),
	})
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("bioprov version {{.Version}}\n")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
