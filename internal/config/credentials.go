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

package config

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// credentialsFileName is the two-line plain-text ProvStore credential file
// inside the config directory: service user on the first line, API token on
// the second. Filesystem permissions are the only protection.
const credentialsFileName = "provstore_api.txt"

// CredentialsPath returns the ProvStore credential file path.
func (c *Config) CredentialsPath() string {
	return c.credsPath
}

// Credentials returns the ProvStore service user and API token, reading the
// credential file on first access. A missing or malformed file degrades to
// empty credentials after offering to create the file interactively; no
// error escapes this path.
func (c *Config) Credentials() (user, token string) {
	if !c.credsLoaded {
		c.readCredentials(true)
	}
	return c.provUser, c.provToken
}

func (c *Config) readCredentials(offerCreate bool) {
	c.credsLoaded = true
	user, token, err := readCredentialsFile(c.credsPath)
	if err == nil {
		c.provUser, c.provToken = user, token
		return
	}
	log.WithError(err).Debug("could not read ProvStore credentials")
	if !offerCreate {
		return
	}

	question := fmt.Sprintf(
		"Could not read credentials from ProvStore file at %s.\nIt may be empty or not exist. Would you like to create one?",
		c.credsPath)
	if !c.prompt.Confirm(question, true) {
		fmt.Fprintln(c.out, "Did not create ProvStore credentials file.")
		return
	}
	if err := c.CreateCredentialsFile(); err != nil {
		log.WithError(err).Warn("failed to create ProvStore credentials file")
		return
	}
	c.readCredentials(false)
}

// CreateCredentialsFile prompts for the service user and API token and
// writes the credential file (mode 0600).
func (c *Config) CreateCredentialsFile() error {
	user, err := c.prompt.Input("Please paste your ProvStore user:")
	if err != nil {
		return err
	}
	token, err := c.prompt.Input("Please paste your ProvStore API token:")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.credsPath, []byte(user+"\n"+token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	fmt.Fprintf(c.out, "Wrote ProvStore credentials file to %s.\n", c.credsPath)
	fmt.Fprintln(c.out, "Make sure that the contents of that file are private.")
	return nil
}

// readCredentialsFile reads the two-line credential file. Fewer than two
// non-empty lines counts as "could not read".
func readCredentialsFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return "", "", fmt.Errorf("credential file %s is malformed", path)
	}
	user := strings.TrimSpace(lines[0])
	token := strings.TrimSpace(lines[1])
	if user == "" || token == "" {
		return "", "", fmt.Errorf("credential file %s has empty fields", path)
	}
	return user, token, nil
}
