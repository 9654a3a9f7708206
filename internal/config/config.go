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

// Package config holds the process-wide bioprov configuration: the
// environment fingerprint, the project store handle, threading defaults and
// lazily-loaded ProvStore credentials. Construct one Config at process start
// and pass it to whatever needs it; there is no ambient global state.
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	log "github.com/sirupsen/logrus"

	"bioprov/internal/provenance"
	"bioprov/internal/store"
)

// Options are construction-time overrides. Zero values mean "use the
// settings file, then built-in defaults".
type Options struct {
	DBPath  string
	Backend string
	Threads int
	Prompt  Prompt
	Out     io.Writer
}

// Config composes the environment fingerprint, the project store and the
// process defaults. Single-process, single-threaded access is assumed;
// callers serialize.
type Config struct {
	Env      *provenance.Environment
	User     string
	Threads  int
	Dir      string
	DataDir  string
	DBPath   string
	DB       store.Store
	Settings *Settings

	prompt Prompt
	out    io.Writer

	credsPath   string
	credsLoaded bool
	provUser    string
	provToken   string
}

// DefaultThreads is half the available processors, never less than one.
func DefaultThreads() int {
	threads := runtime.NumCPU() / 2
	if threads < 1 {
		threads = 1
	}
	return threads
}

// New builds the process configuration: takes the initial environment
// snapshot, resolves defaults from the settings file, and opens the store.
func New(opts Options) (*Config, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}
	settings, err := LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	env := provenance.NewEnvironment()

	threads := opts.Threads
	if threads <= 0 {
		threads = settings.Threads
	}
	if threads <= 0 {
		threads = DefaultThreads()
	}

	backend := opts.Backend
	if backend == "" {
		backend = settings.Backend
	}
	if backend == "" {
		backend = store.BackendJSON
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		resolved := *settings
		resolved.Backend = backend
		dbPath = filepath.Join(Dir(), resolved.StoreFileName())
	}

	db, err := store.Open(backend, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open project store: %w", err)
	}

	prompt := opts.Prompt
	if prompt == nil {
		prompt = NewTerminalPrompt()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	log.WithFields(log.Fields{
		"backend": backend,
		"db":      dbPath,
		"threads": threads,
		"user":    env.User,
	}).Debug("bioprov config initialized")

	return &Config{
		Env:       env,
		User:      env.User,
		Threads:   threads,
		Dir:       Dir(),
		DataDir:   DataDir(),
		DBPath:    dbPath,
		DB:        db,
		Settings:  settings,
		prompt:    prompt,
		out:       out,
		credsPath: filepath.Join(Dir(), credentialsFileName),
	}, nil
}

// Close releases the store handle.
func (c *Config) Close() error {
	return c.DB.Close()
}

// ListProjects returns all stored provenance projects.
func (c *Config) ListProjects(ctx context.Context) ([]store.Project, error) {
	return c.DB.All(ctx)
}

// ClearStore truncates the project store. This is one-way: without
// confirm=true the user is asked first, and anything but an explicit yes
// cancels with a message rather than an error.
func (c *Config) ClearStore(ctx context.Context, confirm bool) error {
	if !confirm {
		n, err := c.DB.Count(ctx)
		if err != nil {
			return err
		}
		question := fmt.Sprintf(
			"The bioprov store at %s containing %d projects will be erased.\nThis action cannot be reversed. Are you sure you want to proceed?",
			c.DBPath, n)
		if !c.prompt.Confirm(question, false) {
			fmt.Fprintln(c.out, "Canceled operation.")
			return nil
		}
	}
	if err := c.DB.Truncate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Erased bioprov store.")
	return nil
}
