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

// Package integration exercises the full config + store + provenance flow the
// way the CLI drives it, against a temporary config dir per test.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"bioprov/internal/config"
	"bioprov/internal/provenance"
	"bioprov/internal/store"
)

// newTestConfig builds a Config against an isolated config dir. The returned
// output buffer captures everything the config would print to the terminal.
func newTestConfig(t *testing.T, opts config.Options) (*config.Config, *strings.Builder) {
	t.Helper()
	t.Setenv("BIOPROV_CONFIG_DIR", t.TempDir())

	out := &strings.Builder{}
	opts.Out = out
	if opts.Prompt == nil {
		opts.Prompt = &config.ScriptedPrompt{}
	}

	cfg, err := config.New(opts)
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	t.Cleanup(func() { cfg.Close() })
	return cfg, out
}

func sampleProject(t *testing.T, cfg *config.Config, name string, dir string) *store.Project {
	t.Helper()

	for _, f := range []string{"reads.fastq.gz", "assembly.fasta"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte(f), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	project := store.NewProject(name, cfg.User, cfg.Env.Hash)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		f := provenance.NewFile(filepath.Join(dir, e.Name()), "")
		project.Files = append(project.Files, store.FileEntry{
			Path:    f.Path,
			Tag:     f.Tag,
			Size:    f.Size,
			RawSize: f.RawSize,
		})
	}
	return project
}

func TestProjectLifecycle(t *testing.T) {
	for _, backend := range []string{store.BackendJSON, store.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			g := NewWithT(t)
			ctx := context.Background()

			cfg, _ := newTestConfig(t, config.Options{Backend: backend})

			projects, err := cfg.ListProjects(ctx)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(projects).To(BeEmpty())

			p := sampleProject(t, cfg, "assembly-run", t.TempDir())
			g.Expect(cfg.DB.Insert(ctx, p)).To(Succeed())

			projects, err = cfg.ListProjects(ctx)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(projects).To(HaveLen(1))
			g.Expect(projects[0].Name).To(Equal("assembly-run"))
			g.Expect(projects[0].User).To(Equal(cfg.User))
			g.Expect(projects[0].EnvHash).To(Equal(cfg.Env.Hash))
			g.Expect(projects[0].Files).To(HaveLen(2))
			g.Expect(projects[0].Files[0].RawSize).To(BeNumerically(">", 0))
		})
	}
}

func TestStorePersistsAcrossConfigs(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()

	configDir := t.TempDir()
	t.Setenv("BIOPROV_CONFIG_DIR", configDir)

	cfg, err := config.New(config.Options{Prompt: &config.ScriptedPrompt{}, Out: &strings.Builder{}})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.DB.Insert(ctx, store.NewProject("run-1", cfg.User, cfg.Env.Hash))).To(Succeed())
	g.Expect(cfg.Close()).To(Succeed())

	cfg2, err := config.New(config.Options{Prompt: &config.ScriptedPrompt{}, Out: &strings.Builder{}})
	g.Expect(err).NotTo(HaveOccurred())
	defer cfg2.Close()

	count, err := cfg2.DB.Count(ctx)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(count).To(Equal(1))
}

func TestClearStorePromptFlow(t *testing.T) {
	t.Run("declined leaves store intact", func(t *testing.T) {
		g := NewWithT(t)
		ctx := context.Background()

		cfg, out := newTestConfig(t, config.Options{
			Prompt: &config.ScriptedPrompt{Answers: []string{"n"}},
		})
		g.Expect(cfg.DB.Insert(ctx, store.NewProject("keep-me", cfg.User, cfg.Env.Hash))).To(Succeed())

		g.Expect(cfg.ClearStore(ctx, false)).To(Succeed())
		g.Expect(out.String()).To(ContainSubstring("Canceled operation."))

		count, err := cfg.DB.Count(ctx)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(count).To(Equal(1))
	})

	t.Run("accepted truncates", func(t *testing.T) {
		g := NewWithT(t)
		ctx := context.Background()

		cfg, out := newTestConfig(t, config.Options{
			Prompt: &config.ScriptedPrompt{Answers: []string{"y"}},
		})
		g.Expect(cfg.DB.Insert(ctx, store.NewProject("doomed", cfg.User, cfg.Env.Hash))).To(Succeed())

		g.Expect(cfg.ClearStore(ctx, false)).To(Succeed())
		g.Expect(out.String()).To(ContainSubstring("Erased bioprov store."))

		count, err := cfg.DB.Count(ctx)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(count).To(BeZero())
	})

	t.Run("confirm flag skips the prompt", func(t *testing.T) {
		g := NewWithT(t)
		ctx := context.Background()

		// no scripted answers: any prompt would fall through to the "no" default
		cfg, _ := newTestConfig(t, config.Options{})
		g.Expect(cfg.DB.Insert(ctx, store.NewProject("doomed", cfg.User, cfg.Env.Hash))).To(Succeed())

		g.Expect(cfg.ClearStore(ctx, true)).To(Succeed())

		count, err := cfg.DB.Count(ctx)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(count).To(BeZero())
	})
}

func TestEnvironmentFingerprintStable(t *testing.T) {
	g := NewWithT(t)

	cfg, _ := newTestConfig(t, config.Options{})

	env := provenance.NewEnvironment()
	g.Expect(env.Hash).To(Equal(cfg.Env.Hash))
	g.Expect(env.Update()).To(BeFalse())

	t.Setenv("BIOPROV_INTEGRATION_MARKER", "changed")
	g.Expect(env.Update()).To(BeTrue())
	g.Expect(env.Hash).NotTo(Equal(cfg.Env.Hash))
}

func TestCredentialsRoundtrip(t *testing.T) {
	g := NewWithT(t)

	cfg, out := newTestConfig(t, config.Options{
		Prompt: &config.ScriptedPrompt{Answers: []string{"y", "prov-user", "prov-token"}},
	})

	user, token := cfg.Credentials()
	g.Expect(user).To(Equal("prov-user"))
	g.Expect(token).To(Equal("prov-token"))
	g.Expect(out.String()).To(ContainSubstring("Wrote ProvStore credentials file"))

	data, err := os.ReadFile(cfg.CredentialsPath())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(data)).To(Equal("prov-user\nprov-token\n"))
}
