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
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"os"
	"sort"
	"strings"
)

// UnknownUser is reported when no user-identifying variable is set.
const UnknownUser = "unknown"

// Environment is a provenance record of the process environment: a snapshot
// of all environment variables plus a fingerprint hash used for cheap change
// detection. The snapshot and hash are always mutually consistent — Update
// replaces both together or neither.
type Environment struct {
	EnvMap    map[string]string
	Hash      string
	User      string
	Namespace string
}

// NewEnvironment creates an Environment and takes the initial snapshot.
func NewEnvironment() *Environment {
	e := &Environment{}
	e.Update()
	return e
}

// Update re-reads the process environment. When the fingerprint matches the
// stored hash nothing is modified and false is returned. Otherwise the
// snapshot and hash are replaced together, the user is re-resolved, and the
// namespace identifier is recomputed.
func (e *Environment) Update() bool {
	env := readEnviron()
	hash := HashEnv(env)
	if hash == e.Hash {
		return false
	}
	e.EnvMap = env
	e.Hash = hash
	e.User = resolveUser(env)
	e.Namespace = "envs:" + e.String()
	return true
}

// String returns the identifier derived from the fingerprint hash.
func (e *Environment) String() string {
	return "Environment_" + e.Hash
}

// HashEnv computes the deterministic fingerprint of an environment mapping.
// Keys are sorted and every field is length-prefixed, so the result is stable
// across insertion orders, processes, and architectures.
func HashEnv(env map[string]string) string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	var lenBuf [8]byte
	writeField := func(s string) {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(s)))
		h.Write(lenBuf[:])
		h.Write([]byte(s))
	}
	for _, k := range keys {
		writeField(k)
		writeField(env[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// readEnviron converts os.Environ into a mapping. Values may themselves
// contain '=' so only the first separator splits.
func readEnviron() map[string]string {
	pairs := os.Environ()
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// resolveUser finds the current user in the snapshot. Absence is an expected
// condition (minimal containers, CI runners) and falls back to UnknownUser.
func resolveUser(env map[string]string) string {
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v, ok := env[key]; ok && v != "" {
			return v
		}
	}
	return UnknownUser
}
