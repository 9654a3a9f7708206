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

// Package common provides shared helpers and sentinel errors for bioprov.
package common

import (
	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5"
)

// Size returns the size of path in bytes. A missing or unreadable path is
// reported as zero, never as an error: size probing is best-effort metadata,
// not a correctness check.
func Size(fs billy.Filesystem, path string) int64 {
	info, err := fs.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// HumanSize returns the size of path formatted for humans ("8 B", "1.2 kB").
func HumanSize(fs billy.Filesystem, path string) string {
	return FormatSize(Size(fs, path))
}

// FormatSize renders a byte count in SI units. Negative counts clamp to zero.
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
