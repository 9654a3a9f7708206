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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompt abstracts interactive confirmation and input so automated contexts
// can supply a non-blocking implementation instead of the terminal.
type Prompt interface {
	// Confirm asks a yes/no question (case-insensitive). Empty input
	// selects defaultYes; unrecognized input re-asks; a read failure
	// (closed stdin) returns the default.
	Confirm(question string, defaultYes bool) bool
	// Input reads one line of free-form input.
	Input(question string) (string, error)
}

// TerminalPrompt asks questions on an interactive terminal.
type TerminalPrompt struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewTerminalPrompt returns a Prompt wired to stdin/stdout.
func NewTerminalPrompt() *TerminalPrompt {
	return &TerminalPrompt{In: os.Stdin, Out: os.Stdout}
}

func (p *TerminalPrompt) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *TerminalPrompt) Confirm(question string, defaultYes bool) bool {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(p.Out, "%s %s\n", question, suffix)
		line, err := p.readLine()
		if err != nil {
			return defaultYes
		}
		switch strings.ToLower(line) {
		case "":
			return defaultYes
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Fprintln(p.Out, "Invalid option. Please pick 'y' or 'n'.")
		}
	}
}

func (p *TerminalPrompt) Input(question string) (string, error) {
	fmt.Fprintf(p.Out, "%s ", question)
	return p.readLine()
}

// ScriptedPrompt answers from a fixed list, for automated runs and tests.
// Exhausted answers behave like a closed stdin: Confirm returns the
// default and Input fails.
type ScriptedPrompt struct {
	Answers []string

	next int
}

func (p *ScriptedPrompt) pop() (string, bool) {
	if p.next >= len(p.Answers) {
		return "", false
	}
	answer := p.Answers[p.next]
	p.next++
	return answer, true
}

func (p *ScriptedPrompt) Confirm(question string, defaultYes bool) bool {
	for {
		answer, ok := p.pop()
		if !ok {
			return defaultYes
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return defaultYes
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		// Unrecognized answer, consume the next one like the terminal
		// prompt re-asks.
	}
}

func (p *ScriptedPrompt) Input(question string) (string, error) {
	answer, ok := p.pop()
	if !ok {
		return "", io.EOF
	}
	return strings.TrimSpace(answer), nil
}
