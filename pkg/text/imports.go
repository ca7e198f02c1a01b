// Copyright 2025 walteh LLC
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

package text

import (
	"strings"
)

// 📥 ImportInserter adds an import statement after the last existing import line
type ImportInserter struct {
	// Line is the full import statement to add
	Line string
	// Marker identifies import lines once leading whitespace is trimmed
	Marker string
}

// NewImportInserter creates an inserter for line using DefaultImportMarker
func NewImportInserter(line string) *ImportInserter {
	return &ImportInserter{Line: line, Marker: DefaultImportMarker}
}

// Insert returns content with the import added and whether it was added.
//
// Content that already contains the statement anywhere, or that has no
// import line to anchor on, is returned unchanged.
func (i *ImportInserter) Insert(content string) (string, bool) {
	if strings.Contains(content, i.Line) {
		return content, false
	}

	lines := strings.Split(content, "\n")
	last := -1
	for idx, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), i.Marker) {
			last = idx
		}
	}
	if last < 0 {
		return content, false
	}

	// the new line takes the line ending of the import it follows
	line := i.Line
	if strings.HasSuffix(lines[last], "\r") {
		line += "\r"
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:last+1]...)
	out = append(out, line)
	out = append(out, lines[last+1:]...)
	return strings.Join(out, "\n"), true
}
