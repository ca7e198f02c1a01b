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
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/unicode/norm"
)

// Rule is a single find/replace step applied to the full content of a file.
type Rule interface {
	// Name identifies the rule in listings and rewrite counts
	Name() string

	// Apply rewrites content and returns the new content with the number of matches
	Apply(content string) (string, int)
}

// 🔖 MarkerRule strips decorative prefixes from the start of quoted log messages.
//
// A marker is only removed when it directly follows a single quote or a
// backtick and is itself followed by a space, so `'❌ Failed'` becomes
// `'Failed'` while a bare ❌ elsewhere in the file is kept.
type MarkerRule struct {
	Markers []string
}

// NewMarkerRule creates a MarkerRule with markers normalized to NFC
func NewMarkerRule(markers ...string) *MarkerRule {
	normalized := make([]string, 0, len(markers))
	for _, m := range markers {
		if m == "" {
			continue
		}
		normalized = append(normalized, norm.NFC.String(m))
	}
	return &MarkerRule{Markers: normalized}
}

func (r *MarkerRule) Name() string {
	return "strip-markers"
}

func (r *MarkerRule) Apply(content string) (string, int) {
	count := 0
	for _, marker := range r.Markers {
		for _, form := range spellings(marker) {
			for _, quote := range []string{"'", "`"} {
				from := quote + form + " "
				n := strings.Count(content, from)
				if n == 0 {
					continue
				}
				count += n
				content = strings.ReplaceAll(content, from, quote)
			}
		}
	}
	return content, count
}

// spellings returns the composed form of marker and, when it differs, the
// decomposed one. The rest of the content is never normalized.
func spellings(marker string) []string {
	if nfd := norm.NFD.String(marker); nfd != marker {
		return []string{marker, nfd}
	}
	return []string{marker}
}

// 🔄 RegexRule rewrites every match of Pattern using Template.
//
// Template uses regexp expansion syntax (${1}, ${2}).
type RegexRule struct {
	RuleName string
	Pattern  *regexp.Regexp
	Template string
}

// NewRegexRule compiles pattern into a RegexRule
func NewRegexRule(name, pattern, template string) (*RegexRule, error) {
	if name == "" {
		return nil, errors.New("rule name is required")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("rule %s: compiling pattern: %w", name, err)
	}
	return &RegexRule{RuleName: name, Pattern: re, Template: template}, nil
}

// MustRegexRule is like NewRegexRule but panics on error
func MustRegexRule(name, pattern, template string) *RegexRule {
	r, err := NewRegexRule(name, pattern, template)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *RegexRule) Name() string {
	return r.RuleName
}

func (r *RegexRule) Apply(content string) (string, int) {
	matches := r.Pattern.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}
	return r.Pattern.ReplaceAllString(content, r.Template), len(matches)
}

// ReplacementResult contains the results of a rewrite
type ReplacementResult struct {
	// WasModified indicates if any rule changed the content
	WasModified bool

	// ReplacementCount is the total number of matches across all rules
	ReplacementCount int

	// RuleCounts maps rule names to their match counts; rules without matches are absent
	RuleCounts map[string]int

	// OriginalContent is the content before rewriting
	OriginalContent string

	// ModifiedContent is the content after rewriting
	ModifiedContent string
}
