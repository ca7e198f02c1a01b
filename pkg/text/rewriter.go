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
	"context"

	"github.com/rs/zerolog"
)

// Rewriter applies an ordered list of rules to file content.
//
// Order matters: a general rule placed before a specific one would consume
// text the specific rule was written for.
type Rewriter struct {
	rules []Rule
}

// 🏭 NewRewriter creates a rewriter applying rules in the given order
func NewRewriter(rules ...Rule) *Rewriter {
	return &Rewriter{rules: rules}
}

// NewDefaultRewriter creates a rewriter with DefaultMarkers and DefaultRules
func NewDefaultRewriter() *Rewriter {
	rules := []Rule{NewMarkerRule(DefaultMarkers...)}
	for _, r := range DefaultRules() {
		rules = append(rules, r)
	}
	return NewRewriter(rules...)
}

// Rules returns the rules in application order
func (r *Rewriter) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Rewrite runs every rule over content, feeding each rule the previous rule's output
func (r *Rewriter) Rewrite(ctx context.Context, content string) *ReplacementResult {
	logger := zerolog.Ctx(ctx)

	result := &ReplacementResult{
		OriginalContent: content,
		RuleCounts:      map[string]int{},
	}

	current := content
	for _, rule := range r.rules {
		next, n := rule.Apply(current)
		if n == 0 {
			continue
		}
		logger.Trace().Str("rule", rule.Name()).Int("matches", n).Msg("rule matched")
		result.RuleCounts[rule.Name()] += n
		result.ReplacementCount += n
		current = next
	}

	result.ModifiedContent = current
	result.WasModified = current != content
	return result
}
