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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toError = "error instanceof Error ? error : new Error(String(error))"

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.TraceLevel)
	return logger.WithContext(context.Background())
}

func findRule(t *testing.T, name string) *RegexRule {
	t.Helper()
	for _, r := range DefaultRules() {
		if r.Name() == name {
			return r
		}
	}
	t.Fatalf("rule %q not found", name)
	return nil
}

func TestDefaultRules_Isolated(t *testing.T) {
	tests := []struct {
		rule  string
		input string
		want  string
	}{
		{
			rule:  "error-colon",
			input: "console.error('Failed to save:', error);",
			want:  "logger.error('Failed to save', " + toError + ");",
		},
		{
			rule:  "error",
			input: "console.error('Failed to save', error);",
			want:  "logger.error('Failed to save', " + toError + ");",
		},
		{
			rule:  "info-success-data",
			input: "console.log('Leave request created successfully:', data.id);",
			want:  "logger.info('Leave request created successfully', { data: data.id });",
		},
		{
			rule:  "info-success",
			input: "console.log('Cache cleared successfully');",
			want:  "logger.info('Cache cleared successfully');",
		},
		{
			rule:  "debug-ellipsis",
			input: "console.log('Loading tasks...');",
			want:  "logger.debug('Loading tasks');",
		},
		{
			rule:  "debug-quoted",
			input: "console.log('Queue flushed');",
			want:  "logger.debug('Queue flushed');",
		},
		{
			rule:  "debug-template",
			input: "console.log(`Queue flushed`);",
			want:  "logger.debug('Queue flushed');",
		},
		{
			rule:  "debug-data",
			input: "console.log('Fetched rows', rows.length);",
			want:  "logger.debug('Fetched rows', rows.length);",
		},
		{
			rule:  "warn-data",
			input: "console.warn('Retrying request', attempt);",
			want:  "logger.warn('Retrying request', attempt);",
		},
		{
			rule:  "warn",
			input: "console.warn('Low battery');",
			want:  "logger.warn('Low battery');",
		},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			rule := findRule(t, tt.rule)
			got, n := rule.Apply(tt.input)
			assert.Equal(t, tt.want, got, "rewritten content should match")
			assert.Equal(t, 1, n, "rule should match once")
		})
	}
}

func TestDefaultRules_MismatchedQuotes(t *testing.T) {
	for _, name := range []string{"debug-quoted", "debug-template"} {
		t.Run(name, func(t *testing.T) {
			rule := findRule(t, name)
			input := "console.log('mixed`);"
			got, n := rule.Apply(input)
			assert.Equal(t, input, got)
			assert.Zero(t, n)
		})
	}
}

func TestRewriter_Rewrite(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		want         string
		wantCounts   map[string]int
		wantModified bool
	}{
		{
			name:         "error_with_colon",
			content:      "console.error('Failed to save:', error);",
			want:         "logger.error('Failed to save', " + toError + ");",
			wantCounts:   map[string]int{"error-colon": 1},
			wantModified: true,
		},
		{
			name:         "success_message_becomes_info",
			content:      "console.log('Saved successfully');",
			want:         "logger.info('Saved successfully');",
			wantCounts:   map[string]int{"info-success": 1},
			wantModified: true,
		},
		{
			name:         "warn",
			content:      "console.warn('Low battery');",
			want:         "logger.warn('Low battery');",
			wantCounts:   map[string]int{"warn": 1},
			wantModified: true,
		},
		{
			name:         "marker_stripped_before_rules",
			content:      "console.error('❌ Failed to load:', error);",
			want:         "logger.error('Failed to load', " + toError + ");",
			wantCounts:   map[string]int{"strip-markers": 1, "error-colon": 1},
			wantModified: true,
		},
		{
			name:         "marker_in_template_literal",
			content:      "console.log(`✅ Done`);",
			want:         "logger.debug('Done');",
			wantCounts:   map[string]int{"strip-markers": 1, "debug-template": 1},
			wantModified: true,
		},
		{
			name:         "warning_marker_needs_two_spaces",
			content:      "console.warn('⚠️  Low battery');",
			want:         "logger.warn('Low battery');",
			wantCounts:   map[string]int{"strip-markers": 1, "warn": 1},
			wantModified: true,
		},
		{
			name:         "warning_marker_single_space_kept",
			content:      "console.warn('⚠️ Low battery');",
			want:         "logger.warn('⚠️ Low battery');",
			wantCounts:   map[string]int{"warn": 1},
			wantModified: true,
		},
		{
			name:         "ellipsis_before_general_debug",
			content:      "console.log('Syncing...');",
			want:         "logger.debug('Syncing');",
			wantCounts:   map[string]int{"debug-ellipsis": 1},
			wantModified: true,
		},
		{
			name: "multiple_lines",
			content: "  console.log('Fetching leave requests...');\n" +
				"  console.log('Fetched', rows.length);\n" +
				"  console.error('Fetch failed', error);\n",
			want: "  logger.debug('Fetching leave requests');\n" +
				"  logger.debug('Fetched', rows.length);\n" +
				"  logger.error('Fetch failed', " + toError + ");\n",
			wantCounts:   map[string]int{"debug-ellipsis": 1, "debug-data": 1, "error": 1},
			wantModified: true,
		},
		{
			name:         "double_quotes_untouched",
			content:      `console.error("Failed", error);`,
			want:         `console.error("Failed", error);`,
			wantCounts:   map[string]int{},
			wantModified: false,
		},
		{
			name:         "nested_call_argument_untouched",
			content:      "console.log('Value', fn(x));",
			want:         "console.log('Value', fn(x));",
			wantCounts:   map[string]int{},
			wantModified: false,
		},
		{
			name:         "empty_content",
			content:      "",
			want:         "",
			wantCounts:   map[string]int{},
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := NewDefaultRewriter()
			result := rw.Rewrite(testContext(t), tt.content)

			require.NotNil(t, result)
			assert.Equal(t, tt.content, result.OriginalContent, "original content should be kept")
			assert.Equal(t, tt.want, result.ModifiedContent, "modified content should match")
			assert.Equal(t, tt.wantCounts, result.RuleCounts, "rule counts should match")
			assert.Equal(t, tt.wantModified, result.WasModified, "modified flag should match")

			total := 0
			for _, n := range tt.wantCounts {
				total += n
			}
			assert.Equal(t, total, result.ReplacementCount, "total count should match")
		})
	}
}

func TestRewriter_Idempotent(t *testing.T) {
	content := `import { supabase } from '@/lib/supabase';

export async function loadTasks() {
  console.log('🔄 Loading tasks...');
  try {
    const { data } = await supabase.from('tasks').select('*');
    console.log('Tasks loaded successfully:', data.length);
    console.warn('Cache is stale', cacheAge);
    return data;
  } catch (error) {
    console.error('Failed to load tasks:', error);
    throw error;
  }
}
`
	rw := NewDefaultRewriter()
	ctx := testContext(t)

	first := rw.Rewrite(ctx, content)
	require.True(t, first.WasModified, "first pass should rewrite")
	assert.NotContains(t, first.ModifiedContent, "console.")

	second := rw.Rewrite(ctx, first.ModifiedContent)
	assert.False(t, second.WasModified, "second pass should be a no-op")
	assert.Equal(t, first.ModifiedContent, second.ModifiedContent)
	assert.Zero(t, second.ReplacementCount)
}

func TestRewriter_Rules(t *testing.T) {
	rw := NewDefaultRewriter()
	rules := rw.Rules()

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name())
	}

	assert.Equal(t, []string{
		"strip-markers",
		"error-colon",
		"error",
		"info-success-data",
		"info-success",
		"debug-ellipsis",
		"debug-quoted",
		"debug-template",
		"debug-data",
		"warn-data",
		"warn",
	}, names, "rules should be applied most specific first")

	rules[0] = nil
	assert.NotNil(t, rw.Rules()[0], "returned slice should be a copy")
}

func TestMarkerRule_NormalizesMarkers(t *testing.T) {
	// decomposed e + combining acute accent
	rule := NewMarkerRule("e\u0301", "")
	require.Len(t, rule.Markers, 1, "empty markers should be dropped")

	got, n := rule.Apply("console.log('\u00e9 accented');")
	assert.Equal(t, "console.log('accented');", got)
	assert.Equal(t, 1, n)
}

func TestMarkerRule_StripsDecomposedMarkersInContent(t *testing.T) {
	rule := NewMarkerRule("\u00e9")

	content := "console.log('e\u0301 accented'); const caf\u00e9 = 'caf\u0065\u0301';"
	got, n := rule.Apply(content)
	assert.Equal(t, "console.log('accented'); const caf\u00e9 = 'caf\u0065\u0301';", got, "only the marker is touched, other text keeps its form")
	assert.Equal(t, 1, n)

	got, n = rule.Apply("console.log(`\u00e9 composed`);")
	assert.Equal(t, "console.log(`composed`);", got)
	assert.Equal(t, 1, n)
}

func TestNewRegexRule(t *testing.T) {
	tests := []struct {
		name      string
		ruleName  string
		pattern   string
		wantError string
	}{
		{
			name:     "valid",
			ruleName: "custom",
			pattern:  `console\.info\('([^']+)'\);`,
		},
		{
			name:      "missing_name",
			pattern:   `console`,
			wantError: "rule name is required",
		},
		{
			name:      "bad_pattern",
			ruleName:  "broken",
			pattern:   `console\.info(`,
			wantError: "compiling pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewRegexRule(tt.ruleName, tt.pattern, "logger.info('${1}');")
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ruleName, rule.Name())

			got, n := rule.Apply("console.info('Ready');")
			assert.Equal(t, "logger.info('Ready');", got)
			assert.Equal(t, 1, n)
		})
	}

	assert.Panics(t, func() { MustRegexRule("broken", `(`, "") })
}
