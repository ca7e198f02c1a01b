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

// DefaultImportLine is the statement every migrated file must import
const DefaultImportLine = "import { logger } from '@/lib/logger';"

// DefaultImportMarker starts every import line after trimming
const DefaultImportMarker = "import "

// toErrorTemplate coerces the caught value into an Error for logger.error
const toErrorTemplate = "logger.error('${1}', error instanceof Error ? error : new Error(String(error)));"

// DefaultMarkers are the decorative prefixes stripped from log messages.
//
// The warning sign carries its own trailing space, so it is only stripped
// when the message has two spaces after it.
var DefaultMarkers = []string{
	"❌",
	"✅",
	"🚫",
	"📝",
	"🔄",
	"🔧",
	"🧹",
	"📊",
	"⚠️ ",
	"🗑️",
	"🔐",
}

// DefaultRules returns the console to logger rules, most specific first.
func DefaultRules() []*RegexRule {
	return []*RegexRule{
		// console.error('message:', error);
		MustRegexRule("error-colon",
			`console\.error\('([^']+):', error\);`,
			toErrorTemplate),
		MustRegexRule("error",
			`console\.error\('([^']+)', error\);`,
			toErrorTemplate),

		// success messages are promoted to info
		MustRegexRule("info-success-data",
			`console\.log\('([^']+) successfully:', ([^)]+)\);`,
			"logger.info('${1} successfully', { data: ${2} });"),
		MustRegexRule("info-success",
			`console\.log\('([^']+) successfully'\);`,
			"logger.info('${1} successfully');"),

		MustRegexRule("debug-ellipsis",
			`console\.log\('([^']+)\.\.\.'\);`,
			"logger.debug('${1}');"),
		// quoted and template literals must open and close with the same character
		MustRegexRule("debug-quoted",
			"console\\.log\\('([^`']+)'\\);",
			"logger.debug('${1}');"),
		MustRegexRule("debug-template",
			"console\\.log\\(`([^`']+)`\\);",
			"logger.debug('${1}');"),
		MustRegexRule("debug-data",
			`console\.log\('([^']+)', ([^)]+)\);`,
			"logger.debug('${1}', ${2});"),

		MustRegexRule("warn-data",
			`console\.warn\('([^']+)', ([^)]+)\);`,
			"logger.warn('${1}', ${2});"),
		MustRegexRule("warn",
			`console\.warn\('([^']+)'\);`,
			"logger.warn('${1}');"),
	}
}
