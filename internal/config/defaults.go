package config

// GetDefaultConfigTemplate returns a fully commented cara.conf template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# CARA configuration
# Lines are KEY=VALUE; text after # is a comment.

# Filtering
# MIN_WORDS=3                         # Minimum words per message (wins over MIN_CHARS)
# MIN_CHARS=10                        # Minimum characters per trimmed message
# EXCLUDE_KEYWORDS=wip,fixup          # Drop messages containing any of these
# INCLUDE_KEYWORDS=                   # Keep only messages containing one of these

# Layout
OUTPUT_ENTRIES=message                # all | any of: date commit author message
GROUP_BY=day                          # day | week | month | year
DATE_FORMAT=%Y-%m-%d                  # strftime layout for display dates
ATTRIBUTION=true                      # Write the generator line under the title
OUTPUT_FORMAT=markdown                # markdown | yaml

# History
MAX_COMMITS=0                         # Limit commits read from history (0 = all)
`
}

// GetDefaults returns the default configuration values. Keys absent here
// have no default and mean "no constraint" when unset.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		KeyOutputEntries: "message",
		KeyGroupBy:       "day",
		KeyDateFormat:    "%Y-%m-%d",
		KeyAttribution:   "true",
		KeyMaxCommits:    "0",
		KeyOutputFormat:  "markdown",
	}
}
