package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ariel-frischer/cara/internal/group"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeInt ConfigValueType = iota
	TypeBool
	TypeString
	TypeEnum
	TypeList
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Key           string          // Key as written in the config file (e.g., "MIN_WORDS")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
}

// Configuration keys.
const (
	KeyMinWords        = "MIN_WORDS"
	KeyMinChars        = "MIN_CHARS"
	KeyExcludeKeywords = "EXCLUDE_KEYWORDS"
	KeyIncludeKeywords = "INCLUDE_KEYWORDS"
	KeyOutputEntries   = "OUTPUT_ENTRIES"
	KeyGroupBy         = "GROUP_BY"
	KeyDateFormat      = "DATE_FORMAT"
	KeyAttribution     = "ATTRIBUTION"
	KeyMaxCommits      = "MAX_COMMITS"
	KeyOutputFormat    = "OUTPUT_FORMAT"
)

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	KeyMinWords: {
		Key:         KeyMinWords,
		Type:        TypeInt,
		Description: "Minimum number of words a commit message needs; takes precedence over MIN_CHARS",
	},
	KeyMinChars: {
		Key:         KeyMinChars,
		Type:        TypeInt,
		Description: "Minimum number of characters a trimmed commit message needs",
	},
	KeyExcludeKeywords: {
		Key:         KeyExcludeKeywords,
		Type:        TypeList,
		Description: "Comma separated keywords; messages containing any are dropped",
	},
	KeyIncludeKeywords: {
		Key:         KeyIncludeKeywords,
		Type:        TypeList,
		Description: "Comma separated keywords; only messages containing one are kept",
	},
	KeyOutputEntries: {
		Key:         KeyOutputEntries,
		Type:        TypeList,
		Description: "Entry fields to show: all, or any of date commit author message",
	},
	KeyGroupBy: {
		Key:           KeyGroupBy,
		Type:          TypeEnum,
		AllowedValues: []string{"day", "week", "month", "year"},
		Description:   "Calendar unit used for changelog sections",
	},
	KeyDateFormat: {
		Key:         KeyDateFormat,
		Type:        TypeString,
		Description: "strftime layout for display dates (e.g., %Y-%m-%d)",
	},
	KeyAttribution: {
		Key:         KeyAttribution,
		Type:        TypeBool,
		Description: "Write the generator line under the changelog title",
	},
	KeyMaxCommits: {
		Key:         KeyMaxCommits,
		Type:        TypeInt,
		Description: "Maximum number of commits read from history (0 = all)",
	},
	KeyOutputFormat: {
		Key:           KeyOutputFormat,
		Type:          TypeEnum,
		AllowedValues: []string{"markdown", "yaml"},
		Description:   "Output document format",
	},
}

// SortedKeys returns the known keys in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is in the registry.
func IsKnownKey(key string) bool {
	_, ok := KnownKeys[key]
	return ok
}

// ValueError reports a configuration value that cannot be used.
type ValueError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Key, e.Reason)
}

// ValidateValue checks value against the schema of key. Empty values are
// always valid and mean "unset". Unknown keys are accepted as strings.
func ValidateValue(key, value string) error {
	schema, ok := KnownKeys[key]
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return nil
	}

	switch schema.Type {
	case TypeInt:
		_, err := parseCount(key, value)
		return err
	case TypeBool:
		_, err := parseBoolValue(key, value)
		return err
	case TypeEnum:
		if key == KeyGroupBy {
			if _, err := group.ParseUnit(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			return nil
		}
		return validateEnumValue(schema, value)
	default:
		return nil
	}
}

// parseCount parses a non-negative integer.
func parseCount(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &ValueError{Key: key, Value: value, Reason: "must be an integer"}
	}
	if n < 0 {
		return 0, &ValueError{Key: key, Value: value, Reason: "must not be negative"}
	}
	return n, nil
}

func parseBoolValue(key, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, &ValueError{Key: key, Value: value, Reason: "must be true or false"}
	}
}

func validateEnumValue(schema ConfigKeySchema, value string) error {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, allowed := range schema.AllowedValues {
		if lower == allowed {
			return nil
		}
	}
	return &ValueError{
		Key:    schema.Key,
		Value:  value,
		Reason: "must be one of: " + strings.Join(schema.AllowedValues, ", "),
	}
}
