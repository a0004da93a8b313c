package config

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "cara.conf"

// parserFor picks the koanf parser for a config file by its extension.
// Anything that is not YAML or JSON is read as KEY=VALUE lines.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return ConfParser()
	}
}
