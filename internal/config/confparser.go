package config

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Conf implements koanf.Parser for KEY=VALUE config files. Text after a
// "#" is a comment, blank lines are ignored and lines without "=" are
// skipped. Later assignments win.
type Conf struct{}

// ConfParser returns a KEY=VALUE parser.
func ConfParser() *Conf {
	return &Conf{}
}

// Unmarshal parses KEY=VALUE lines into a flat map of strings.
func (p *Conf) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := make(map[string]interface{})

	scanner := bufio.NewScanner(bytes.NewReader(b))
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return out, nil
}

// Marshal writes a flat map as sorted KEY=VALUE lines.
func (p *Conf) Marshal(m map[string]interface{}) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&buf, "%s=%s\n", k, stringify(m[k]))
	}
	return buf.Bytes(), nil
}
