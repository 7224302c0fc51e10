package model

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// PatchEntry is the override recorded under [patch.<group>.<name>]
type PatchEntry struct {
	Git     string `toml:"git,omitempty"`
	Package string `toml:"package,omitempty"`
	Version string `toml:"version,omitempty"`
	Rev     string `toml:"rev,omitempty"`
	Branch  string `toml:"branch,omitempty"`
	Tag     string `toml:"tag,omitempty"`
	Path    string `toml:"path,omitempty"`
}

// PatchTable is a freshly built patch.<GroupKey> section. It never contains
// entries that already exist in the manifest.
type PatchTable struct {
	GroupKey string
	Entries  map[string]*PatchEntry
}

// NewPatchTable returns an empty patch section for the origin group
func NewPatchTable(groupKey string) *PatchTable {
	return &PatchTable{
		GroupKey: groupKey,
		Entries:  map[string]*PatchEntry{},
	}
}

// Set records the override for the package declared as name
func (t *PatchTable) Set(name string, entry *PatchEntry) {
	t.Entries[name] = entry
}

// Render encodes the table as TOML text. Only the leaf
// [patch.<group>.<name>] headers are written, so the fragment can be
// appended to a manifest that already defines [patch] or [patch.<group>].
func (t *PatchTable) Render() ([]byte, error) {
	names := make([]string, 0, len(t.Entries))
	for name := range t.Entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for i, name := range names {
		if i > 0 {
			buf.WriteString("\n")
		}

		body, err := toml.Marshal(t.Entries[name])
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode patch entry",
				goerr.V("group", t.GroupKey),
				goerr.V("name", name))
		}

		buf.WriteString("[patch." + quoteKey(t.GroupKey) + "." + quoteKey(name) + "]\n")
		buf.Write(body)
	}

	return buf.Bytes(), nil
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func quoteKey(key string) string {
	if bareKey.MatchString(key) {
		return key
	}
	if !strings.ContainsFunc(key, func(r rune) bool { return r == '\'' || isControl(r) }) {
		return "'" + key + "'"
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range key {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if isControl(r) {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// isControl reports characters TOML forbids unescaped in quoted keys
func isControl(r rune) bool {
	return (r < 0x20 && r != '\t') || r == 0x7f
}
