package crowd

import (
	"fmt"
	"strings"
)

// MappingEntry maps one Crowd group onto local groups.
type MappingEntry struct {
	External string
	Local    []string
}

// GroupMapping is the parsed group mapping, in configuration order.
type GroupMapping struct {
	entries []MappingEntry
	index   map[string]int
}

// ParseGroupMapping parses "<crowd group>:<local group>,<local group>" lines.
// The line is split at the first colon only. Malformed lines are skipped and
// reported. A repeated Crowd group replaces the targets of the earlier line.
func ParseGroupMapping(lines []string) (GroupMapping, []Diagnostic) {
	m := GroupMapping{index: make(map[string]int, len(lines))}

	var diags []Diagnostic

	for _, line := range lines {
		external, locals, found := strings.Cut(line, ":")
		external = strings.TrimSpace(external)

		if !found || external == "" {
			diags = append(diags, Diagnostic{
				Level:   LevelWarn,
				Code:    CodeMappingMalformed,
				Message: fmt.Sprintf("skipping malformed group mapping %q, expected <crowd group>:<local groups>", line),
			})

			continue
		}

		entry := MappingEntry{External: external, Local: splitLocal(locals)}

		if i, ok := m.index[external]; ok {
			diags = append(diags, Diagnostic{
				Level:         LevelWarn,
				Code:          CodeMappingDuplicate,
				ExternalGroup: external,
				Message:       fmt.Sprintf("group mapping %q replaces an earlier mapping of %q", line, external),
			})
			m.entries[i] = entry

			continue
		}

		m.index[external] = len(m.entries)
		m.entries = append(m.entries, entry)
	}

	return m, diags
}

func splitLocal(s string) []string {
	var out []string

	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}

	return out
}

// Targets returns the local groups a Crowd group maps to and whether it is mapped at all.
func (m GroupMapping) Targets(external string) ([]string, bool) {
	i, ok := m.index[external]
	if !ok {
		return nil, false
	}

	return m.entries[i].Local, true
}

// Entries returns a copy of the mapping entries.
func (m GroupMapping) Entries() []MappingEntry {
	out := make([]MappingEntry, len(m.entries))
	copy(out, m.entries)

	return out
}

// Len returns the number of mapped Crowd groups.
func (m GroupMapping) Len() int {
	return len(m.entries)
}
