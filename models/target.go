package models

import "strings"

// Triple names a cross-compilation target as arch-vendor-os[-abi],
// e.g. x86_64-unknown-linux-gnu. It is treated as an opaque identifier by
// the toolchain; the components are only split out for display grouping.
type Triple string

func (t Triple) String() string {
	return string(t)
}

func (t Triple) parts() []string {
	return strings.Split(string(t), "-")
}

func (t Triple) Arch() string {
	parts := t.parts()
	if len(parts) < 1 {
		return ""
	}
	return parts[0]
}

func (t Triple) Vendor() string {
	parts := t.parts()
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// OS returns the operating system component. Targets are grouped by OS in
// progress output, so configured lists should keep same-OS triples adjacent.
func (t Triple) OS() string {
	parts := t.parts()
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

func (t Triple) ABI() string {
	parts := t.parts()
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}

// ParseTriples splits a comma-separated triple list, as accepted by the
// --targets flag. Empty elements are dropped.
func ParseTriples(s string) []Triple {
	var triples []Triple
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		triples = append(triples, Triple(part))
	}
	return triples
}
