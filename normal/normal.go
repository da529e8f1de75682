// Package normal canonicalizes column header strings, so downstream code
// can address columns by predictable names.
package normal

import (
	"strings"
)

type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

type Normalizer interface {
	Normalize(string) string
}

type TrimNormalizer struct{}

func (t *TrimNormalizer) Normalize(v string) string {
	return strings.TrimSpace(v)
}

type LowercaseNormalizer struct{}

func (l *LowercaseNormalizer) Normalize(v string) string {
	return strings.ToLower(v)
}

// SeparatorNormalizer maps separator characters to underscore.
type SeparatorNormalizer struct{}

func (s *SeparatorNormalizer) Normalize(v string) string {
	var b strings.Builder
	for _, c := range v {
		switch c {
		case ' ', '/', '-', '#':
			b.WriteRune('_')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// StripNormalizer drops anything that is not alphanumeric or underscore.
type StripNormalizer struct{}

func (s *StripNormalizer) Normalize(v string) string {
	var b strings.Builder
	for _, c := range v {
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ColumnPipeline is the canonical header normalization: trim, lowercase,
// separators to underscore, strip the rest. The result only contains
// lowercase alphanumerics and underscore, which makes the pipeline
// idempotent.
var ColumnPipeline = &Pipeline{Normalizer: []Normalizer{
	&TrimNormalizer{},
	&LowercaseNormalizer{},
	&SeparatorNormalizer{},
	&StripNormalizer{},
}}

// Column normalizes a single header string.
func Column(s string) string {
	return ColumnPipeline.Normalize(s)
}

// Columns normalizes a header row.
func Columns(cols []string) []string {
	result := make([]string, len(cols))
	for i, c := range cols {
		result[i] = Column(c)
	}
	return result
}
