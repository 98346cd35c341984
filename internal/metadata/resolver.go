// Package metadata derives structured provenance from source filenames.
package metadata

import (
	"fmt"
	"regexp"
	"strconv"

	"go.uber.org/zap"
)

// Field names a metadata attribute a filename pattern can capture.
const (
	FieldParliament = "parliament"
	FieldSession    = "session"
	FieldYear       = "year"
	FieldVolume     = "volume"
)

// Record is the provenance derived from a filename. Unset fields are nil:
// "unknown" is distinct from zero.
type Record struct {
	Parliament *int
	Session    *int
	Year       *int
	Volume     *int
}

// Resolution describes how a filename was resolved. Fallback is true when
// no pattern matched and only the 4-digit-year heuristic applied; such
// documents lose parliament/session provenance and the caller should
// surface that to an operator.
type Resolution struct {
	Pattern  string
	Fallback bool
}

// Pattern maps capture groups of a filename regex onto Record fields, in
// group order. New corpora extend the table through configuration without
// touching the chunking or cleaning logic.
type Pattern struct {
	Name   string   `koanf:"name"`
	Regex  string   `koanf:"regex"`
	Fields []string `koanf:"fields"`
}

// DefaultPatterns returns the built-in filename patterns, tried in order.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:   "hansard_debate",
			Regex:  `(?i)hansard_debate_(\d{2})_(\d{2})_(\d{4})(?:_(\d{2}))?`,
			Fields: []string{FieldParliament, FieldSession, FieldYear, FieldVolume},
		},
		{
			// oop.debates_HOC{parliament}{session}_{part}: carries no year.
			Name:   "oop_debates_hoc",
			Regex:  `(?i)oop\.debates_HOC(\d{2})(\d{2})_(\d{2})`,
			Fields: []string{FieldParliament, FieldSession, FieldVolume},
		},
	}
}

// fallbackYear extracts any 4-digit number from an unrecognized filename.
var fallbackYear = regexp.MustCompile(`(\d{4})`)

type compiledPattern struct {
	Pattern
	regex *regexp.Regexp
}

// Resolver resolves filenames against an ordered pattern table.
type Resolver struct {
	patterns []compiledPattern
	logger   *zap.Logger
}

// NewResolver builds a Resolver from the default patterns followed by any
// extra configured ones. An invalid regex or a field/group mismatch is a
// setup failure.
func NewResolver(extra []Pattern, logger *zap.Logger) (*Resolver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	all := append(DefaultPatterns(), extra...)
	compiled := make([]compiledPattern, 0, len(all))
	for _, p := range all {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, fmt.Errorf("compiling filename pattern %q: %w", p.Name, err)
		}
		if re.NumSubexp() != len(p.Fields) {
			return nil, fmt.Errorf("filename pattern %q has %d capture groups but %d fields",
				p.Name, re.NumSubexp(), len(p.Fields))
		}
		for _, f := range p.Fields {
			switch f {
			case FieldParliament, FieldSession, FieldYear, FieldVolume:
			default:
				return nil, fmt.Errorf("filename pattern %q has unknown field %q", p.Name, f)
			}
		}
		compiled = append(compiled, compiledPattern{Pattern: p, regex: re})
	}

	return &Resolver{patterns: compiled, logger: logger}, nil
}

// Resolve derives provenance for a filename. It never fails: when no
// pattern matches, the fallback extracts any 4-digit number as the year and
// leaves the other fields unset.
func (r *Resolver) Resolve(filename string) (Record, Resolution) {
	for _, p := range r.patterns {
		m := p.regex.FindStringSubmatch(filename)
		if m == nil {
			continue
		}

		var rec Record
		for i, field := range p.Fields {
			group := m[i+1]
			if group == "" {
				continue
			}
			n, err := strconv.Atoi(group)
			if err != nil {
				continue
			}
			switch field {
			case FieldParliament:
				rec.Parliament = &n
			case FieldSession:
				rec.Session = &n
			case FieldYear:
				rec.Year = &n
			case FieldVolume:
				rec.Volume = &n
			}
		}

		if rec.Year == nil {
			r.logger.Warn("filename pattern carries no year; year metadata will be missing",
				zap.String("file", filename),
				zap.String("pattern", p.Name),
			)
		}
		return rec, Resolution{Pattern: p.Name}
	}

	var rec Record
	if m := fallbackYear.FindStringSubmatch(filename); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			rec.Year = &n
		}
	}
	r.logger.Warn("filename matched no known pattern; using fallback year extraction",
		zap.String("file", filename),
	)
	return rec, Resolution{Fallback: true}
}
