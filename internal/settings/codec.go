package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// SchemaVersion is the version written with every persisted blob. Blobs
// without a version are the flat layout of the first release (version 0).
const SchemaVersion = 1

type blob struct {
	SchemaVersion int `json:"schemaVersion"`
	Settings
}

// migration upgrades a decoded blob from one schema version to the next.
type migration func(raw map[string]json.RawMessage) error

// migrations[v] upgrades version v to v+1.
var migrations = map[int]migration{
	// Version 0 is the same flat layout without a version field.
	0: func(map[string]json.RawMessage) error { return nil },
}

// DecodeReport describes how a persisted blob was normalized.
type DecodeReport struct {
	Version int      // schema version found in the blob
	Missing []string // keys backfilled from defaults
	Coerced []string // keys whose stored value was outside the domain
	Unknown []string // keys not in the schema, dropped
}

// NeedsRewrite reports whether the normalized record differs from what
// is stored.
func (r DecodeReport) NeedsRewrite() bool {
	return r.Version < SchemaVersion || len(r.Missing) > 0 || len(r.Coerced) > 0 || len(r.Unknown) > 0
}

// Encode serializes s with the current schema version.
func Encode(s Settings) (string, error) {
	data, err := json.Marshal(blob{SchemaVersion: SchemaVersion, Settings: s})
	if err != nil {
		return "", fmt.Errorf("marshaling settings: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted blob, migrates it to the current schema and
// merges it over Defaults. Fields that are missing, mistyped or outside
// their domain take the default value. An error is returned only when the
// blob is not a JSON object or a migration fails.
func Decode(data string) (Settings, DecodeReport, error) {
	var report DecodeReport

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return Defaults(), report, fmt.Errorf("parsing settings: %w", err)
	}
	if raw == nil {
		return Defaults(), report, errors.New("parsing settings: not an object")
	}

	if v, ok := raw["schemaVersion"]; ok {
		if err := json.Unmarshal(v, &report.Version); err != nil {
			return Defaults(), report, fmt.Errorf("parsing schema version: %w", err)
		}
		delete(raw, "schemaVersion")
	}

	for v := report.Version; v < SchemaVersion; v++ {
		m, ok := migrations[v]
		if !ok {
			return Defaults(), report, fmt.Errorf("no migration from schema version %d", v)
		}
		if err := m(raw); err != nil {
			return Defaults(), report, fmt.Errorf("migrating schema version %d: %w", v, err)
		}
	}

	s := Defaults()
	for key, value := range raw {
		f, err := Lookup(key)
		if err != nil {
			report.Unknown = append(report.Unknown, key)
			continue
		}
		encoded, _ := json.Marshal(map[string]json.RawMessage{key: value})
		candidate := s
		if err := json.Unmarshal(encoded, &candidate); err != nil || !f.Allowed(f.Get(candidate)) {
			report.Coerced = append(report.Coerced, key)
			continue
		}
		s = candidate
	}

	for _, f := range fields {
		if _, ok := raw[f.Key]; !ok {
			report.Missing = append(report.Missing, f.Key)
		}
	}

	sort.Strings(report.Coerced)
	sort.Strings(report.Unknown)
	return s, report, nil
}
