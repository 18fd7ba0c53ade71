package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LabelLimit is the per-label runtime configuration: MaxMinutes converts to
// a cutoff in seconds, TopK bounds rows retained per anchor.
type LabelLimit struct {
	MaxMinutes int `yaml:"max_minutes"`
	TopK       int `yaml:"top_k"`
}

// MaxSeconds returns MaxMinutes converted to seconds.
func (l LabelLimit) MaxSeconds() int {
	return l.MaxMinutes * 60
}

// LabelLimits is the parsed form of the label runtime-limits config file: an
// ordered mapping of label_id (as a string key, matching the file's textual
// ids) to LabelLimit, with a mandatory "default" fallback entry.
type LabelLimits struct {
	entries map[string]LabelLimit
}

// labelLimitsFile mirrors the on-disk YAML shape, e.g.:
//
//	default:
//	  max_minutes: 60
//	  top_k: 10
//	"grocery":
//	  max_minutes: 60
//	  top_k: 14
//	"weekend_destination":
//	  max_minutes: 180
//	  top_k: 8
type labelLimitsFile map[string]LabelLimit

// LoadLabelLimits reads and validates a label-limits YAML file.
func LoadLabelLimits(path string) (*LabelLimits, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f labelLimitsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if _, ok := f["default"]; !ok {
		return nil, ErrLabelLimitsMissingDefault
	}
	return &LabelLimits{entries: f}, nil
}

// For returns the LabelLimit for labelID, falling back to the "default"
// entry when labelID has no explicit entry.
func (l *LabelLimits) For(labelID string) LabelLimit {
	if lim, ok := l.entries[labelID]; ok {
		return lim
	}
	return l.entries["default"]
}
