package seed

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var builtinPresets []byte

// Preset sizes a seeding run.
type Preset struct {
	Name                    string `yaml:"-"`
	Users                   int    `yaml:"users"`
	ProjectsPerUser         int    `yaml:"projects_per_user"`
	CollabsPerUser          int    `yaml:"collabs_per_user"`
	Conversations           int    `yaml:"conversations"`
	MessagesPerConversation int    `yaml:"messages_per_conversation"`
	MaxDays                 int    `yaml:"max_days"`
	SkipBcrypt              bool   `yaml:"skip_bcrypt"`
	BatchSize               int    `yaml:"batch_size"`
}

// ParsePresets decodes a YAML document mapping preset names to sizes.
func ParsePresets(data []byte) (map[string]Preset, error) {
	raw := make(map[string]Preset)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	out := make(map[string]Preset, len(raw))
	for name, p := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if p.Users < 2 {
			return nil, fmt.Errorf("preset %q: users must be at least 2", name)
		}
		if p.ProjectsPerUser < 0 || p.CollabsPerUser < 0 || p.Conversations < 0 || p.MessagesPerConversation < 0 {
			return nil, fmt.Errorf("preset %q: counts must not be negative", name)
		}
		p.Name = name
		out[name] = p
	}
	return out, nil
}

// LookupPreset returns a built-in preset by name.
func LookupPreset(name string) (Preset, error) {
	presets, err := ParsePresets(builtinPresets)
	if err != nil {
		return Preset{}, err
	}
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames lists the built-in presets in alphabetical order.
func PresetNames() []string {
	presets, err := ParsePresets(builtinPresets)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
