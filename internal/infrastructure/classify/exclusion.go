package classify

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/ecoscan/internal/pkg/filesystem"
)

// Excluder decides whether an entry is a system entity that should be
// dropped from results entirely.
type Excluder struct {
	exact        map[string]struct{}
	prefixes     []string
	keywords     []string
	namePrefixes []string
}

// ExclusionRule groups the configurable rule lists.
type ExclusionRule struct {
	Exact        []string `yaml:"exact"`
	Prefixes     []string `yaml:"prefixes"`
	Keywords     []string `yaml:"keywords"`
	NamePrefixes []string `yaml:"name_prefixes"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules ExclusionRule `yaml:"rules"`
}

// camelCasePattern matches display names shaped like internal component
// class names ("ConfigUpdater", "DeviceHealthService").
var camelCasePattern = regexp.MustCompile(`^[A-Z][a-z0-9]+(?:[A-Z][a-z0-9]+)+$`)

// NewExcluder loads exclusion rules from disk (or defaults when missing).
func NewExcluder(path string) (*Excluder, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	exact := make(map[string]struct{}, len(rules.Rules.Exact))
	for _, id := range rules.Rules.Exact {
		exact[strings.ToLower(id)] = struct{}{}
	}

	return &Excluder{
		exact:        exact,
		prefixes:     lowered(rules.Rules.Prefixes),
		keywords:     lowered(rules.Rules.Keywords),
		namePrefixes: rules.Rules.NamePrefixes,
	}, nil
}

// Excluded reports whether the entry matches any exclusion rule.
func (e *Excluder) Excluded(packageID, displayName string) bool {
	id := strings.ToLower(packageID)

	if _, ok := e.exact[id]; ok {
		return true
	}
	for _, prefix := range e.prefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	for _, keyword := range e.keywords {
		if strings.Contains(id, keyword) {
			return true
		}
	}
	if camelCasePattern.MatchString(displayName) {
		return true
	}
	for _, prefix := range e.namePrefixes {
		if strings.HasPrefix(displayName, prefix) {
			return true
		}
	}
	return false
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	path = expandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to defaults
		rules.Rules = defaultExclusions()
		return rules, nil
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	if len(rules.Rules.Exact) == 0 && len(rules.Rules.Prefixes) == 0 &&
		len(rules.Rules.Keywords) == 0 && len(rules.Rules.NamePrefixes) == 0 {
		rules.Rules = defaultExclusions()
	}
	return rules, nil
}

func defaultExclusions() ExclusionRule {
	return ExclusionRule{
		Exact: []string{
			"com.android.settings",
			"com.android.systemui",
			"org.freedesktop.impl.portal.desktop.gtk",
		},
		Prefixes: []string{
			"com.android.",
			"com.google.android.",
			"com.samsung.",
			"com.sec.",
			"com.miui.",
			"com.oppo.",
			"org.freedesktop.",
			"org.gnome.shell",
			"org.kde.plasma.",
		},
		Keywords: []string{
			"inputmethod",
			"launcher",
			"systemui",
			"packageinstaller",
			"wallpaper",
			"portal",
			"provision",
		},
		NamePrefixes: []string{
			"System",
			"Device",
			"Settings",
			"Input",
			"Config",
			"Carrier",
		},
	}
}

func lowered(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, strings.ToLower(value))
	}
	return out
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return path
}
