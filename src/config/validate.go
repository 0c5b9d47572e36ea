package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Validate checks cfg against the registered linter names and the running
// version. Unknown names are warnings; a malformed or unmet requires
// constraint is an error.
func Validate(cfg *Config, linters []string, running string) (warnings []string, err error) {
	var errs []string

	for _, key := range cfg.Unknown {
		warnings = append(warnings, fmt.Sprintf("unknown key %q", key))
	}
	names := make([]string, 0, len(cfg.Linters))
	for name := range cfg.Linters {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if !slices.Contains(linters, name) {
			warnings = append(warnings, fmt.Sprintf("linters: unknown linter %q (known: %s)", name, strings.Join(linters, ", ")))
		}
	}

	if cfg.Requires != "" {
		constraint, cerr := semver.NewConstraint(cfg.Requires)
		if cerr != nil {
			errs = append(errs, fmt.Sprintf("requires: invalid constraint %q: %v", cfg.Requires, cerr))
		} else if v, verr := semver.NewVersion(running); verr != nil {
			warnings = append(warnings, fmt.Sprintf("requires: cannot check %q against development version %q", cfg.Requires, running))
		} else if ok, reasons := constraint.Validate(v); !ok {
			msgs := make([]string, 0, len(reasons))
			for _, r := range reasons {
				msgs = append(msgs, r.Error())
			}
			errs = append(errs, fmt.Sprintf("requires: uxlint %s does not satisfy %q: %s", running, cfg.Requires, strings.Join(msgs, ", ")))
		}
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}
