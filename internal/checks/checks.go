// Package checks registers the built-in repository health checks. Each check
// pairs a per-file analyzer with a scoring formula; the engine in core owns
// discovery, budgets and aggregation.
package checks

import (
	"fmt"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// registry holds the built-in checks in display order.
var registry = []*contract.Check{
	commentsCheck,
	complexityCheck,
	licenseCheck,
	reliabilityCheck,
}

// All returns every registered check.
func All() []*contract.Check {
	out := make([]*contract.Check, len(registry))
	copy(out, registry)
	return out
}

// Lookup resolves a check by name.
func Lookup(name schema.CheckName) (*contract.Check, error) {
	for _, chk := range registry {
		if chk.Name == name {
			return chk, nil
		}
	}
	return nil, fmt.Errorf("unknown check %q", name)
}

// Select resolves the configured check names, defaulting to all checks when
// none are named.
func Select(names []schema.CheckName) ([]*contract.Check, error) {
	if len(names) == 0 {
		return All(), nil
	}
	out := make([]*contract.Check, 0, len(names))
	for _, name := range names {
		chk, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, chk)
	}
	return out, nil
}
