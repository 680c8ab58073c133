package rules

import (
	"github.com/softpare/weblint/internal/lint"
)

// All returns every rule shipped with the linter, in stable order.
func All() []lint.Rule {
	return []lint.Rule{
		NoEval{},
		NoWindowPrefix{},
	}
}

// ForTags returns the rules carrying at least one of the given tags. An
// empty tag list selects everything.
func ForTags(tags []string) []lint.Rule {
	if len(tags) == 0 {
		return All()
	}
	wanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		wanted[t] = true
	}

	var selected []lint.Rule
	for _, rule := range All() {
		for _, t := range rule.Tags() {
			if wanted[t] {
				selected = append(selected, rule)
				break
			}
		}
	}
	return selected
}

// Filter applies include/exclude lists by rule code on top of a base set.
// Includes, when present, are a whitelist; excludes always win.
func Filter(base []lint.Rule, include, exclude []string) []lint.Rule {
	includes := make(map[string]bool, len(include))
	for _, code := range include {
		includes[code] = true
	}
	excludes := make(map[string]bool, len(exclude))
	for _, code := range exclude {
		excludes[code] = true
	}

	var selected []lint.Rule
	for _, rule := range base {
		if excludes[rule.Code()] {
			continue
		}
		if len(includes) > 0 && !includes[rule.Code()] {
			continue
		}
		selected = append(selected, rule)
	}
	return selected
}
