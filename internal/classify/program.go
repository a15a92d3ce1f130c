// Package classify maps free-text order attributes onto the closed
// program and location sets the dashboard aggregates by.
package classify

import "strings"

// ProgramCategory is the closed set of program buckets.
type ProgramCategory string

const (
	ProgramCamps     ProgramCategory = "Camps"
	ProgramParties   ProgramCategory = "Parties"
	ProgramSemester  ProgramCategory = "Semester"
	ProgramWorkshops ProgramCategory = "Workshops"
	ProgramPrivate   ProgramCategory = "Private"
	ProgramOther     ProgramCategory = "Other"
)

// Categories lists every program category in display order.
func Categories() []ProgramCategory {
	return []ProgramCategory{
		ProgramCamps,
		ProgramParties,
		ProgramSemester,
		ProgramWorkshops,
		ProgramPrivate,
		ProgramOther,
	}
}

// programInput is the normalized view a rule predicate sees: the whole
// lower-cased item-type string, its comma-split parts, and the activity name.
type programInput struct {
	activity string
	items    string
	parts    []string
}

type programRule struct {
	name   string
	result ProgramCategory
	match  func(in programInput) bool
}

// programRules is evaluated top to bottom; the first match wins. The
// order is load-bearing: "Summer Camp Week 3" must land in Camps even
// when the item type says "party".
var programRules = []programRule{
	{
		name:   "summer activity",
		result: ProgramCamps,
		match:  func(in programInput) bool { return strings.Contains(in.activity, "summer") },
	},
	{
		name:   "party item",
		result: ProgramParties,
		match:  func(in programInput) bool { return anyPartEquals(in.parts, "party") },
	},
	{
		name:   "semester item",
		result: ProgramSemester,
		match:  func(in programInput) bool { return anyPartContains(in.parts, "semester") },
	},
	{
		name:   "drop-in or single session",
		result: ProgramWorkshops,
		match: func(in programInput) bool {
			return containsAny(in.items, "drop-in", "drop in", "dropin", "single")
		},
	},
	{
		name:   "non-summer camp",
		result: ProgramWorkshops,
		match:  func(in programInput) bool { return strings.Contains(in.items, "camp") },
	},
	{
		name:   "session pack",
		result: ProgramPrivate,
		match:  func(in programInput) bool { return strings.Contains(in.items, "pack") },
	},
}

// Program returns the category for an order's item types and activity
// name. All comparisons are case-insensitive on trimmed text.
func Program(itemTypes, activityName string) ProgramCategory {
	in := programInput{
		activity: strings.ToLower(strings.TrimSpace(activityName)),
		items:    strings.ToLower(strings.TrimSpace(itemTypes)),
	}
	for _, part := range strings.Split(in.items, ",") {
		in.parts = append(in.parts, strings.TrimSpace(part))
	}

	for _, rule := range programRules {
		if rule.match(in) {
			return rule.result
		}
	}
	return ProgramOther
}

func anyPartEquals(parts []string, want string) bool {
	for _, part := range parts {
		if part == want {
			return true
		}
	}
	return false
}

func anyPartContains(parts []string, want string) bool {
	for _, part := range parts {
		if strings.Contains(part, want) {
			return true
		}
	}
	return false
}

func containsAny(s string, wants ...string) bool {
	for _, want := range wants {
		if strings.Contains(s, want) {
			return true
		}
	}
	return false
}
