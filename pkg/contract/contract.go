// Package contract defines the frozen wire contract for scan findings and
// the policy governing its evolution. Required fields never change meaning;
// optional fields may only be added, never removed or renamed.
package contract

// Severity is the closed severity enumeration. Matching is case-sensitive
// and exact; no other value is ever coerced into the set.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is a member of the closed severity set.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

func (s Severity) String() string {
	return string(s)
}

// Wire field names of the Finding contract.
const (
	FieldRuleID   = "rule_id"
	FieldSeverity = "severity"
	FieldMessage  = "message"
	FieldLine     = "line"
	FieldSnippet  = "snippet"
)

var requiredFields = []string{FieldRuleID, FieldSeverity, FieldMessage}

var knownOptionalFields = []string{FieldLine, FieldSnippet}

// IsRequiredField reports whether name is one of the frozen required fields.
// The required set never grows or shrinks.
func IsRequiredField(name string) bool {
	for _, f := range requiredFields {
		if f == name {
			return true
		}
	}
	return false
}

// AllowedSeverities returns the closed severity set.
func AllowedSeverities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh}
}

// KnownOptionalFields returns the optional fields this contract version
// recognizes. Fields outside this set are still accepted and carried
// verbatim; adding a name here grows the acceptance set and must never
// tighten rejection of existing fields.
func KnownOptionalFields() []string {
	out := make([]string, len(knownOptionalFields))
	copy(out, knownOptionalFields)
	return out
}

// IsKnownField reports whether name is any field this contract version
// recognizes, required or optional.
func IsKnownField(name string) bool {
	if IsRequiredField(name) {
		return true
	}
	for _, f := range knownOptionalFields {
		if f == name {
			return true
		}
	}
	return false
}
