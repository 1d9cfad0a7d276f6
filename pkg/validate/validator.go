// Package validate checks raw scan requests against the wire contract.
// Validation is exhaustive: every defect in every record is reported in one
// pass so callers never see partial error lists.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nyeloz/VibeGuard/pkg/contract"
)

// FieldError describes one validation defect. Index is the position of the
// offending record in the request; -1 marks an envelope-level defect.
type FieldError struct {
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) String() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("findings[%d].%s: %s", e.Index, e.Field, e.Reason)
}

// ValidationError aggregates every field-level defect found in a request.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.String()
	}
	return fmt.Sprintf("request validation failed: %s", strings.Join(msgs, "; "))
}

// Validate parses and checks a raw scan request. On success it returns the
// normalized findings in input order. On failure it returns a
// *ValidationError listing all defects across all records; it never stops at
// the first one. Unknown top-level envelope keys are ignored, and
// unrecognized per-finding fields are preserved verbatim, so requests
// produced against a newer contract version are accepted losslessly.
//
// Validate is a pure function and safe for concurrent use.
func Validate(raw []byte) ([]contract.Finding, error) {
	var envelope struct {
		Findings json.RawMessage `json:"findings"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ValidationError{Errors: []FieldError{
			{Index: -1, Field: "request", Reason: "body is not a JSON object"},
		}}
	}
	if envelope.Findings == nil || isNull(envelope.Findings) {
		return nil, &ValidationError{Errors: []FieldError{
			{Index: -1, Field: "findings", Reason: "required field is missing"},
		}}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(envelope.Findings, &records); err != nil {
		return nil, &ValidationError{Errors: []FieldError{
			{Index: -1, Field: "findings", Reason: "must be an array of objects"},
		}}
	}

	findings := make([]contract.Finding, 0, len(records))
	var defects []FieldError

	for i, rec := range records {
		finding, errs := validateRecord(i, rec)
		if len(errs) > 0 {
			defects = append(defects, errs...)
			continue
		}
		findings = append(findings, finding)
	}

	if len(defects) > 0 {
		return nil, &ValidationError{Errors: defects}
	}
	return findings, nil
}

func validateRecord(index int, raw json.RawMessage) (contract.Finding, []FieldError) {
	var rec contract.RawRecord
	if err := rec.UnmarshalJSON(raw); err != nil {
		return contract.Finding{}, []FieldError{
			{Index: index, Field: "finding", Reason: "must be a JSON object"},
		}
	}

	var (
		finding contract.Finding
		defects []FieldError
		seen    = map[string]bool{}
	)
	fail := func(field, reason string) {
		defects = append(defects, FieldError{Index: index, Field: field, Reason: reason})
	}

	for _, field := range rec {
		seen[field.Name] = true

		// An explicit null on an optional field means absence, which is
		// always valid. Null required fields are reported after the loop.
		if isNull(field.Value) {
			continue
		}

		switch field.Name {
		case contract.FieldRuleID:
			s, ok := asString(field.Value)
			if !ok {
				fail(field.Name, "must be a string")
			} else if s == "" {
				fail(field.Name, "must be a non-empty string")
			} else {
				finding.RuleID = s
			}
		case contract.FieldSeverity:
			s, ok := asString(field.Value)
			if !ok {
				fail(field.Name, "must be a string")
			} else if !contract.Severity(s).Valid() {
				fail(field.Name, fmt.Sprintf("%q is not one of %v", s, contract.AllowedSeverities()))
			} else {
				finding.Severity = contract.Severity(s)
			}
		case contract.FieldMessage:
			s, ok := asString(field.Value)
			if !ok {
				fail(field.Name, "must be a string")
			} else if s == "" {
				fail(field.Name, "must be a non-empty string")
			} else {
				finding.Message = s
			}
		case contract.FieldLine:
			n, ok := asInt(field.Value)
			if !ok {
				fail(field.Name, "must be an integer")
			} else if n < 0 {
				fail(field.Name, "must be a non-negative integer")
			} else {
				line := n
				finding.Line = &line
			}
		case contract.FieldSnippet:
			s, ok := asString(field.Value)
			if !ok {
				fail(field.Name, "must be a string")
			} else {
				snippet := s
				finding.Snippet = &snippet
			}
		default:
			// Forward compatibility: carry the field verbatim, shape unchecked.
			finding.Extra = append(finding.Extra, contract.ExtraField(field))
		}
	}

	for _, name := range []string{contract.FieldRuleID, contract.FieldSeverity, contract.FieldMessage} {
		if !seen[name] {
			fail(name, "required field is missing")
		} else if isNull(fieldValue(rec, name)) {
			fail(name, "required field must not be null")
		}
	}

	if len(defects) > 0 {
		return contract.Finding{}, defects
	}
	return finding, nil
}

func fieldValue(rec contract.RawRecord, name string) json.RawMessage {
	for _, f := range rec {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func asString(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil || isNull(v) {
		return "", false
	}
	return s, true
}

func asInt(v json.RawMessage) (int, bool) {
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil || isNull(v) {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(i), true
}
