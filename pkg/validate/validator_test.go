package validate

import (
	"errors"
	"testing"

	"github.com/Nyeloz/VibeGuard/pkg/contract"
)

func mustFail(t *testing.T, raw string) *ValidationError {
	t.Helper()
	_, err := Validate([]byte(raw))
	if err == nil {
		t.Fatalf("expected validation to fail for %s", raw)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return verr
}

func hasDefect(verr *ValidationError, index int, field string) bool {
	for _, fe := range verr.Errors {
		if fe.Index == index && fe.Field == field {
			return true
		}
	}
	return false
}

func TestValidateAcceptsMinimalRequest(t *testing.T) {
	findings, err := Validate([]byte(`{"findings":[{"rule_id":"R1","severity":"high","message":"leak"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.RuleID != "R1" || f.Severity != contract.SeverityHigh || f.Message != "leak" {
		t.Errorf("unexpected finding: %+v", f)
	}
	if f.Line != nil || f.Snippet != nil || f.Extra != nil {
		t.Errorf("expected optionals absent, got %+v", f)
	}
}

func TestValidateEmptyFindingsIsValid(t *testing.T) {
	findings, err := Validate([]byte(`{"findings":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("expected 0 findings, got %d", len(findings))
	}
}

func TestValidateIgnoresUnknownEnvelopeKeys(t *testing.T) {
	_, err := Validate([]byte(`{"schema_version":"2.1","findings":[],"trace":{"id":1}}`))
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateMissingRequiredFields(t *testing.T) {
	verr := mustFail(t, `{"findings":[{"line":3}]}`)
	for _, field := range []string{"rule_id", "severity", "message"} {
		if !hasDefect(verr, 0, field) {
			t.Errorf("expected defect for missing %s, got %v", field, verr.Errors)
		}
	}
}

func TestValidateSeverityClosedEnum(t *testing.T) {
	for _, sev := range []string{"HIGH", "High", "critical", "medium ", ""} {
		verr := mustFail(t, `{"findings":[{"rule_id":"R1","severity":"`+sev+`","message":"m"}]}`)
		if !hasDefect(verr, 0, "severity") {
			t.Errorf("expected severity defect for %q, got %v", sev, verr.Errors)
		}
	}
}

func TestValidateCollectsAllDefects(t *testing.T) {
	// Three records, each defective in its own way; everything is reported
	// in one pass.
	verr := mustFail(t, `{"findings":[
		{"severity":"low","message":"m"},
		{"rule_id":"R2","severity":"urgent","message":"m"},
		{"rule_id":"R3","severity":"high","message":"m","line":-4}
	]}`)

	if len(verr.Errors) != 3 {
		t.Fatalf("expected 3 defects, got %d: %v", len(verr.Errors), verr.Errors)
	}
	if !hasDefect(verr, 0, "rule_id") || !hasDefect(verr, 1, "severity") || !hasDefect(verr, 2, "line") {
		t.Errorf("defects misattributed: %v", verr.Errors)
	}
}

func TestValidateTypeChecks(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"rule_id number", `{"rule_id":7,"severity":"low","message":"m"}`, "rule_id"},
		{"rule_id empty", `{"rule_id":"","severity":"low","message":"m"}`, "rule_id"},
		{"message empty", `{"rule_id":"R","severity":"low","message":""}`, "message"},
		{"severity number", `{"rule_id":"R","severity":2,"message":"m"}`, "severity"},
		{"line string", `{"rule_id":"R","severity":"low","message":"m","line":"12"}`, "line"},
		{"line fraction", `{"rule_id":"R","severity":"low","message":"m","line":1.5}`, "line"},
		{"snippet number", `{"rule_id":"R","severity":"low","message":"m","snippet":9}`, "snippet"},
		{"rule_id null", `{"rule_id":null,"severity":"low","message":"m"}`, "rule_id"},
	}
	for _, tc := range cases {
		verr := mustFail(t, `{"findings":[`+tc.body+`]}`)
		if !hasDefect(verr, 0, tc.field) {
			t.Errorf("%s: expected defect on %s, got %v", tc.name, tc.field, verr.Errors)
		}
	}
}

func TestValidateNullOptionalMeansAbsent(t *testing.T) {
	findings, err := Validate([]byte(`{"findings":[{"rule_id":"R","severity":"low","message":"m","line":null,"snippet":null}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if findings[0].Line != nil || findings[0].Snippet != nil {
		t.Errorf("expected null optionals treated as absent, got %+v", findings[0])
	}
}

func TestValidatePreservesUnrecognizedFields(t *testing.T) {
	findings, err := Validate([]byte(`{"findings":[{"rule_id":"R","severity":"low","message":"m","confidence":0.9,"fix":{"patch":"x"}}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	extra := findings[0].Extra
	if len(extra) != 2 {
		t.Fatalf("expected 2 preserved fields, got %d", len(extra))
	}
	if extra[0].Name != "confidence" || string(extra[0].Value) != "0.9" {
		t.Errorf("confidence not preserved verbatim: %s=%s", extra[0].Name, extra[0].Value)
	}
	if extra[1].Name != "fix" || string(extra[1].Value) != `{"patch":"x"}` {
		t.Errorf("fix not preserved verbatim: %s=%s", extra[1].Name, extra[1].Value)
	}
}

func TestValidateEnvelopeDefects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not an object", `[1,2,3]`},
		{"findings missing", `{"other":1}`},
		{"findings null", `{"findings":null}`},
		{"findings not array", `{"findings":{"a":1}}`},
		{"record not object", `{"findings":["text"]}`},
	}
	for _, tc := range cases {
		verr := mustFail(t, tc.body)
		if len(verr.Errors) == 0 {
			t.Errorf("%s: expected defects", tc.name)
		}
	}
}

func TestValidateOrderIsPreserved(t *testing.T) {
	findings, err := Validate([]byte(`{"findings":[
		{"rule_id":"A","severity":"low","message":"1"},
		{"rule_id":"B","severity":"medium","message":"2"},
		{"rule_id":"C","severity":"high","message":"3"}
	]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"A", "B", "C"} {
		if findings[i].RuleID != want {
			t.Errorf("expected finding %d to be %s, got %s", i, want, findings[i].RuleID)
		}
	}
}
