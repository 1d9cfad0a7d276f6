package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExtraField is one unrecognized optional field carried verbatim through
// the engine. Value holds the raw JSON exactly as received.
type ExtraField struct {
	Name  string
	Value json.RawMessage
}

// Finding is one normalized static-analysis result. It is immutable once
// constructed by validation. Unrecognized optional fields live in Extra in
// their original order and are re-emitted unchanged when the Finding is
// serialized, so an engine built against an older contract version passes
// newer fields through losslessly.
type Finding struct {
	RuleID   string
	Severity Severity
	Message  string
	Line     *int
	Snippet  *string
	Extra    []ExtraField
}

// ScanRequest is the inbound envelope: an ordered sequence of findings.
// Order is significant and preserved through batching and publication.
type ScanRequest struct {
	Findings []Finding `json:"findings"`
}

// RawField is one key/value pair of a decoded JSON object with the value
// left as raw bytes.
type RawField struct {
	Name  string
	Value json.RawMessage
}

// RawRecord is a JSON object decoded into its fields in document order.
// Plain map decoding loses ordering, which would break the verbatim
// pass-through guarantee for unrecognized fields.
type RawRecord []RawField

func (r *RawRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %s", tokenName(tok))
	}

	var fields []RawField
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fields = append(fields, RawField{Name: key, Value: value})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}

	*r = fields
	return nil
}

func tokenName(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return v.String()
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return "value"
}

// MarshalJSON emits the finding in canonical contract order: the frozen
// required fields, the known optional fields when set, then any preserved
// unrecognized fields in their original order.
func (f Finding) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(name string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(val)
		return nil
	}

	if err := writeField(FieldRuleID, f.RuleID); err != nil {
		return nil, err
	}
	if err := writeField(FieldSeverity, f.Severity); err != nil {
		return nil, err
	}
	if err := writeField(FieldMessage, f.Message); err != nil {
		return nil, err
	}
	if f.Line != nil {
		if err := writeField(FieldLine, *f.Line); err != nil {
			return nil, err
		}
	}
	if f.Snippet != nil {
		if err := writeField(FieldSnippet, *f.Snippet); err != nil {
			return nil, err
		}
	}
	for _, ef := range f.Extra {
		if err := writeField(ef.Name, ef.Value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a finding leniently: known fields are bound when
// their types match and everything else lands in Extra. Strict checking
// with full defect reporting is the validator's job.
func (f *Finding) UnmarshalJSON(data []byte) error {
	var rec RawRecord
	if err := rec.UnmarshalJSON(data); err != nil {
		return err
	}

	out := Finding{}
	for _, field := range rec {
		switch field.Name {
		case FieldRuleID:
			if err := json.Unmarshal(field.Value, &out.RuleID); err != nil {
				return fmt.Errorf("%s: %w", FieldRuleID, err)
			}
		case FieldSeverity:
			if err := json.Unmarshal(field.Value, &out.Severity); err != nil {
				return fmt.Errorf("%s: %w", FieldSeverity, err)
			}
		case FieldMessage:
			if err := json.Unmarshal(field.Value, &out.Message); err != nil {
				return fmt.Errorf("%s: %w", FieldMessage, err)
			}
		case FieldLine:
			var line int
			if err := json.Unmarshal(field.Value, &line); err != nil {
				return fmt.Errorf("%s: %w", FieldLine, err)
			}
			out.Line = &line
		case FieldSnippet:
			var snippet string
			if err := json.Unmarshal(field.Value, &snippet); err != nil {
				return fmt.Errorf("%s: %w", FieldSnippet, err)
			}
			out.Snippet = &snippet
		default:
			out.Extra = append(out.Extra, ExtraField(field))
		}
	}

	*f = out
	return nil
}
