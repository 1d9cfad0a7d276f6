package publish

import (
	"github.com/Nyeloz/VibeGuard/pkg/contract"
)

// Annotation level vocabulary of the code-review host.
const (
	LevelNotice  = "notice"
	LevelWarning = "warning"
	LevelFailure = "failure"
)

// Annotation is one finding mapped to the host's annotation shape. Line and
// Snippet stay optional; absence means the host gets no positional or detail
// hint for this finding.
type Annotation struct {
	RuleID  string
	Level   string
	Message string
	Line    *int
	Snippet *string
}

// LevelFor maps a contract severity onto the host's annotation-level
// vocabulary.
func LevelFor(s contract.Severity) string {
	switch s {
	case contract.SeverityLow:
		return LevelNotice
	case contract.SeverityMedium:
		return LevelWarning
	default:
		return LevelFailure
	}
}

func toAnnotations(findings []contract.Finding) []Annotation {
	anns := make([]Annotation, len(findings))
	for i, f := range findings {
		anns[i] = Annotation{
			RuleID:  f.RuleID,
			Level:   LevelFor(f.Severity),
			Message: f.Message,
			Line:    f.Line,
			Snippet: f.Snippet,
		}
	}
	return anns
}
