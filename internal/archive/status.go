package archive

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Status is the publication readiness of a course or assignment.
type Status int

const (
	StatusComplete Status = iota
	StatusPartial
	StatusIncomplete
	StatusError
)

var statusNames = [...]string{
	StatusComplete:   "complete",
	StatusPartial:    "partial",
	StatusIncomplete: "incomplete",
	StatusError:      "error",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus parses the lower-case status name.
func ParseStatus(value string) (Status, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for i, name := range statusNames {
		if name == value {
			return Status(i), nil
		}
	}
	return StatusError, fmt.Errorf("unknown status %q", value)
}

// Verdict is a status with the reason the waterfall stopped.
type Verdict struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

func verdict(status Status, reason string) Verdict {
	return Verdict{Status: status, Reason: reason}
}

// Evaluation is the normalized grade of a submission.
type Evaluation int

const (
	EvaluationNone Evaluation = iota
	EvaluationHighPass
	EvaluationLowPass
)

func (e Evaluation) String() string {
	switch e {
	case EvaluationHighPass:
		return "high_pass"
	case EvaluationLowPass:
		return "low_pass"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Evaluation) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText accepts the names printed by String.
func (e *Evaluation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "high_pass":
		*e = EvaluationHighPass
	case "low_pass":
		*e = EvaluationLowPass
	case "none":
		*e = EvaluationNone
	default:
		return fmt.Errorf("unknown evaluation %q", text)
	}
	return nil
}

// NormalizeEvaluation maps free evaluation text onto an Evaluation. Only
// "high pass" and "low pass" are recognized, ignoring case.
func NormalizeEvaluation(text string) Evaluation {
	folded := cases.Fold().String(text)
	switch folded {
	case "high pass":
		return EvaluationHighPass
	case "low pass":
		return EvaluationLowPass
	default:
		return EvaluationNone
	}
}

// SubmissionType is derived from the source file extension.
type SubmissionType int

const (
	TypeOther SubmissionType = iota
	TypeImage
	TypePDF
	TypeVideo
)

func (t SubmissionType) String() string {
	switch t {
	case TypeImage:
		return "image"
	case TypePDF:
		return "pdf"
	case TypeVideo:
		return "video"
	default:
		return "other"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t SubmissionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SubmissionType) UnmarshalText(text []byte) error {
	parsed, err := ParseSubmissionType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseSubmissionType parses a type name as printed by String.
func ParseSubmissionType(value string) (SubmissionType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "image":
		return TypeImage, nil
	case "pdf":
		return TypePDF, nil
	case "video":
		return TypeVideo, nil
	case "other":
		return TypeOther, nil
	default:
		return TypeOther, fmt.Errorf("unknown submission type %q", value)
	}
}
