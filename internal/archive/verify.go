package archive

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ContentCheck is the result of sniffing a submission source file.
type ContentCheck struct {
	MIME    string `json:"mime,omitempty"`
	Matches bool   `json:"matches"`
	Err     error  `json:"-"`
}

// VerifyContent sniffs the source file and reports whether its content
// agrees with the type derived from its extension. Sources of type other
// always match.
func (s Submission) VerifyContent() ContentCheck {
	detected, err := mimetype.DetectFile(s.SourcePath)
	if err != nil {
		return ContentCheck{Err: fmt.Errorf("detect content type: %w", err)}
	}
	return ContentCheck{MIME: detected.String(), Matches: contentMatches(s.kind, detected)}
}

func contentMatches(kind SubmissionType, detected *mimetype.MIME) bool {
	switch kind {
	case TypePDF:
		return detected.Is("application/pdf")
	case TypeImage:
		return hasTopLevel(detected, "image")
	case TypeVideo:
		// Ogg containers sniff as application/ogg or audio/ogg.
		return hasTopLevel(detected, "video") || detected.Is("application/ogg") || detected.Is("audio/ogg")
	default:
		return true
	}
}

func hasTopLevel(detected *mimetype.MIME, top string) bool {
	for m := detected; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), top+"/") {
			return true
		}
	}
	return false
}
