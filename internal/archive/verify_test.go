package archive_test

import (
	"os"
	"path/filepath"
	"testing"

	"daspub/internal/archive"
	"daspub/internal/testsupport"
)

// Smallest valid PNG signature plus IHDR chunk header.
var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00,
}

func TestVerifyContent(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Assignment("P", "101-Studio", "Poster",
		testsupport.SubmissionRow("2024", "Ada", "ada.png", "S-1", ""),
		testsupport.SubmissionRow("2024", "Bob", "bob.jpg", "S-2", ""),
		testsupport.SubmissionRow("2024", "Cy", "cy.pdf", "S-3", ""),
		testsupport.SubmissionRow("2024", "Di", "di.doc", "S-4", ""),
	)
	if err := os.WriteFile(filepath.Join(dir, "ada.png"), pngHeader, 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	testsupport.WriteText(t, filepath.Join(dir, "bob.jpg"), "plain text, not an image\n")
	testsupport.WriteText(t, filepath.Join(dir, "cy.pdf"), "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

	subs := archive.NewAssignment(newLayout(), dir).Submissions()
	if len(subs) != 4 {
		t.Fatalf("expected 4 submissions, got %d", len(subs))
	}

	ada := subs[0].VerifyContent()
	if ada.Err != nil || !ada.Matches || ada.MIME != "image/png" {
		t.Fatalf("png: %+v", ada)
	}
	bob := subs[1].VerifyContent()
	if bob.Err != nil || bob.Matches {
		t.Fatalf("text named .jpg should not match: %+v", bob)
	}
	cy := subs[2].VerifyContent()
	if cy.Err != nil || !cy.Matches {
		t.Fatalf("pdf: %+v", cy)
	}
	if di := subs[3].VerifyContent(); di.Err != nil || !di.Matches {
		t.Fatalf("other types always match: %+v", di)
	}

	if err := os.Remove(filepath.Join(dir, "ada.png")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if missing := subs[0].VerifyContent(); missing.Err == nil {
		t.Fatal("expected error for missing source")
	}
}
