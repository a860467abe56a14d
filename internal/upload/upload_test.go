package upload

import (
	"mime/multipart"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "drawing.pdf", "drawing.pdf"},
		{"spaces", "my drawing.pdf", "my_drawing.pdf"},
		{"special chars", "pan#el$(1).png", "pan_el__1_.png"},
		{"strips directories", "../../etc/passwd", "passwd"},
		{"strips windows directories", "..\\..\\boot.ini", "boot.ini"},
		{"keeps dash underscore dot", "a-b_c.d.dwg", "a-b_c.d.dwg"},
		{"empty becomes file", "", "file"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFilename(tc.input); got != tc.want {
				t.Fatalf("SanitizeFilename(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeFilenameCapsLength(t *testing.T) {
	long := strings.Repeat("a", 300) + ".pdf"
	got := SanitizeFilename(long)
	if len(got) > 255 {
		t.Fatalf("sanitized name is %d chars, want <= 255", len(got))
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("sanitized name %q lost its extension", got)
	}
}

func TestAllowedExtension(t *testing.T) {
	allowed := []string{"a.pdf", "b.JPG", "c.jpeg", "d.png", "e.DWG"}
	for _, name := range allowed {
		if !AllowedExtension(name) {
			t.Fatalf("expected %q to be allowed", name)
		}
	}
	denied := []string{"a.exe", "b.svg", "c", "d.pdf.sh"}
	for _, name := range denied {
		if AllowedExtension(name) {
			t.Fatalf("expected %q to be denied", name)
		}
	}
}

func TestValidateFiles(t *testing.T) {
	limits := Limits{MaxFileSize: 100, MaxFiles: 2}

	t.Run("accepts within limits", func(t *testing.T) {
		files := []*multipart.FileHeader{
			{Filename: "a.pdf", Size: 50},
			{Filename: "b.png", Size: 100},
		}
		if err := ValidateFiles(files, limits); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects too many files", func(t *testing.T) {
		files := []*multipart.FileHeader{
			{Filename: "a.pdf", Size: 1},
			{Filename: "b.pdf", Size: 1},
			{Filename: "c.pdf", Size: 1},
		}
		if err := ValidateFiles(files, limits); err == nil {
			t.Fatal("expected file count error")
		}
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		files := []*multipart.FileHeader{{Filename: "a.pdf", Size: 101}}
		if err := ValidateFiles(files, limits); err == nil {
			t.Fatal("expected size error")
		}
	})

	t.Run("rejects disallowed extension", func(t *testing.T) {
		files := []*multipart.FileHeader{{Filename: "a.exe", Size: 1}}
		if err := ValidateFiles(files, limits); err == nil {
			t.Fatal("expected extension error")
		}
	})
}
