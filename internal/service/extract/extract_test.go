package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		path    string
		want    Extractor
		wantErr bool
	}{
		{path: "doc.pdf", want: PDF{}},
		{path: "DOC.PDF", want: PDF{}},
		{path: "notes.txt", want: Plain{}},
		{path: "readme.md", want: Plain{}},
		{path: "image.png", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ForFile(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ForFile(%q) err = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForFile(%q) unexpected error: %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ForFile(%q) = %T, want %T", tt.path, got, tt.want)
		}
	}
}

func TestPlainExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	const content = "First sentence. Second sentence.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Plain{}.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != content {
		t.Errorf("Extract = %q, want %q", got, content)
	}
}

func TestPlainExtractMissingFile(t *testing.T) {
	if _, err := (Plain{}).Extract(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
