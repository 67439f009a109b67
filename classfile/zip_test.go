package classfile

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTestZip(t *testing.T, entries map[string][]byte) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "classpath.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write zip file: %v", err)
	}
	return path
}

func TestLoadZipSkipsNonClassEntriesAndReportsBadOnes(t *testing.T) {
	path := writeTestZip(t, map[string][]byte{
		"META-INF/MANIFEST.MF": []byte("Manifest-Version: 1.0\n"),
		"Broken.class":         []byte{0xDE, 0xAD, 0xBE, 0xEF}, // bad magic
	})

	classes, err := LoadZip(path)
	if len(classes) != 0 {
		t.Fatalf("expected no successfully parsed classes, got %d", len(classes))
	}
	if err == nil {
		t.Fatalf("expected an aggregated error for the malformed entry")
	}
}

func TestLoadZipIgnoresDirectoryEntries(t *testing.T) {
	path := writeTestZip(t, map[string][]byte{
		"com/example/": nil,
	})
	classes, err := LoadZip(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(classes) != 0 {
		t.Fatalf("expected zero classes from a directory-only zip, got %d", len(classes))
	}
}
