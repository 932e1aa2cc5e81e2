package renderer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteText(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "cover.txt")
	testContent := "Dear Hiring Manager,\n\nI build systems."

	err := WriteText(testContent, testFile)
	if err != nil {
		t.Fatalf("Failed to write text: %v", err)
	}

	// Verify content, with trailing newline added.
	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}

	if string(data) != testContent+"\n" {
		t.Errorf("Expected content '%s', got '%s'", testContent+"\n", string(data))
	}
}

func TestWriteTextCreatesDir(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "dir", "cover.txt")

	err := WriteText("test", nestedPath)
	if err != nil {
		t.Fatalf("Failed to write text: %v", err)
	}

	// Verify file exists.
	_, err = os.Stat(nestedPath)
	if os.IsNotExist(err) {
		t.Error("Text file was not created in nested directory")
	}
}
