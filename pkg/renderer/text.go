package renderer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteText writes a plain-text companion file such as a cover letter.
func WriteText(content, outputPath string) (err error) {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	if content != "" && content[len(content)-1] != '\n' {
		content += "\n"
	}

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write text file: %s", outputPath)
		return err
	}

	return err
}
