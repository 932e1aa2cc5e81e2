package renderer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/JTMarcu/project-alanna/pkg/resume"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Result summarises a finished render.
type Result struct {
	Output        string
	Pages         int
	Lines         int
	MalformedRows int
}

// Renderer lays out content tables as PDF résumés.
type Renderer struct {
	logger *zap.Logger
}

// New creates a renderer. A nil logger discards log output.
func New(logger *zap.Logger) (r *Renderer) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r = &Renderer{logger: logger}
	return r
}

// Render lays out rows and writes the PDF to outputPath with a default renderer.
func Render(rows []resume.ContentRow, outputPath string) (result Result, err error) {
	result, err = New(nil).Render(rows, outputPath)
	return result, err
}

// RenderFile loads the table at inputPath and renders it to outputPath.
func (r *Renderer) RenderFile(inputPath, outputPath string) (result Result, err error) {
	var rows []resume.ContentRow
	rows, err = resume.Load(inputPath)
	if err != nil {
		return result, err
	}

	result, err = r.Render(rows, outputPath)
	return result, err
}

// Render validates rows, lays them out and writes the PDF to outputPath.
//
// Input errors are reported before anything is written. The file is written to a temporary
// name in the target directory and renamed into place, so a failed render never leaves a
// partial document at outputPath.
func (r *Renderer) Render(rows []resume.ContentRow, outputPath string) (result Result, err error) {
	logger := r.logger.With(zap.String("run_id", uuid.NewString()), zap.String("output", outputPath))
	start := time.Now()

	normalized := make([]resume.ContentRow, len(rows))
	for i, row := range rows {
		row.Content = resume.NormalizeContent(row.Content)
		normalized[i] = row
	}

	var doc resume.Document
	doc, err = resume.Build(normalized)
	if err != nil {
		return result, err
	}

	canvas := newPDFCanvas()
	canvas.setInfo(doc.Name+" - Resume", doc.Name)

	result = r.layout(doc, canvas, logger)
	result.Output = outputPath

	err = writeAtomic(outputPath, canvas)
	if err != nil {
		return result, err
	}

	logger.Info("rendered resume",
		zap.Int("pages", result.Pages),
		zap.Int("lines", result.Lines),
		zap.Int("malformed_rows", result.MalformedRows),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, err
}

// Layout paints doc onto canvas and reports what was drawn.
func (r *Renderer) Layout(doc resume.Document, canvas Canvas) (result Result) {
	result = r.layout(doc, canvas, r.logger)
	return result
}

func (r *Renderer) layout(doc resume.Document, canvas Canvas, logger *zap.Logger) (result Result) {
	l := &layout{canvas: canvas, logger: logger}
	l.run(doc)
	result = l.result
	return result
}

// writeAtomic writes the canvas to a temporary file beside outputPath and renames it.
func writeAtomic(outputPath string, canvas *pdfCanvas) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	var tmp *os.File
	tmp, err = os.CreateTemp(outputDir, "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		err = errors.Wrapf(err, "failed to create temporary file in %s", outputDir)
		return err
	}

	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	err = canvas.output(tmp)
	if err != nil {
		_ = tmp.Close()
		return err
	}

	err = tmp.Close()
	if err != nil {
		err = errors.Wrapf(err, "failed to close temporary file: %s", tmpPath)
		return err
	}

	err = os.Chmod(tmpPath, 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to set permissions on %s", tmpPath)
		return err
	}

	err = os.Rename(tmpPath, outputPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to move document into place: %s", outputPath)
		return err
	}

	return err
}
