package renderer

import (
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

// Canvas is the paged drawing surface the layout paints on.
type Canvas interface {
	AddPage()
	SetFont(font Font)
	Text(x, y float64, text string)
	Line(x1, y1, x2, y2 float64)
	// StringWidth measures text in the current font.
	StringWidth(text string) float64
}

// pdfCanvas draws onto a gofpdf document using the core fonts.
type pdfCanvas struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
}

func newPDFCanvas() (c *pdfCanvas) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(LeftMargin, TopMargin, RightMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetLineWidth(RuleWidth)
	pdf.SetCreator("alanna", true)

	c = &pdfCanvas{
		pdf: pdf,
		// Core fonts are cp1252 encoded
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	return c
}

func (c *pdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *pdfCanvas) SetFont(font Font) {
	c.pdf.SetFont(font.Family, font.Style, font.Size)
}

func (c *pdfCanvas) Text(x, y float64, text string) {
	c.pdf.Text(x, y, c.translate(text))
}

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *pdfCanvas) StringWidth(text string) (width float64) {
	width = c.pdf.GetStringWidth(c.translate(text))
	return width
}

// setInfo fills the document metadata.
func (c *pdfCanvas) setInfo(title, author string) {
	c.pdf.SetTitle(title, true)
	c.pdf.SetAuthor(author, true)
}

// output writes the finished document. The canvas is closed afterwards.
func (c *pdfCanvas) output(w io.Writer) (err error) {
	if c.pdf.Err() {
		err = errors.Wrap(c.pdf.Error(), "failed to lay out document")
		return err
	}

	err = c.pdf.Output(w)
	if err != nil {
		err = errors.Wrap(err, "failed to write document")
		return err
	}

	return err
}
