package renderer

import (
	"github.com/JTMarcu/project-alanna/pkg/resume"
	"go.uber.org/zap"
)

// Cursor is the drawing position threaded through every layout step.
type Cursor struct {
	// Y is the baseline distance from the top edge of the page.
	Y    float64
	Page int
}

// layout holds what a single pass needs besides the cursor.
type layout struct {
	canvas Canvas
	logger *zap.Logger
	result Result
}

// run paints doc and returns the final cursor.
func (l *layout) run(doc resume.Document) (cur Cursor) {
	cur = l.newPage(cur)

	// Header block
	cur = l.plain(cur, HeaderFont, doc.Name)
	cur = l.step(cur, LinePitch)

	cur = l.plain(cur, BodyFont, doc.ContactLine())
	cur = l.step(cur, LinePitch)

	cur = l.plain(cur, AnnotationFont, doc.TargetRoles)
	cur = l.step(cur, RolesAdvance)

	for _, block := range doc.Blocks {
		cur = l.section(cur, block)
	}

	// Portfolio sits at the bottom of whichever page we ended on
	if doc.Portfolio != "" {
		cur.Y = PortfolioY
		cur = l.plain(cur, AnnotationFont, "Portfolio: "+doc.Portfolio)
	}

	return cur
}

// section draws a titled, ruled block of rows.
func (l *layout) section(cur Cursor, block resume.Block) (next Cursor) {
	l.logger.Debug("section",
		zap.String("section", string(block.Section)),
		zap.Int("rows", len(block.Rows)),
		zap.Int("page", cur.Page),
		zap.Float64("y", cur.Y),
	)

	next = l.plain(cur, SubheaderFont, block.Section.Title())
	next = advance(next, RuleOffset)
	l.canvas.Line(LeftMargin, next.Y, PageWidth-RightMargin, next.Y)
	next = l.step(next, TitleAdvance)

	for i, row := range block.Rows {
		next = l.rich(next, row.Content, block.Section, i)
		next = l.step(next, RowGap)
	}

	next = l.step(next, SectionGap)
	return next
}

// plain draws a single unwrapped line at the left margin without moving the cursor.
func (l *layout) plain(cur Cursor, font Font, text string) (next Cursor) {
	l.canvas.SetFont(font)
	if text != "" {
		l.canvas.Text(LeftMargin, cur.Y, text)
		l.result.Lines++
	}
	next = cur
	return next
}

// rich wraps text to the text width and draws each line with inline bold runs.
func (l *layout) rich(cur Cursor, text string, section resume.Section, row int) (next Cursor) {
	next = cur

	l.canvas.SetFont(BodyFont)
	lines := wrapText(text, TextWidth, l.canvas.StringWidth)

	malformed := false
	for _, line := range lines {
		if !Balanced(line) {
			malformed = true
		}

		x := LeftMargin
		for segment := range Segments(line) {
			font := BodyFont
			if segment.Bold {
				font = BodyBoldFont
			}
			l.canvas.SetFont(font)
			l.canvas.Text(x, next.Y, segment.Text)
			x += l.canvas.StringWidth(segment.Text)
		}
		l.result.Lines++

		next = l.step(next, LinePitch)
	}

	if malformed {
		l.result.MalformedRows++
		l.logger.Warn("unbalanced bold markup",
			zap.String("section", string(section)),
			zap.Int("row", row),
		)
	}

	return next
}

// step advances the cursor and starts a new page when it runs out of room.
func (l *layout) step(cur Cursor, dy float64) (next Cursor) {
	next = l.checkPageBreak(advance(cur, dy))
	return next
}

// checkPageBreak starts a new page when less than BreakThreshold remains below the cursor.
func (l *layout) checkPageBreak(cur Cursor) (next Cursor) {
	next = cur
	if PageHeight-cur.Y < BreakThreshold {
		l.logger.Debug("page break", zap.Int("page", cur.Page+1))
		next = l.newPage(cur)
	}
	return next
}

// newPage adds a page, resets the font and puts the cursor at the top margin.
func (l *layout) newPage(cur Cursor) (next Cursor) {
	l.canvas.AddPage()
	l.canvas.SetFont(BodyFont)
	next = Cursor{Y: TopMargin, Page: cur.Page + 1}
	l.result.Pages = next.Page
	return next
}

func advance(cur Cursor, dy float64) (next Cursor) {
	next = Cursor{Y: cur.Y + dy, Page: cur.Page}
	return next
}
