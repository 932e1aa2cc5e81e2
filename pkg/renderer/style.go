package renderer

// Page geometry in points, US Letter. Y grows downward from the top edge.
const (
	PageWidth   = 612.0
	PageHeight  = 792.0
	LeftMargin  = 50.0
	RightMargin = 50.0
	TopMargin   = 50.0
	TextWidth   = PageWidth - LeftMargin - RightMargin

	LinePitch = 14.0

	// RolesAdvance follows the target roles line, ⌊1.25 × LinePitch⌋.
	RolesAdvance = 17.0
	// RuleOffset separates a section title from its rule.
	RuleOffset = 8.0
	// TitleAdvance follows a section rule, ⌊1.1 × LinePitch⌋.
	TitleAdvance = 15.0
	// RowGap follows every content row.
	RowGap = 3.0
	// SectionGap follows every section.
	SectionGap = 8.0

	// BreakThreshold is the minimum space below the cursor before a new page starts.
	BreakThreshold = 2 * LinePitch
	// PortfolioY is the baseline of the portfolio line on the last page.
	PortfolioY = PageHeight - 2*LinePitch

	// RuleWidth is the stroke width of section rules.
	RuleWidth = 1.0
)

// Font is a (family, style, size) triple. Style is "" for regular, "B" bold, "I" italic.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Logical text styles.
//
//nolint:gochecknoglobals // Fixed styles
var (
	HeaderFont     = Font{Family: "Helvetica", Style: "B", Size: 12}
	SubheaderFont  = Font{Family: "Helvetica", Style: "B", Size: 10}
	BodyFont       = Font{Family: "Helvetica", Style: "", Size: 8}
	BodyBoldFont   = Font{Family: "Helvetica", Style: "B", Size: 8}
	AnnotationFont = Font{Family: "Helvetica", Style: "I", Size: 8}
)
