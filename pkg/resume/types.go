package resume

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section identifies a résumé section.
type Section string

// Known sections.
const (
	SectionPersonalInfo           Section = "personal_info"
	SectionProfessionalSummary    Section = "professional_summary"
	SectionTechnicalSkills        Section = "technical_skills"
	SectionProfessionalExperience Section = "professional_experience"
	SectionCertifications         Section = "certifications"
	SectionProjects               Section = "projects"
)

// Subsections of personal_info with special meaning.
const (
	SubsectionName        = "name"
	SubsectionTargetRoles = "target_roles"
	SubsectionPortfolio   = "portfolio"
)

// ContactSeparator joins the contact line fields.
const ContactSeparator = " | "

// CanonicalOrder is the order sections are rendered in.
//
//nolint:gochecknoglobals // Fixed rendering order
var CanonicalOrder = []Section{
	SectionPersonalInfo,
	SectionProfessionalSummary,
	SectionTechnicalSkills,
	SectionProfessionalExperience,
	SectionCertifications,
	SectionProjects,
}

// Title returns the display title, e.g. "Professional Summary".
func (s Section) Title() (title string) {
	title = cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
	return title
}

// Known reports whether the section is part of the canonical order.
func (s Section) Known() (known bool) {
	for _, section := range CanonicalOrder {
		if section == s {
			known = true
			return known
		}
	}
	return known
}

// ContentRow is one (section, subsection, content) record.
type ContentRow struct {
	Section    Section `json:"section"`
	Subsection string  `json:"subsection"`
	Content    string  `json:"content"`
}

// Block is a section together with its rows in input order.
type Block struct {
	Section Section
	Rows    []ContentRow
}

// Document is a validated table, grouped and ordered for rendering.
type Document struct {
	Name        string
	TargetRoles string
	Contact     []string
	Portfolio   string
	Blocks      []Block
}

// ContactLine joins the contact fields with the separator glyph.
func (d *Document) ContactLine() (line string) {
	line = strings.Join(d.Contact, ContactSeparator)
	return line
}
