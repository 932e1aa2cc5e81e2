package resume

import (
	"strings"
)

// Build validates rows and groups them into a Document.
//
// The name and target_roles rows must be present. Rows in sections outside the canonical
// order are dropped; the remaining rows keep their input order within each section.
func Build(rows []ContentRow) (doc Document, err error) {
	var nameFound, rolesFound bool

	grouped := make(map[Section][]ContentRow)
	for _, row := range rows {
		if row.Section != SectionPersonalInfo {
			if row.Section.Known() {
				grouped[row.Section] = append(grouped[row.Section], row)
			}
			continue
		}

		// Personal info
		switch row.Subsection {
		case SubsectionName:
			if !nameFound && strings.TrimSpace(row.Content) != "" {
				doc.Name = strings.TrimSpace(row.Content)
				nameFound = true
			}
		case SubsectionTargetRoles:
			if !rolesFound && strings.TrimSpace(row.Content) != "" {
				doc.TargetRoles = strings.TrimSpace(row.Content)
				rolesFound = true
			}
		case SubsectionPortfolio:
			if doc.Portfolio == "" {
				doc.Portfolio = strings.TrimSpace(row.Content)
			}
		default:
			if value := strings.TrimSpace(row.Content); value != "" {
				doc.Contact = append(doc.Contact, value)
			}
		}
	}

	if !nameFound {
		err = &MissingRequiredFieldError{Field: SubsectionName}
		return doc, err
	}

	if !rolesFound {
		err = &MissingRequiredFieldError{Field: SubsectionTargetRoles}
		return doc, err
	}

	for _, section := range CanonicalOrder {
		if section == SectionPersonalInfo || len(grouped[section]) == 0 {
			continue
		}
		doc.Blocks = append(doc.Blocks, Block{Section: section, Rows: grouped[section]})
	}

	return doc, err
}
