package llm

import (
	"fmt"
	"strings"

	"github.com/JTMarcu/project-alanna/pkg/resume"
)

// TableMarker is the header line that opens the tailored table in a reply.
const TableMarker = "section,subsection,content"

// LetterMarker opens the cover letter in a reply.
const LetterMarker = "Dear "

// BuildTailorPrompt asks for a trimmed content table followed by a short cover letter.
func BuildTailorPrompt(jd, masterCSV string) (prompt string) {
	sections := make([]string, 0, len(resume.CanonicalOrder))
	for _, section := range resume.CanonicalOrder {
		sections = append(sections, string(section))
	}

	prompt = fmt.Sprintf(`You are a specialized AI that creates concise, ATS-friendly resumes for a job applicant.

IMPORTANT:
- Always include a personal_info section with subsections: name, target_roles, plus any relevant contact details.
- Only use facts present in the resume data. Do not invent employers, dates, titles or metrics.
- Use only these sections, in this order: %s.
- Mark emphasis with **double asterisks**. Do not use any other markup.

=== JOB DESCRIPTION ===
%s

=== FULL RESUME DATA (CSV) ===
%s

YOUR TASK:
1) Produce a short CSV with columns (%s), focusing on the most relevant details.
   Quote any field that contains a comma.
2) Follow that CSV with a concise cover letter (<=200 words), beginning with "%s".

Output format must be:
%s
... (CSV lines) ...
%s...
... (cover letter) ...
`, strings.Join(sections, ", "), jd, masterCSV, TableMarker, LetterMarker, TableMarker, LetterMarker)

	return prompt
}
