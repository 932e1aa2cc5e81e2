package renderer

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/JTMarcu/project-alanna/pkg/resume"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const minPropertyTests = 100

func propertyLayout(rows []resume.ContentRow) (canvas *recordingCanvas, result Result, ok bool) {
	doc, err := resume.Build(rows)
	if err != nil {
		return canvas, result, ok
	}
	canvas = &recordingCanvas{}
	result = New(nil).Layout(doc, canvas)
	ok = true
	return canvas, result, ok
}

func TestLayoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = minPropertyTests
	properties := gopter.NewProperties(parameters)

	sections := resume.CanonicalOrder[1:]

	// Property: section titles always follow the canonical order and only present sections appear
	properties.Property("canonical section order", prop.ForAll(
		func(picks []int) bool {
			rows := []resume.ContentRow{}
			present := map[resume.Section]bool{}
			for i, pick := range picks {
				section := sections[pick]
				present[section] = true
				rows = append(rows, resume.ContentRow{Section: section, Content: fmt.Sprintf("row %d", i)})
			}
			rows = append(rows, requiredRows()...)

			canvas, _, ok := propertyLayout(rows)
			if !ok {
				return false
			}

			want := []string{}
			for _, section := range sections {
				if present[section] {
					want = append(want, section.Title())
				}
			}

			got := canvas.textsInFont(SubheaderFont)
			if len(got) == 0 && len(want) == 0 {
				return true
			}
			return reflect.DeepEqual(want, got)
		},
		gen.SliceOf(gen.IntRange(0, len(sections)-1)),
	))

	// Property: rows inside a section keep their input order
	properties.Property("stable row order", prop.ForAll(
		func(count int) bool {
			rows := requiredRows()
			want := []string{}
			for i := range count {
				content := fmt.Sprintf("entry-%03d", i)
				want = append(want, content)
				rows = append(rows, resume.ContentRow{Section: resume.SectionProjects, Content: content})
			}

			canvas, _, ok := propertyLayout(rows)
			if !ok {
				return false
			}

			got := canvas.textsInFont(BodyFont)
			if count == 0 {
				return len(got) == 0
			}
			return reflect.DeepEqual(want, got)
		},
		gen.IntRange(0, 150),
	))

	// Property: arbitrary markup never breaks layout and stays inside the printable area
	properties.Property("markup never fails", prop.ForAll(
		func(tokens []int) bool {
			vocabulary := []string{"**", "bold", " ", "plain", "\n", "*"}
			var builder strings.Builder
			for _, token := range tokens {
				builder.WriteString(vocabulary[token])
			}

			rows := append(requiredRows(), resume.ContentRow{Section: resume.SectionProfessionalSummary, Content: builder.String()})
			canvas, result, ok := propertyLayout(rows)
			if !ok || result.Pages < 1 {
				return false
			}

			for _, o := range canvas.texts() {
				if o.Y < TopMargin || o.Y > PortfolioY {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 5)),
	))

	// Property: laying out the same table twice draws the same thing
	properties.Property("idempotent layout", prop.ForAll(
		func(content string, repeat int) bool {
			rows := append(requiredRows(), resume.ContentRow{
				Section: resume.SectionProfessionalExperience,
				Content: strings.Repeat(content+" ", repeat),
			})

			first, firstResult, ok := propertyLayout(rows)
			if !ok {
				return false
			}
			second, secondResult, _ := propertyLayout(rows)

			return firstResult == secondResult && reflect.DeepEqual(first.ops, second.ops)
		},
		gen.AlphaString(),
		gen.IntRange(1, 300),
	))

	properties.TestingRun(t)
}
