package recommendation

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/gradetrack-lambda/internal/aggregate"
)

const systemPrompt = `
You are a study coach inside a grade tracking app. You receive a student's current standing in one
course and suggest where to spend study time next.

Rules:
1. Base every suggestion on the numbers provided; never invent grades or assessments.
2. Prioritise categories with high weight and low average, then overdue and upcoming assessments.
3. Give between 2 and 5 items. Each item has:
   - "title": short imperative sentence
   - "detail": one or two sentences explaining what to do and why, citing the numbers
   - "priority": "HIGH", "MEDIUM" or "LOW"
4. "summary" is one sentence about the overall situation.

Answer with pure, valid JSON and nothing else:

{
  "summary": "<one sentence>",
  "items": [
    {"title": "...", "detail": "...", "priority": "HIGH"}
  ]
}
`

func BuildUserPrompt(d *aggregate.Dashboard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Course: %s", d.Course.Name)
	if d.Course.Code != "" {
		fmt.Fprintf(&b, " (%s)", d.Course.Code)
	}
	b.WriteString("\n")

	if d.Aggregate.Percentage != nil {
		fmt.Fprintf(&b, "Current grade: %.2f%% (%s)\n", *d.Aggregate.Percentage, d.Aggregate.Letter)
	} else {
		b.WriteString("Current grade: no graded work yet\n")
	}

	b.WriteString("Categories:\n")
	for _, c := range d.Aggregate.Categories {
		avg := "not graded"
		if c.Average != nil {
			avg = fmt.Sprintf("%.2f%%", *c.Average)
		}
		fmt.Fprintf(&b, "- %s: weight %.2f%%, average %s, %d graded\n", c.Name, c.Weight, avg, c.GradedAssessments)
	}

	fmt.Fprintf(&b, "Assessments: %d total, %d completed, %d upcoming, %d overdue\n",
		d.Stats.Total, d.Stats.Completed, d.Stats.Upcoming, d.Stats.Overdue)

	for _, a := range d.Overdue {
		fmt.Fprintf(&b, "Overdue: %s (due %s, %.0f points)\n", a.Name, a.DueDate, a.MaxPoints)
	}
	for _, a := range d.Upcoming {
		fmt.Fprintf(&b, "Upcoming: %s (due %s, %.0f points)\n", a.Name, a.DueDate, a.MaxPoints)
	}

	return b.String()
}
