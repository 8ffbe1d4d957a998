package ctparse

import (
	"io"
	"text/template"

	"github.com/pkg/errors"
)

var (
	resultsSummaryMarkdown = template.Must(template.New("resultsSummaryMarkdown").Parse(
		`## Commute Results
Shared axis: {{printf "%.2f" .YMin}} - {{printf "%.2f" .YMax}} minutes

`,
	))

	locationMarkdown = template.Must(template.New("locationMarkdown").Parse(
		`### {{.Name}}
{{range .Periods -}}
#### {{.Period}}
| Time | Samples | Mean | Std Dev | Recent |
| --- | --- | --- | --- | --- |
{{range .Points -}}
| {{.Clock}} | {{.Samples}} | {{printf "%.2f" .Mean}}min | {{printf "%.2f" .StdDev}}min | {{printf "%.2f" .Recent}}min |
{{end}}
{{else -}}
No weekday samples

{{end -}}
`,
	))
)

func dumpResultsMarkdown(results *Results, output io.Writer) error {
	if err := resultsSummaryMarkdown.Execute(output, results); err != nil {
		return errors.Wrap(err, "error executing summary template")
	}

	for _, location := range results.Locations {
		if err := locationMarkdown.Execute(output, location); err != nil {
			return errors.Wrap(err, "error executing location template")
		}
	}

	return nil
}
