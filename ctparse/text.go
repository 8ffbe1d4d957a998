package ctparse

import (
	"fmt"
	"io"
	"text/template"

	"github.com/pkg/errors"
)

const text = `Location: {{.Name}}
{{range .Periods -}}
Period: {{.Period}}
{{range .Points -}}
{{.Clock}}  samples: {{printf "%-4d" .Samples}} mean: {{printf "%6.2f" .Mean}}min  std: {{printf "%5.2f" .StdDev}}min  recent: {{printf "%6.2f" .Recent}}min
{{end -}}
{{else -}}
No weekday samples
{{end}}
`

var locationTextTemplate = template.Must(template.New("location").Parse(text))

func dumpResultsText(results *Results, output io.Writer) error {
	fmt.Fprintln(output, "--------- Commute Report ------------")

	for _, location := range results.Locations {
		if err := locationTextTemplate.Execute(output, location); err != nil {
			return errors.Wrap(err, "error executing template")
		}
	}

	fmt.Fprintf(output, "Axis: %.2f - %.2f min", results.YMin, results.YMax)
	fmt.Fprintln(output, "")

	return nil
}
