// Package narrative turns an inflation report into a plain language
// explanation, written by a generative language model.
//
// The prompt is a pure function of the report. The model call is a best
// effort: its failure only makes the insight unavailable.
package narrative

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/inflation"
)

//go:embed prompt.tmpl
var templates embed.FS

var promptTemplate = template.Must(
	template.New("prompt.tmpl").
		Funcs(template.FuncMap{"lower": strings.ToLower}).
		ParseFS(templates, "prompt.tmpl"))

// DefaultRegion is the region the published CPI series covers.
const DefaultRegion = "India"

// PromptData holds the facts stated in the prompt.
type PromptData struct {
	Region         string
	Category       string
	StartYear      int
	EndYear        int
	StartValue     float64
	EndValue       float64
	Amount         inflation.Money
	AdjustedAmount inflation.Money
	PercentChange  inflation.Percent
	Trend          []inflation.Point
}

// NewPromptData extracts the prompt facts from a report.
func NewPromptData(r *inflation.Report, region string) PromptData {
	if region == "" {
		region = DefaultRegion
	}
	return PromptData{
		Region:         region,
		Category:       r.Result.Category,
		StartYear:      r.Result.StartYear,
		EndYear:        r.Result.EndYear,
		StartValue:     r.Result.StartValue,
		EndValue:       r.Result.EndValue,
		Amount:         r.Result.Amount,
		AdjustedAmount: r.Result.AdjustedAmount,
		PercentChange:  r.Result.PercentChange,
		Trend:          r.Trend,
	}
}

// Movement describes how the price level moved, to complete "why <category> ...".
func (d PromptData) Movement() string {
	switch d.PercentChange.Direction() {
	case "increased":
		return "became more expensive"
	case "decreased":
		return "became cheaper"
	default:
		return "kept a stable price"
	}
}

// BuildPrompt renders the prompt sent to the narrative service. The same
// data always produces the same prompt.
func BuildPrompt(d PromptData) (string, error) {
	var b strings.Builder
	if err := promptTemplate.Execute(&b, d); err != nil {
		return "", fmt.Errorf("error executing prompt template: %w", err)
	}
	return b.String(), nil
}
