package renderer

import (
	"strings"

	"github.com/etnz/inflation"
	"github.com/etnz/inflation/narrative"
)

// Insight statuses. The zero value means the insight was not requested.
const (
	InsightDisabled    = ""
	InsightPending     = "pending"
	InsightReady       = "ready"
	InsightUnavailable = "unavailable"
)

// Dashboard is the view model of an analysis report.
type Dashboard struct {
	Name           string            `json:"name"`
	Source         string            `json:"source,omitempty"`
	Region         string            `json:"region"`
	Category       string            `json:"category"`
	StartYear      int               `json:"startYear"`
	EndYear        int               `json:"endYear"`
	StartValue     float64           `json:"startValue"`
	EndValue       float64           `json:"endValue"`
	Amount         inflation.Money   `json:"amount"`
	AdjustedAmount inflation.Money   `json:"adjustedAmount"`
	PercentChange  inflation.Percent `json:"percentChange"`
	Trend          []TrendRow        `json:"trend"`
	Chart          string            `json:"chart,omitempty"` // path of the chart image, if any.
	Insight        InsightBlock      `json:"insight"`
}

// TrendRow is a line of the yearly trend table.
type TrendRow struct {
	Year   int               `json:"year"`
	Mean   float64           `json:"mean"`
	Change inflation.Percent `json:"change"` // since the previous row.
}

// InsightBlock is the narrative section of the dashboard.
type InsightBlock struct {
	Status string `json:"status,omitempty"`
	Text   string `json:"text,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// DashboardOptions holds the context of a report that is not part of the
// analysis itself.
type DashboardOptions struct {
	Name   string // dataset name, shown in the footer.
	Source string // dataset location.
	Region string
	Chart  string
}

// NewDashboard builds the view model of a report.
func NewDashboard(r *inflation.Report, opts DashboardOptions) *Dashboard {
	region := opts.Region
	if region == "" {
		region = narrative.DefaultRegion
	}
	d := &Dashboard{
		Name:           opts.Name,
		Source:         opts.Source,
		Region:         region,
		Category:       r.Result.Category,
		StartYear:      r.Result.StartYear,
		EndYear:        r.Result.EndYear,
		StartValue:     r.Result.StartValue,
		EndValue:       r.Result.EndValue,
		Amount:         r.Result.Amount,
		AdjustedAmount: r.Result.AdjustedAmount,
		PercentChange:  r.Result.PercentChange,
		Chart:          opts.Chart,
	}
	for i, p := range r.Trend {
		row := TrendRow{Year: p.Year, Mean: p.Mean}
		if i > 0 && r.Trend[i-1].Mean != 0 {
			prev := r.Trend[i-1].Mean
			row.Change = inflation.Percent((p.Mean - prev) / prev * 100)
		}
		d.Trend = append(d.Trend, row)
	}
	return d
}

// SetInsight records the outcome of a narrative request.
func (d *Dashboard) SetInsight(i narrative.Insight) {
	if i.Available() {
		d.Insight = InsightBlock{Status: InsightReady, Text: strings.TrimSpace(i.Text)}
		return
	}
	reason := "the narrative service did not answer"
	if i.Cause != nil {
		reason = i.Cause.Error()
	}
	d.Insight = InsightBlock{Status: InsightUnavailable, Reason: reason}
}
