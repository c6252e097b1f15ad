// Package renderer formats analysis reports as markdown, HTML and charts.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderDashboard renders the full dashboard to a markdown string.
func RenderDashboard(d *Dashboard) string {
	partials := map[string]string{
		"dashboard_title":   "dashboard_title.md",
		"dashboard_result":  "dashboard_result.md",
		"dashboard_summary": "dashboard_summary.md",
		"dashboard_trend":   "dashboard_trend.md",
		"dashboard_chart":   "dashboard_chart.md",
		"dashboard_footer":  "dashboard_footer.md",
		// An empty file name results in an empty section.
		"dashboard_insight": insightPartial(d.Insight.Status),
	}

	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// insightPartial returns the insight section template for a status.
func insightPartial(status string) string {
	switch status {
	case InsightReady:
		return "dashboard_insight.md"
	case InsightPending:
		return "dashboard_insight_pending.md"
	case InsightUnavailable:
		return "dashboard_insight_unavailable.md"
	}
	return ""
}

// RenderInsight renders the insight section alone, once the narrative
// request is resolved.
func RenderInsight(d *Dashboard) string {
	partials := map[string]string{"dashboard_insight": insightPartial(d.Insight.Status)}
	return renderTemplate("insight", "insight.md", partials, d)
}

// RenderAdjustment renders the adjusted amount without trend nor insight.
func RenderAdjustment(d *Dashboard) string {
	partials := map[string]string{
		"dashboard_title":   "dashboard_title.md",
		"dashboard_result":  "dashboard_result.md",
		"dashboard_summary": "dashboard_summary.md",
	}
	return renderTemplate("adjust", "adjust.md", partials, d)
}

// RenderTrend renders the yearly trend table and the chart link.
func RenderTrend(d *Dashboard) string {
	partials := map[string]string{
		"dashboard_title": "dashboard_title.md",
		"dashboard_trend": "dashboard_trend.md",
		"dashboard_chart": "dashboard_chart.md",
	}
	return renderTemplate("trend", "trend.md", partials, d)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
