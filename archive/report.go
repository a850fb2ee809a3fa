package archive

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/fwojciec/sitepack"
)

var _ sitepack.ReportRenderer = (*ReportRenderer)(nil)

// ReportRenderer renders reports as standalone HTML, and as Markdown by
// converting that HTML.
type ReportRenderer struct {
	converter sitepack.Converter
}

// NewReportRenderer creates a ReportRenderer converting HTML with c.
func NewReportRenderer(c sitepack.Converter) *ReportRenderer {
	return &ReportRenderer{converter: c}
}

// RenderHTML renders r as an HTML document.
func (rr *ReportRenderer) RenderHTML(r *sitepack.Report) (string, error) {
	var buf bytes.Buffer
	if err := reportHTML.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}

// RenderMarkdown renders r as Markdown.
func (rr *ReportRenderer) RenderMarkdown(r *sitepack.Report) (string, error) {
	html, err := rr.RenderHTML(r)
	if err != nil {
		return "", err
	}
	return rr.converter.Convert(html)
}

type assetSection struct {
	Heading string
	Assets  []sitepack.Asset
}

var reportFuncs = template.FuncMap{
	"iso": funcs["iso"],
	"yesno": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
	"sections": func(r *sitepack.Report) []assetSection {
		return []assetSection{
			{"HTML", r.Assets.HTML},
			{"CSS", r.Assets.CSS},
			{"JavaScript", r.Assets.JS},
			{"Images", r.Assets.Images},
			{"Fonts", r.Assets.Fonts},
		}
	},
}

var reportHTML = template.Must(template.New("report").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p>URL: <a href="{{.URL}}">{{.URL}}</a></p>
<p>Extracted: {{iso .ExtractedAt}}</p>
<h2>Summary</h2>
<ul>
<li>Total assets: {{.Summary.TotalAssets}}</li>
<li>Frameworks detected: {{.Summary.FrameworksDetected}}</li>
<li>Performance score: {{.Summary.PerformanceScore}}/100</li>
<li>Mobile responsive: {{yesno .Summary.MobileResponsive}}</li>
</ul>
<h2>Frameworks</h2>
<table>
<thead><tr><th>Name</th><th>Detected</th><th>Confidence</th></tr></thead>
<tbody>
{{range .Frameworks}}<tr><td>{{.Name}}</td><td>{{yesno .Detected}}</td><td>{{.Confidence}}</td></tr>
{{end}}</tbody>
</table>
<h2>Performance</h2>
<ul>
<li>Score: {{.Performance.Score}}/100</li>
<li>Total size: {{.TotalSizeMB}} MB</li>
<li>Mobile responsive: {{yesno .Performance.MobileResponsive}}</li>
<li>Viewport meta: {{yesno .Performance.HasViewportMeta}}</li>
<li>Components found: {{.Performance.ComponentsFound}}</li>
</ul>
<h2>Assets</h2>
{{range sections .}}<h3>{{.Heading}} ({{len .Assets}})</h3>
{{if .Assets}}<table>
<thead><tr><th>Name</th><th>Size</th><th>URL</th></tr></thead>
<tbody>
{{range .Assets}}<tr><td>{{.Name}}</td><td>{{.Size}}</td><td>{{.URL}}</td></tr>
{{end}}</tbody>
</table>
{{else}}<p>None</p>
{{end}}{{end}}</body>
</html>
`))
