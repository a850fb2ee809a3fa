package archive

import (
	"text/template"
	"time"

	"github.com/fwojciec/sitepack"
)

type readmeData struct {
	*sitepack.Report
	Extraction *sitepack.Extraction
}

func newReadmeData(e *sitepack.Extraction) readmeData {
	return readmeData{Report: sitepack.NewReport(e), Extraction: e}
}

var funcs = template.FuncMap{
	"iso": func(t time.Time) string {
		return t.UTC().Format("2006-01-02T15:04:05.000Z")
	},
	"version": func(f sitepack.Framework) string {
		if f.Version == "" || f.Version == sitepack.VersionUnknown {
			return ""
		}
		return " v" + f.Version
	},
}

var assetsReadme = template.Must(template.New("assets").Funcs(funcs).Parse(`# Website Extraction
URL: {{.Extraction.URL}}
Title: {{or .Extraction.Title "N/A"}}
Extracted: {{iso .ExtractedAt}}

## Assets Included
- HTML files: {{.Counts.HTML}}
- CSS files: {{.Counts.CSS}}
- JavaScript files: {{.Counts.JS}}
- Images: {{.Counts.Images}}
- Fonts: {{.Counts.Fonts}}

## Frameworks Detected
{{range .DetectedFrameworks}}- {{.Name}}{{version .}}
{{else}}None detected
{{end}}`))

var projectReadme = template.Must(template.New("project").Funcs(funcs).Parse(`# {{or .Extraction.Title "Extracted Website"}}

Extracted from: {{.Extraction.URL}}
Date: {{iso .ExtractedAt}}

## Quick Start

1. Install dependencies:
   ` + "```" + `bash
   npm install
   ` + "```" + `

2. Start development server:
   ` + "```" + `bash
   npm run serve
   ` + "```" + `

3. Open http://localhost:8080 in your browser

## Project Structure

- ` + "`index.html`" + ` - Main HTML file
- ` + "`assets/css/`" + ` - Stylesheets
- ` + "`assets/js/`" + ` - JavaScript files

## Detected Frameworks

{{range .DetectedFrameworks}}- {{.Name}}{{version .}}
{{else}}None detected
{{end}}
## Performance Metrics

- Score: {{.Performance.Score}}/100
- Total Size: {{if .Performance.TotalSize}}{{.TotalSizeMB}}MB{{else}}Unknown{{end}}
- Mobile Responsive: {{if .Performance.MobileResponsive}}Yes{{else}}No{{end}}
- Components Found: {{.Performance.ComponentsFound}}
`))
