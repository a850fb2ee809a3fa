package sitepack

import "time"

// Report is a summary of an extraction. It is computed once by NewReport;
// every rendering (JSON, HTML, Markdown, README) reads the same values.
type Report struct {
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	ExtractedAt time.Time     `json:"extractedAt"`
	Summary     ReportSummary `json:"summary"`
	Counts      AssetCounts   `json:"counts"`
	Assets      Assets        `json:"assets"`
	Frameworks  []Framework   `json:"frameworks"`
	Performance Performance   `json:"performance"`
}

// ReportSummary holds the headline numbers of a report.
type ReportSummary struct {
	TotalAssets        int  `json:"totalAssets"`
	FrameworksDetected int  `json:"frameworksDetected"`
	PerformanceScore   int  `json:"performanceScore"`
	MobileResponsive   bool `json:"mobileResponsive"`
}

// AssetCounts holds the number of assets per kind.
type AssetCounts struct {
	HTML   int `json:"html"`
	CSS    int `json:"css"`
	JS     int `json:"js"`
	Images int `json:"images"`
	Fonts  int `json:"fonts"`
}

// DefaultReportTitle is used when the extraction has no title.
const DefaultReportTitle = "Website Analysis Report"

// NewReport computes the report of e.
// TotalAssets counts html, css, js and image assets; fonts are listed but
// not counted.
func NewReport(e *Extraction) *Report {
	counts := AssetCounts{
		HTML:   e.Assets.Count(AssetHTML),
		CSS:    e.Assets.Count(AssetCSS),
		JS:     e.Assets.Count(AssetJS),
		Images: e.Assets.Count(AssetImage),
		Fonts:  e.Assets.Count(AssetFont),
	}

	title := e.Title
	if title == "" {
		title = DefaultReportTitle
	}

	r := &Report{
		Title:       title,
		URL:         e.URL,
		ExtractedAt: e.CreatedAt,
		Summary: ReportSummary{
			TotalAssets:        counts.HTML + counts.CSS + counts.JS + counts.Images,
			FrameworksDetected: len(DetectedFrameworks(e.Frameworks)),
			PerformanceScore:   e.Performance.Score,
			MobileResponsive:   e.Performance.MobileResponsive,
		},
		Counts:      counts,
		Assets:      e.Assets,
		Frameworks:  e.Frameworks,
		Performance: e.Performance,
	}
	r.Assets.Normalize()
	if r.Frameworks == nil {
		r.Frameworks = []Framework{}
	}
	return r
}

// DetectedFrameworks returns the frameworks marked as detected.
func (r *Report) DetectedFrameworks() []Framework {
	return DetectedFrameworks(r.Frameworks)
}

// TotalSizeMB returns the total asset weight in megabytes, rounded to two
// decimals.
func (r *Report) TotalSizeMB() float64 {
	mb := float64(r.Performance.TotalSize) / 1024 / 1024
	return float64(int64(mb*100+0.5)) / 100
}
