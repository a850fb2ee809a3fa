package sitepack

import "strings"

// Performance is the synthetic performance summary of an extraction.
// None of it is timing based.
type Performance struct {
	Score            int   `json:"score"`
	TotalSize        int64 `json:"totalSize"`
	MobileResponsive bool  `json:"mobileResponsive"`
	ComponentsFound  int   `json:"componentsFound"`
	HasViewportMeta  bool  `json:"hasViewportMeta"`
}

// Score bounds and the asset weight that costs one point.
const (
	MinScore         = 20
	MaxScore         = 100
	BytesPerPointOff = 100000
)

// ScoreForSize maps a total asset weight to a score. Each 100KB costs one
// point; the result is clamped to [MinScore, MaxScore].
func ScoreForSize(totalSize int64) int {
	if totalSize < 0 {
		totalSize = 0
	}
	score := int64(MaxScore) - totalSize/BytesPerPointOff
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return int(score)
}

// PageSignals are the document-level facts the estimator needs.
type PageSignals struct {
	// HTML is the raw page markup.
	HTML string

	// HasViewportMeta is true if a <meta name="viewport"> tag is present.
	HasViewportMeta bool

	// ComponentCount is the number of elements whose class, id or any
	// attribute name contains "component".
	ComponentCount int
}

// EstimatePerformance derives the performance summary from the classified
// assets and page signals. HTML and font assets do not count towards
// TotalSize. The result depends only on its inputs.
func EstimatePerformance(assets Assets, signals PageSignals) Performance {
	var total int64
	var count int
	for _, kind := range []AssetKind{AssetCSS, AssetJS, AssetImage} {
		for _, a := range assets.ByKind(kind) {
			total += a.Size
		}
		count += assets.Count(kind)
	}

	components := signals.ComponentCount
	if components == 0 {
		components = count
	}

	return Performance{
		Score:            ScoreForSize(total),
		TotalSize:        total,
		MobileResponsive: signals.HasViewportMeta || hasMediaQuery(signals.HTML, assets.CSS),
		ComponentsFound:  components,
		HasViewportMeta:  signals.HasViewportMeta,
	}
}

func hasMediaQuery(html string, stylesheets []Asset) bool {
	if strings.Contains(html, "@media") {
		return true
	}
	for _, s := range stylesheets {
		if strings.Contains(s.Content, "@media") {
			return true
		}
	}
	return false
}
