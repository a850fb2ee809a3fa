package sitepack

// Framework is the detection result for one catalog entry.
type Framework struct {
	Name     string `json:"name"`
	Detected bool   `json:"detected"`

	// Version is "Unknown" when detected; markup alone never reveals it.
	Version string `json:"version,omitempty"`

	// Confidence is the signal strength from 0 to 100.
	Confidence int `json:"confidence"`
}

// VersionUnknown is reported for detected frameworks.
const VersionUnknown = "Unknown"

// Catalog entry names, in report order.
const (
	FrameworkReact     = "React"
	FrameworkVue       = "Vue"
	FrameworkAngular   = "Angular"
	FrameworkBootstrap = "Bootstrap"
	FrameworkTailwind  = "Tailwind CSS"
)

// FrameworkCatalog lists the frameworks every extraction reports on.
// New entries may be appended; existing entries keep their position.
var FrameworkCatalog = []string{
	FrameworkReact,
	FrameworkVue,
	FrameworkAngular,
	FrameworkBootstrap,
	FrameworkTailwind,
}

// DetectedFrameworks returns the subset of frameworks that were detected.
func DetectedFrameworks(frameworks []Framework) []Framework {
	var detected []Framework
	for _, f := range frameworks {
		if f.Detected {
			detected = append(detected, f)
		}
	}
	return detected
}
