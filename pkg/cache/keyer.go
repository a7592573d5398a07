package cache

// Keyer builds cache keys for the values the pipeline memoizes.
type Keyer interface {
	// AnalysisKey returns the key for an analysis of the input with the
	// given content hash.
	AnalysisKey(inputHash string) string

	// ArtifactKey returns the key for a rendered artifact of a report.
	ArtifactKey(reportHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width,omitempty"`
	Theme  string  `json:"theme,omitempty"`
	Grid   bool    `json:"grid,omitempty"`
	Title  string  `json:"title,omitempty"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AnalysisKey hashes the input hash under the "analysis" prefix.
func (DefaultKeyer) AnalysisKey(inputHash string) string {
	return hashKey("analysis", inputHash)
}

// ArtifactKey hashes the report hash and render options.
func (DefaultKeyer) ArtifactKey(reportHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, reportHash, opts)
}

var _ Keyer = DefaultKeyer{}
