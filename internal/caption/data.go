package caption

// ImageRecord describes one media-library image. Caption may be empty.
type ImageRecord struct {
	ID      string `json:"id" yaml:"id"`
	Width   int    `json:"width" yaml:"width"`
	Height  int    `json:"height" yaml:"height"`
	Name    string `json:"name" yaml:"name"`
	Caption string `json:"caption" yaml:"caption"`
	URL     string `json:"url" yaml:"url"`
}

// Result is the outcome of one merge run.
type Result struct {
	Document string
	// Patterns lists every match pattern attempted, in record order.
	Patterns []string
	// Matched counts markups substituted in place of their caption text.
	Matched int
	// Prepended counts the distinct markups placed before the body.
	Prepended int
}
