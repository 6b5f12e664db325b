package veritas

// Sample is one text submitted for batch detection.
type Sample struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SampleResult is the batch detection outcome for one Sample.
type SampleResult struct {
	ID     string           `json:"id"`
	Result *DetectionResult `json:"result"`
	// PhrasesFound lists the suspicious phrases that occur verbatim in the
	// sample text, in the order they were highlighted.
	PhrasesFound []string `json:"phrases_found"`
}

// SampleLoader loads samples from a source.
type SampleLoader interface {
	Load(path string) ([]Sample, error)
}

// SampleResultSaver appends batch results to a destination.
type SampleResultSaver interface {
	Save(path string, r SampleResult) error
}
