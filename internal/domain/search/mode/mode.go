package mode

// Mode is the retrieval strategy picked once per listing request.
type Mode string

// Search mode constants.
const (
	// Structured delegates filtering, sorting, paging and counting to the catalog.
	Structured Mode = "structured"
	// Semantic scores filtered candidates against the query embedding in process.
	Semantic Mode = "semantic"
	// Fallback is structured retrieval with a name match standing in for a failed embedding.
	Fallback Mode = "fallback"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Structured || m == Semantic || m == Fallback
}

// Select picks the mode for a residual query. Free text left over after
// keyword extraction needs semantic scoring.
func Select(residual string) Mode {
	if residual == "" {
		return Structured
	}
	return Semantic
}

// Scored reports whether results carry a semantic score.
func (m Mode) Scored() bool { return m == Semantic }
