package profile

// Profile is the structured view of a scraped professional profile or
// article. Every list field defaults to an empty slice and every scalar to
// an empty string; CurrentPosition and Summary are the only optional fields.
type Profile struct {
	Name            string      `json:"name"`
	Headline        string      `json:"headline"`
	CurrentPosition *Position   `json:"currentPosition,omitempty"`
	PastPositions   []Position  `json:"pastPositions"`
	Education       []Education `json:"education"`
	Skills          []string    `json:"skills"`
	Summary         string      `json:"summary,omitempty"`
	RawMarkdown     string      `json:"rawMarkdown"`
}

// Position is a single role entry (current or past).
type Position struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

// Education is a single education entry.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
}
