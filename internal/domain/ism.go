package domain

// FourGridItem is one cell of an entry's four-dimension breakdown.
type FourGridItem struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// FourGrid holds the per-dimension analysis of an entry.
// Cells are optional; a nil cell means the source material had
// nothing for that dimension.
type FourGrid struct {
	Ontology   *FourGridItem `json:"ontology,omitempty"`
	Body       *FourGridItem `json:"body,omitempty"`
	Phenomenon *FourGridItem `json:"phenomenon,omitempty"`
	Purpose    *FourGridItem `json:"purpose,omitempty"`
}

// Extension is a further-reading block attached to an entry.
type Extension struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QA is a question/answer pair attached to an entry.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Ism is a single read-only catalog entry, keyed by its 4-symbol code.
// Entries are loaded once at startup and never mutated.
type Ism struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Aliases     []string    `json:"aliases,omitempty"`
	Description string      `json:"description"`
	FourGrid    FourGrid    `json:"fourGrid"`
	Extensions  []Extension `json:"extensions,omitempty"`
	QA          []QA        `json:"qa,omitempty"`
	KeyPoints   []string    `json:"keyPoints,omitempty"`
}
