package models

// Flashcard is one educational eye-care tip.
type Flashcard struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Ref     string `json:"ref"`
}

// Question is one item of the symptom self-assessment.
type Question struct {
	Q    string `json:"q"`
	Type string `json:"type"`
}
