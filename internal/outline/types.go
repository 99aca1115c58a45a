package outline

// Level is a heading level.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// TextBlock is one aggregated visual line.
type TextBlock struct {
	Text string
	Size float64 // Max size of the contributing spans
	Bold bool    // Any contributing span was bold
	Page int
	Y    float64 // Anchor position of the first contributing span
}

// Candidate is a TextBlock that was assigned a heading level.
type Candidate struct {
	TextBlock
	Level Level
}

// Entry is a final outline heading.
type Entry struct {
	Text  string `json:"text"`
	Level Level  `json:"level"`
	Page  int    `json:"page"`
}

// Outline is the extracted structure of a single document.
type Outline struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"outline"`
}
