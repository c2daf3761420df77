package bank

// Difficulty is the tier a question is authored at.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the tiers in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Question is an immutable multiple-choice content item.
type Question struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Options     []string   `json:"options"`
	Correct     int        `json:"correct"`
	Explanation string     `json:"explanation,omitempty"`
	Topic       string     `json:"topic"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Variant is a pre-authored set of mandatory-block questions.
type Variant struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ReadingLiteracy []Question `json:"reading_literacy"`
	MathLiteracy    []Question `json:"math_literacy"`
	History         []Question `json:"history"`
}

// Subject is a profile subject a learner can pick.
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Subjects is the fixed catalog of profile subjects.
var Subjects = []Subject{
	{ID: "math", Name: "Mathematics"},
	{ID: "physics", Name: "Physics"},
	{ID: "chemistry", Name: "Chemistry"},
	{ID: "biology", Name: "Biology"},
	{ID: "geography", Name: "Geography"},
	{ID: "world_history", Name: "World History"},
	{ID: "informatics", Name: "Informatics"},
	{ID: "english", Name: "English"},
	{ID: "law", Name: "Fundamentals of Law"},
}

// LookupSubject returns the catalog entry for id.
func LookupSubject(id string) (Subject, bool) {
	for _, s := range Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// SubjectName returns the display name of a subject, or id if unknown.
func SubjectName(id string) string {
	if s, ok := LookupSubject(id); ok {
		return s.Name
	}
	return id
}

// Bank is the read-only content an exam is assembled from.
type Bank struct {
	Variants []Variant             `json:"variants"`
	Pools    map[string][]Question `json:"pools"`
}

// Variant returns the variant with the given id.
func (b *Bank) Variant(id string) (Variant, bool) {
	for _, v := range b.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Pool returns the profile question pool for a subject (nil if none).
func (b *Bank) Pool(subject string) []Question {
	return b.Pools[subject]
}

// HasSubject reports whether subject belongs to the catalog.
func (b *Bank) HasSubject(subject string) bool {
	_, ok := LookupSubject(subject)
	return ok
}
