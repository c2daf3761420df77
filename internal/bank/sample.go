package bank

import "fmt"

// SamplePoolSize is the pool size the built-in bank generates per subject.
const SamplePoolSize = 40

// sampleTopics seeds topic labels for the generated sample content. The
// informatics pool is deliberately smaller than a profile block.
var sampleTopics = map[string][]string{
	"reading_literacy": {"Main idea", "Inference", "Vocabulary in context", "Text structure"},
	"math_literacy":    {"Percentages", "Proportions", "Data interpretation", "Logic"},
	"history":          {"Ancient period", "Medieval khanates", "Modern era", "Independence"},
	"math":             {"Algebra", "Geometry", "Trigonometry", "Calculus"},
	"physics":          {"Mechanics", "Thermodynamics", "Electricity", "Optics"},
	"chemistry":        {"Atomic structure", "Reactions", "Organic chemistry", "Solutions"},
	"biology":          {"Cells", "Genetics", "Ecology", "Human anatomy"},
	"geography":        {"Physical geography", "Climate", "Population", "Economy"},
	"world_history":    {"Antiquity", "Middle Ages", "Early modern", "Twentieth century"},
	"informatics":      {"Algorithms", "Number systems", "Networks"},
	"english":          {"Grammar", "Vocabulary", "Reading"},
	"law":              {"Constitution", "Civil law", "Criminal law"},
}

var samplePoolSizes = map[string]int{
	"informatics": 30,
}

// Sample returns a deterministic built-in bank with two variants and a pool
// for every catalog subject. It is used when no bank file is configured.
func Sample() *Bank {
	b := &Bank{Pools: make(map[string][]Question)}

	for _, v := range []struct{ id, title string }{
		{"V1", "Variant 1 (spring mock)"},
		{"V2", "Variant 2 (summer mock)"},
	} {
		b.Variants = append(b.Variants, Variant{
			ID:              v.id,
			Title:           v.title,
			ReadingLiteracy: generate(v.id+"-reading", "reading_literacy", ReadingLiteracyCount),
			MathLiteracy:    generate(v.id+"-mathlit", "math_literacy", MathLiteracyCount),
			History:         generate(v.id+"-history", "history", HistoryCount),
		})
	}

	for _, s := range Subjects {
		n, ok := samplePoolSizes[s.ID]
		if !ok {
			n = SamplePoolSize
		}
		b.Pools[s.ID] = generate(s.ID, s.ID, n)
	}
	return b
}

func generate(prefix, topicKey string, n int) []Question {
	topics := sampleTopics[topicKey]
	qs := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		topic := topics[i%len(topics)]
		correct := (i * 7) % OptionCount
		qs = append(qs, Question{
			ID:   fmt.Sprintf("%s-%03d", prefix, i+1),
			Text: fmt.Sprintf("%s: question %d. Which statement is correct?", topic, i+1),
			Options: []string{
				fmt.Sprintf("Statement A about %s", topic),
				fmt.Sprintf("Statement B about %s", topic),
				fmt.Sprintf("Statement C about %s", topic),
				fmt.Sprintf("Statement D about %s", topic),
			},
			Correct:     correct,
			Explanation: fmt.Sprintf("Statement %c is the accepted answer for this %s item.", 'A'+rune(correct), topic),
			Topic:       topic,
			Difficulty:  Difficulties[(i/len(topics))%len(Difficulties)],
		})
	}
	return qs
}
