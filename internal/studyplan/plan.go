// Package studyplan turns a scored sitting into a weekly revision schedule.
package studyplan

import (
	"sort"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/exam"
)

const (
	// DefaultWeeks is the schedule length when Options.Weeks is unset.
	DefaultWeeks = 4

	// DefaultPerWeek caps the practice topics in one week.
	DefaultPerWeek = 3
)

// Category labels why a topic is in a week.
type Category string

const (
	CategoryPractice Category = "practice"
	CategoryReview   Category = "review"
)

// Focus is one topic of one block with its tally from the sitting.
type Focus struct {
	Area    string `json:"area"`
	Topic   string `json:"topic"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// Percent returns the rounded accuracy on the topic.
func (f Focus) Percent() int {
	return exam.Tally{Total: f.Total, Correct: f.Correct}.Percent()
}

// Missed returns the number of questions not answered correctly.
func (f Focus) Missed() int {
	return f.Total - f.Correct
}

// Slot is a topic scheduled in a week.
type Slot struct {
	Focus
	Category Category `json:"category"`
}

// Week is one week of the schedule, numbered from 1.
type Week struct {
	Number int    `json:"number"`
	Slots  []Slot `json:"slots"`
}

// Plan is the full schedule.
type Plan struct {
	Weeks []Week `json:"weeks"`
}

// Empty reports whether the plan schedules nothing.
func (p *Plan) Empty() bool {
	for _, w := range p.Weeks {
		if len(w.Slots) > 0 {
			return false
		}
	}
	return true
}

// Options tunes the schedule. Zero values select the defaults.
type Options struct {
	Weeks   int
	PerWeek int
}

// Build ranks the sitting's topics by weakness and spreads the weak ones
// round-robin over the weeks. Each week also revisits the strongest topic.
func Build(r exam.Result, opts Options) *Plan {
	if opts.Weeks <= 0 {
		opts.Weeks = DefaultWeeks
	}
	if opts.PerWeek <= 0 {
		opts.PerWeek = DefaultPerWeek
	}

	topics := Topics(r)
	if len(topics) == 0 {
		return &Plan{}
	}

	weak := weakTopics(topics)
	capacity := opts.Weeks * opts.PerWeek
	if len(weak) > capacity {
		weak = weak[:capacity]
	}

	weeks := make([]Week, opts.Weeks)
	for i := range weeks {
		weeks[i].Number = i + 1
	}
	for i, f := range weak {
		w := &weeks[i%opts.Weeks]
		w.Slots = append(w.Slots, Slot{Focus: f, Category: CategoryPractice})
	}

	strongest := strongestTopic(topics)
	for i := range weeks {
		if !contains(weeks[i].Slots, strongest) {
			weeks[i].Slots = append(weeks[i].Slots, Slot{Focus: strongest, Category: CategoryReview})
		}
	}

	return &Plan{Weeks: weeks}
}

// Topics flattens the per-block topic tallies of r, ordered by block then
// topic name. Profile blocks are labelled with the subject name.
func Topics(r exam.Result) []Focus {
	var out []Focus
	for _, blk := range r.Blocks {
		area := blk.Title
		if blk.Subject != "" {
			area = bank.SubjectName(blk.Subject)
		}

		names := make([]string, 0, len(blk.ByTopic))
		for name := range blk.ByTopic {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			t := blk.ByTopic[name]
			if t.Total == 0 {
				continue
			}
			out = append(out, Focus{Area: area, Topic: name, Correct: t.Correct, Total: t.Total})
		}
	}
	return out
}

// weakTopics returns topics below full accuracy, weakest first:
// 1. Lowest accuracy
// 2. Most questions missed
// 3. Area then topic name
func weakTopics(topics []Focus) []Focus {
	var weak []Focus
	for _, f := range topics {
		if f.Correct < f.Total {
			weak = append(weak, f)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		ai, aj := accuracy(weak[i]), accuracy(weak[j])
		if ai != aj {
			return ai < aj
		}
		if weak[i].Missed() != weak[j].Missed() {
			return weak[i].Missed() > weak[j].Missed()
		}
		if weak[i].Area != weak[j].Area {
			return weak[i].Area < weak[j].Area
		}
		return weak[i].Topic < weak[j].Topic
	})
	return weak
}

// strongestTopic picks the highest accuracy, then the most questions, then
// the first by name.
func strongestTopic(topics []Focus) Focus {
	best := topics[0]
	for _, f := range topics[1:] {
		af, ab := accuracy(f), accuracy(best)
		switch {
		case af > ab:
			best = f
		case af == ab && f.Total > best.Total:
			best = f
		case af == ab && f.Total == best.Total && key(f) < key(best):
			best = f
		}
	}
	return best
}

func accuracy(f Focus) float64 {
	return float64(f.Correct) / float64(f.Total)
}

func key(f Focus) string {
	return f.Area + "\x00" + f.Topic
}

func contains(slots []Slot, f Focus) bool {
	for _, s := range slots {
		if key(s.Focus) == key(f) {
			return true
		}
	}
	return false
}
