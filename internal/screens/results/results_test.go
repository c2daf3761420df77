package results

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/history"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screens/sitting"
	"github.com/abhisek/examprep/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// failingRepo loads an empty history and refuses every write.
type failingRepo struct{ store.ResultRepo }

func (failingRepo) Recent(context.Context, int) ([]exam.Result, error) { return nil, nil }
func (failingRepo) Append(context.Context, exam.Result) error          { return errors.New("disk full") }

func finishedSession(t *testing.T) *exam.Session {
	t.Helper()
	s := exam.New(bank.Sample(), exam.Options{Rand: rand.New(rand.NewPCG(5, 6)), Duration: time.Hour})
	if err := s.Configure("V2", "chemistry", "informatics"); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	q, _, _ := s.Current()
	if err := s.RecordAnswer(q.ID, q.Correct); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Finish(); err != nil {
		t.Fatal(err)
	}
	return s
}

func newBook(t *testing.T, repo store.ResultRepo) *history.Book {
	t.Helper()
	b, err := history.Load(context.Background(), repo, exam.HistoryLimit)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestResultsScreen_RecordsOnInit(t *testing.T) {
	book := newBook(t, nil)
	s := New(finishedSession(t), book, true)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a record command")
	}
	s.Update(cmd())

	if book.Len() != 1 {
		t.Errorf("book has %d results, want 1", book.Len())
	}
	if !s.saved {
		t.Error("expected the screen to report the save")
	}
	if !strings.Contains(s.View(120, 80), "Saved to history") {
		t.Error("view should confirm the save")
	}
}

func TestResultsScreen_NoRecordWhenRevisited(t *testing.T) {
	s := New(finishedSession(t), newBook(t, nil), false)
	if s.Init() != nil {
		t.Error("expected no command without record")
	}
}

func TestResultsScreen_SaveFailureIsShown(t *testing.T) {
	book := newBook(t, failingRepo{})
	s := New(finishedSession(t), book, true)

	s.Update(s.Init()())

	if !strings.Contains(s.View(120, 80), "disk full") {
		t.Error("view should show the store error")
	}
	if book.Len() != 1 {
		t.Error("the in-memory history keeps the result")
	}
}

func TestResultsScreen_View(t *testing.T) {
	sess := finishedSession(t)
	s := New(sess, newBook(t, nil), false)
	r, _ := sess.Result()

	view := s.View(120, 80)
	for _, want := range []string{"Score", "Chemistry", "Informatics", "Study plan", "Week 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if r.Blocks[4].Total != 30 {
		t.Errorf("informatics block total = %d, want the whole pool of 30", r.Blocks[4].Total)
	}
}

func TestResultsScreen_ViewScrolls(t *testing.T) {
	s := New(finishedSession(t), newBook(t, nil), false)

	top := s.View(120, 10)
	if n := strings.Count(top, "\n") + 1; n != 10 {
		t.Fatalf("view has %d lines, want 10", n)
	}
	s.Update(keyPress('j'))
	if s.View(120, 10) == top {
		t.Error("scrolling down should change the view")
	}
	for i := 0; i < 500; i++ {
		s.Update(keyPress('j'))
	}
	s.View(120, 10)
	last := s.offset
	s.Update(keyPress('j'))
	s.View(120, 10)
	if s.offset != last {
		t.Error("offset should stop at the end of the content")
	}
}

func TestResultsScreen_Review(t *testing.T) {
	sess := finishedSession(t)
	s := New(sess, newBook(t, nil), false)

	_, cmd := s.Update(keyPress('r'))
	if sess.Phase() != exam.PhaseReview {
		t.Fatalf("phase = %s, want review", sess.Phase())
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*sitting.SittingScreen); !ok {
		t.Errorf("pushed %T, want the sitting screen", push.Screen)
	}
}

func TestResultsScreen_NewSitting(t *testing.T) {
	sess := finishedSession(t)
	s := New(sess, newBook(t, nil), false)

	_, cmd := s.Update(keyPress('n'))
	if sess.Phase() != exam.PhaseSelect {
		t.Errorf("phase = %s, want select", sess.Phase())
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
	if len(sess.History()) != 1 {
		t.Error("reset must keep history")
	}
}

func TestResultsScreen_History(t *testing.T) {
	s := New(finishedSession(t), newBook(t, nil), false)
	_, cmd := s.Update(keyPress('h'))
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg for history")
	}
	if len(s.KeyHints()) != 4 {
		t.Errorf("KeyHints length = %d, want 4", len(s.KeyHints()))
	}
}
