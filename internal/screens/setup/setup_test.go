package setup

import (
	"context"
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
	"github.com/abhisek/examprep/internal/ui/components"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSetup(t *testing.T) (*SetupScreen, *exam.Session) {
	t.Helper()
	b := bank.Sample()
	sess := exam.New(b, exam.Options{Rand: rand.New(rand.NewPCG(9, 9)), Duration: time.Hour})
	book, err := history.Load(context.Background(), nil, exam.HistoryLimit)
	if err != nil {
		t.Fatal(err)
	}
	return New(sess, b, book), sess
}

func choose(s *SetupScreen, id, value string) tea.Cmd {
	_, cmd := s.Update(components.MenuChosenMsg{ID: id, Item: components.MenuItem{Value: value}})
	return cmd
}

func TestSetupScreen_VariantMenu(t *testing.T) {
	s, _ := testSetup(t)
	if s.step != stepVariant {
		t.Fatalf("step = %d, want variant", s.step)
	}
	if len(s.menu.Items) != 2 {
		t.Errorf("variant menu has %d items, want 2", len(s.menu.Items))
	}
	if !strings.Contains(s.View(100, 30), "Choose a variant") {
		t.Error("view missing variant prompt")
	}
}

func TestSetupScreen_EnterEmitsChoice(t *testing.T) {
	s, _ := testSetup(t)
	_, cmd := s.Update(specialKey(tea.KeyDown))
	if cmd != nil {
		t.Error("navigation should not emit a command")
	}
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(components.MenuChosenMsg)
	if !ok || msg.Item.Value != "V2" {
		t.Fatalf("got %#v, want V2 chosen", msg)
	}

	s.Update(msg)
	if s.step != stepFirst || s.variant.ID != "V2" {
		t.Errorf("step = %d variant = %q, want first subject step with V2", s.step, s.variant.ID)
	}
}

func TestSetupScreen_SecondSubjectExcludesFirst(t *testing.T) {
	s, _ := testSetup(t)
	choose(s, menuVariant, "V1")
	choose(s, menuFirst, "math")

	if s.step != stepSecond {
		t.Fatalf("step = %d, want second subject", s.step)
	}
	for _, item := range s.menu.Items {
		if item.Value == "math" && !item.Disabled {
			t.Error("first subject must be disabled in the second menu")
		}
	}
	if cur, _ := s.menu.Current(); cur.Value == "math" {
		t.Error("cursor must not start on a disabled subject")
	}
}

func TestSetupScreen_StartsSitting(t *testing.T) {
	s, sess := testSetup(t)
	choose(s, menuVariant, "V1")
	choose(s, menuFirst, "math")
	choose(s, menuSecond, "biology")
	if s.step != stepConfirm {
		t.Fatalf("step = %d, want confirm", s.step)
	}

	cmd := choose(s, menuConfirm, choiceStart)
	if sess.Phase() != exam.PhaseExam {
		t.Fatalf("phase = %s, want exam", sess.Phase())
	}
	if sess.Subjects() != [2]string{"math", "biology"} {
		t.Errorf("subjects = %v", sess.Subjects())
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*sitting.SittingScreen); !ok {
		t.Errorf("pushed %T, want the sitting screen", push.Screen)
	}
}

func TestSetupScreen_EscGoesBack(t *testing.T) {
	s, _ := testSetup(t)
	choose(s, menuVariant, "V1")
	choose(s, menuFirst, "math")

	s.Update(specialKey(tea.KeyEscape))
	if s.step != stepFirst {
		t.Errorf("step = %d, want first subject", s.step)
	}
	if cur, _ := s.menu.Current(); cur.Value != "math" {
		t.Errorf("cursor on %q, want the previous choice", cur.Value)
	}

	s.Update(specialKey(tea.KeyEscape))
	s.Update(specialKey(tea.KeyEscape))
	if s.step != stepVariant {
		t.Errorf("step = %d, want variant", s.step)
	}
}

func TestSetupScreen_ChangeSelection(t *testing.T) {
	s, sess := testSetup(t)
	choose(s, menuVariant, "V1")
	choose(s, menuFirst, "math")
	choose(s, menuSecond, "physics")
	choose(s, menuConfirm, choiceBack)

	if s.step != stepVariant {
		t.Errorf("step = %d, want variant", s.step)
	}
	if sess.Phase() != exam.PhaseSelect {
		t.Error("going back must not start the sitting")
	}
}

func TestSetupScreen_RefreshAfterReset(t *testing.T) {
	s, sess := testSetup(t)
	choose(s, menuVariant, "V1")
	choose(s, menuFirst, "math")
	choose(s, menuSecond, "physics")
	choose(s, menuConfirm, choiceStart)

	// Finished and reset elsewhere; the stack pops back to setup.
	if _, err := sess.Finish(); err != nil {
		t.Fatal(err)
	}
	sess.Reset()
	s.Refresh()

	if s.step != stepVariant || s.first != "" || s.second != "" {
		t.Errorf("setup not cleared: step=%d first=%q second=%q", s.step, s.first, s.second)
	}
}

func TestSetupScreen_HistoryKey(t *testing.T) {
	s, _ := testSetup(t)
	_, cmd := s.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected a command for history")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg")
	}
}
