package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/examprep/internal/bank"
)

// execute runs the root command against a fresh sqlite file in a temp dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("EXAMPREP_DB_DRIVER", "sqlite")
	t.Setenv("EXAMPREP_BANK", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "examprep.db")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "examprep ") {
		t.Errorf("output = %q", out)
	}
}

func TestBankDumpThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	if _, err := execute(t, "bank", "dump", "--out", path); err != nil {
		t.Fatalf("dump: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	var b bank.Bank
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("dump is not JSON: %v", err)
	}
	if len(b.Variants) != len(bank.Sample().Variants) {
		t.Errorf("variants = %d, want %d", len(b.Variants), len(bank.Sample().Variants))
	}

	out, err := execute(t, "bank", "validate", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, ": ok,") {
		t.Errorf("validate output = %q", out)
	}
}

func TestBankValidate_RejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"variants": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "bank", "validate", path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestHistory_Empty(t *testing.T) {
	out, err := execute(t, "history", "--db", tempDB(t))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No sittings yet") {
		t.Errorf("output = %q", out)
	}
}

func TestHistory_RejectsNegativeLimit(t *testing.T) {
	_, err := execute(t, "history", "--db", tempDB(t), "--limit", "-1")
	if err == nil {
		t.Fatal("expected error for negative limit")
	}
	// Flag values persist on the shared command tree.
	if _, err := execute(t, "history", "--db", tempDB(t), "--limit", "0"); err != nil {
		t.Fatalf("history: %v", err)
	}
}

func TestReset(t *testing.T) {
	db := tempDB(t)
	if _, err := execute(t, "reset", "--db", db); err == nil {
		t.Fatal("reset without --yes should refuse")
	}

	out, err := execute(t, "reset", "--db", db, "--yes")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, "Deleted 0 stored results.") {
		t.Errorf("output = %q", out)
	}
}

func TestInvalidDriver(t *testing.T) {
	_, err := execute(t, "history", "--db", tempDB(t), "--db-driver", "oracle")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("err = %v", err)
	}
	if _, err := execute(t, "version", "--db-driver", "sqlite"); err != nil {
		t.Fatalf("version: %v", err)
	}
}
