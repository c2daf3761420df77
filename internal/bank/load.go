package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://examprep/bank.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// ValidationError reports bank content that fails the schema or the
// cross-reference checks in Validate.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid bank: %v", e.Err)
	}
	return fmt.Sprintf("invalid bank %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Load reads, validates and decodes a bank file.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && verr.Path == "" {
			verr.Path = path
		}
		return nil, err
	}
	return b, nil
}

// Parse validates raw JSON against the bank schema and decodes it.
func Parse(data []byte) (*Bank, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := bankSchemaCompiled()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks constraints the schema cannot express: unique variant
// ids, globally unique question ids and pool subjects from the catalog.
func (b *Bank) Validate() error {
	if len(b.Variants) == 0 {
		return &ValidationError{Err: errors.New("no variants")}
	}

	seen := make(map[string]string)
	check := func(where string, qs []Question) error {
		for _, q := range qs {
			if len(q.Options) != OptionCount {
				return &ValidationError{Err: fmt.Errorf("%s: question %q has %d options", where, q.ID, len(q.Options))}
			}
			if q.Correct < 0 || q.Correct >= OptionCount {
				return &ValidationError{Err: fmt.Errorf("%s: question %q correct index %d out of range", where, q.ID, q.Correct)}
			}
			if prev, dup := seen[q.ID]; dup {
				return &ValidationError{Err: fmt.Errorf("%s: question id %q already used in %s", where, q.ID, prev)}
			}
			seen[q.ID] = where
		}
		return nil
	}

	variantIDs := make(map[string]bool)
	for _, v := range b.Variants {
		if variantIDs[v.ID] {
			return &ValidationError{Err: fmt.Errorf("duplicate variant id %q", v.ID)}
		}
		variantIDs[v.ID] = true

		if len(v.ReadingLiteracy) != ReadingLiteracyCount ||
			len(v.MathLiteracy) != MathLiteracyCount ||
			len(v.History) != HistoryCount {
			return &ValidationError{Err: fmt.Errorf("variant %q: mandatory blocks must hold %d/%d/%d questions",
				v.ID, ReadingLiteracyCount, MathLiteracyCount, HistoryCount)}
		}
		if err := check("variant "+v.ID+" reading_literacy", v.ReadingLiteracy); err != nil {
			return err
		}
		if err := check("variant "+v.ID+" math_literacy", v.MathLiteracy); err != nil {
			return err
		}
		if err := check("variant "+v.ID+" history", v.History); err != nil {
			return err
		}
	}

	subjects := make([]string, 0, len(b.Pools))
	for subject := range b.Pools {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	for _, subject := range subjects {
		qs := b.Pools[subject]
		if _, ok := LookupSubject(subject); !ok {
			return &ValidationError{Err: fmt.Errorf("pool for unknown subject %q", subject)}
		}
		if err := check("pool "+subject, qs); err != nil {
			return err
		}
	}
	return nil
}

func bankSchemaCompiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(bankSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
