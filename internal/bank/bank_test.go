package bank

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_IsValid(t *testing.T) {
	b := Sample()
	require.NoError(t, b.Validate())

	require.Len(t, b.Variants, 2)
	for _, s := range Subjects {
		assert.NotEmpty(t, b.Pool(s.ID), "pool for %s", s.ID)
	}
	assert.Len(t, b.Pool("informatics"), 30)
	assert.Len(t, b.Pool("math"), SamplePoolSize)
}

func TestParse_RoundTripsSample(t *testing.T) {
	data, err := json.Marshal(Sample())
	require.NoError(t, err)

	b, err := Parse(data)
	require.NoError(t, err)

	v, ok := b.Variant("V1")
	require.True(t, ok)
	assert.Len(t, v.ReadingLiteracy, ReadingLiteracyCount)
	assert.Len(t, v.History, HistoryCount)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Bank)
	}{
		{"three options", func(b *Bank) { b.Pools["math"][0].Options = b.Pools["math"][0].Options[:3] }},
		{"correct out of range", func(b *Bank) { b.Pools["math"][0].Correct = 4 }},
		{"bad difficulty", func(b *Bank) { b.Pools["math"][0].Difficulty = "extreme" }},
		{"short history block", func(b *Bank) { b.Variants[0].History = b.Variants[0].History[:19] }},
		{"empty topic", func(b *Bank) { b.Pools["physics"][1].Topic = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Sample()
			tt.mutate(b)
			data, err := json.Marshal(b)
			require.NoError(t, err)

			_, err = Parse(data)
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
		})
	}
}

func TestValidate_CrossReferences(t *testing.T) {
	t.Run("duplicate question id", func(t *testing.T) {
		b := Sample()
		b.Pools["physics"][0].ID = b.Pools["math"][0].ID
		assert.ErrorContains(t, b.Validate(), "already used")
	})

	t.Run("duplicate variant id", func(t *testing.T) {
		b := Sample()
		b.Variants[1].ID = b.Variants[0].ID
		assert.ErrorContains(t, b.Validate(), "duplicate variant")
	})

	t.Run("unknown subject pool", func(t *testing.T) {
		b := Sample()
		b.Pools["astrology"] = b.Pools["math"]
		delete(b.Pools, "math")
		assert.ErrorContains(t, b.Validate(), "unknown subject")
	})
}

func TestLoad_AttachesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"variants": []}`), 0o644))

	_, err := Load(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, path, verr.Path)
}

func TestLookupSubject(t *testing.T) {
	s, ok := LookupSubject("physics")
	require.True(t, ok)
	assert.Equal(t, "Physics", s.Name)

	_, ok = LookupSubject("alchemy")
	assert.False(t, ok)
}

func TestSubjectName(t *testing.T) {
	assert.Equal(t, "Fundamentals of Law", SubjectName("law"))
	assert.Equal(t, "alchemy", SubjectName("alchemy"))
}
