package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/history"
	"github.com/abhisek/examprep/internal/studyplan"
)

type variantSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
}

type subjectSummary struct {
	bank.Subject
	PoolSize int `json:"pool_size"`
}

// CatalogHandler lists the variants and the profile subjects the bank
// carries a pool for.
func CatalogHandler(b *bank.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp struct {
			Variants []variantSummary `json:"variants"`
			Subjects []subjectSummary `json:"subjects"`
		}
		resp.Variants = make([]variantSummary, 0, len(b.Variants))
		for _, v := range b.Variants {
			resp.Variants = append(resp.Variants, variantSummary{
				ID:        v.ID,
				Title:     v.Title,
				Questions: len(v.ReadingLiteracy) + len(v.MathLiteracy) + len(v.History),
			})
		}
		resp.Subjects = make([]subjectSummary, 0, len(bank.Subjects))
		for _, s := range bank.Subjects {
			if !b.HasSubject(s.ID) {
				continue
			}
			resp.Subjects = append(resp.Subjects, subjectSummary{Subject: s, PoolSize: len(b.Pool(s.ID))})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HistoryHandler returns recent results, most recent first. With
// ?plan=true it adds a study plan built from the latest result.
func HistoryHandler(book *history.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := book.Results()
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be a non-negative integer"})
				return
			}
			if n < len(results) {
				results = results[:n]
			}
		}

		resp := struct {
			Results []exam.Result   `json:"results"`
			Plan    *studyplan.Plan `json:"plan,omitempty"`
		}{Results: results}
		if resp.Results == nil {
			resp.Results = []exam.Result{}
		}

		if plan, _ := strconv.ParseBool(r.URL.Query().Get("plan")); plan && len(results) > 0 {
			resp.Plan = studyplan.Build(results[0], studyplan.Options{})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ClearHistoryHandler deletes every stored result. Live sessions keep the
// history they were created with.
func ClearHistoryHandler(book *history.Book, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := book.Clear(r.Context()); err != nil {
			writeError(w, log, err)
			return
		}
		log.Info("history cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}
