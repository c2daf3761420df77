package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/registry"
)

// mutate runs fn under the session lock and replies with the updated view.
func mutate(w http.ResponseWriter, r *http.Request, reg *registry.Registry, log *slog.Logger, fn func(s *exam.Session) error) {
	id := chi.URLParam(r, "sessionID")
	var view sessionView
	err := reg.Do(id, func(s *exam.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		view = newSessionView(id, s.Snapshot())
		return nil
	})
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func CreateSessionHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := reg.Create()
		snap, err := reg.Snapshot(id)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, newSessionView(id, snap))
	}
}

func GetSessionHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		snap, err := reg.Snapshot(id)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, newSessionView(id, snap))
	}
}

func DeleteSessionHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := reg.Delete(chi.URLParam(r, "sessionID")); err != nil {
			writeError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ConfigureHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			VariantID string   `json:"variant_id"`
			Subjects  []string `json:"subjects"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, log, err)
			return
		}
		if req.VariantID == "" || len(req.Subjects) != 2 {
			writeError(w, log, badRequest("variant_id and exactly two subjects required"))
			return
		}
		mutate(w, r, reg, log, func(s *exam.Session) error {
			return s.Configure(req.VariantID, req.Subjects[0], req.Subjects[1])
		})
	}
}

func StartHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, reg, log, func(s *exam.Session) error { return s.Start() })
	}
}

func AnswerHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID string `json:"question_id"`
			Option     *int   `json:"option"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, log, err)
			return
		}
		if req.QuestionID == "" || req.Option == nil {
			writeError(w, log, badRequest("question_id and option required"))
			return
		}
		mutate(w, r, reg, log, func(s *exam.Session) error {
			return s.RecordAnswer(req.QuestionID, *req.Option)
		})
	}
}

func FlagHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID string `json:"question_id"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, log, err)
			return
		}
		if req.QuestionID == "" {
			writeError(w, log, badRequest("question_id required"))
			return
		}
		mutate(w, r, reg, log, func(s *exam.Session) error {
			return s.ToggleFlag(req.QuestionID)
		})
	}
}

func NavigateHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Action   string `json:"action"`
			Block    int    `json:"block"`
			Question int    `json:"question"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, log, err)
			return
		}

		var move func(s *exam.Session) error
		switch req.Action {
		case "next":
			move = func(s *exam.Session) error { return s.Next() }
		case "prev":
			move = func(s *exam.Session) error { return s.Prev() }
		case "jump":
			move = func(s *exam.Session) error { return s.Jump(req.Block, req.Question) }
		default:
			writeError(w, log, badRequest("action must be next, prev or jump"))
			return
		}
		mutate(w, r, reg, log, move)
	}
}

func FinishHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, reg, log, func(s *exam.Session) error {
			_, err := s.Finish()
			return err
		})
	}
}

func ReviewHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Block    int `json:"block"`
			Question int `json:"question"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, log, err)
			return
		}
		mutate(w, r, reg, log, func(s *exam.Session) error {
			return s.EnterReview(req.Block, req.Question)
		})
	}
}

func ShowResultsHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, reg, log, func(s *exam.Session) error { return s.ShowResults() })
	}
}

func ResetHandler(reg *registry.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, reg, log, func(s *exam.Session) error {
			s.Reset()
			return nil
		})
	}
}
