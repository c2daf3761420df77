package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ExamResultsColumns holds one scored sitting per row; payload is the
	// full exam.Result as JSON.
	ExamResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "result_id", Type: field.TypeString, Unique: true, Size: 36},
		{Name: "variant_id", Type: field.TypeString},
		{Name: "percent", Type: field.TypeInt},
		{Name: "finished_at", Type: field.TypeTime},
		{Name: "payload", Type: field.TypeJSON},
	}
	ExamResultsTable = &schema.Table{
		Name:       "exam_results",
		Columns:    ExamResultsColumns,
		PrimaryKey: []*schema.Column{ExamResultsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "examresult_finished_at", Columns: []*schema.Column{ExamResultsColumns[4]}},
		},
	}

	// SessionEventsColumns records session lifecycle events (start/finish).
	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "variant_id", Type: field.TypeString, Default: ""},
		{Name: "subjects", Type: field.TypeString, Default: ""},
		{Name: "questions", Type: field.TypeInt, Default: 0},
		{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	}
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
			{Name: "sessionevent_action", Columns: []*schema.Column{SessionEventsColumns[4]}},
		},
	}

	// GlobalSequenceColumns backs the shared event sequence counter.
	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	GlobalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	// Tables lists every table auto-migration creates.
	Tables = []*schema.Table{
		ExamResultsTable,
		SessionEventsTable,
		GlobalSequenceTable,
	}
)
