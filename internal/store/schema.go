package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableKnowledgeBases = "knowledge_bases"
	tableWorkspaces     = "workspaces"
	tableQuestions      = "questions"
	tableLLMEvents      = "llm_request_events"
)

var (
	knowledgeBaseColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 64},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "type", Type: field.TypeString, Size: 16},
		{Name: "color", Type: field.TypeString, Default: ""},
		{Name: "item_count", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	knowledgeBasesTable = &schema.Table{
		Name:       tableKnowledgeBases,
		Columns:    knowledgeBaseColumns,
		PrimaryKey: []*schema.Column{knowledgeBaseColumns[0]},
		Indexes: []*schema.Index{
			{Name: "knowledgebase_type", Columns: []*schema.Column{knowledgeBaseColumns[3]}},
		},
	}

	// One JSON document per knowledge base holding its tool state.
	workspaceColumns = []*schema.Column{
		{Name: "base_id", Type: field.TypeString, Size: 64},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "updated_at", Type: field.TypeInt64},
		{Name: "data", Type: field.TypeString, Size: 1 << 24},
	}
	workspacesTable = &schema.Table{
		Name:       tableWorkspaces,
		Columns:    workspaceColumns,
		PrimaryKey: []*schema.Column{workspaceColumns[0]},
	}

	questionColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 64},
		{Name: "title", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "difficulty", Type: field.TypeString, Size: 16},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "tags", Type: field.TypeString, Default: "[]"},
		{Name: "solution", Type: field.TypeString, Default: ""},
		{Name: "hints", Type: field.TypeString, Default: "[]"},
		{Name: "created_at", Type: field.TypeInt64},
	}
	questionsTable = &schema.Table{
		Name:       tableQuestions,
		Columns:    questionColumns,
		PrimaryKey: []*schema.Column{questionColumns[0]},
		Indexes: []*schema.Index{
			{Name: "question_difficulty", Columns: []*schema.Column{questionColumns[3]}},
			{Name: "question_created_at", Columns: []*schema.Column{questionColumns[8]}},
		},
	}

	llmEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	llmEventsTable = &schema.Table{
		Name:       tableLLMEvents,
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_provider", Columns: []*schema.Column{llmEventColumns[3]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{llmEventColumns[9]}},
		},
	}

	// tables lists every table managed by migration.
	tables = []*schema.Table{
		knowledgeBasesTable,
		workspacesTable,
		questionsTable,
		llmEventsTable,
	}
)
