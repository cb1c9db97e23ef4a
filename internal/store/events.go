package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// LLMEventData captures one LLM call for the audit log.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a logged LLM call as read back from the store.
type LLMEvent struct {
	ID        string
	Timestamp time.Time
	LLMEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = a default of 50)
	Purpose string // filter by purpose label when non-empty
}

// EventRepo provides access to the LLM event log.
type EventRepo interface {
	// AppendLLMEvent records one LLM call.
	AppendLLMEvent(ctx context.Context, data LLMEventData) error

	// QueryLLMEvents returns logged calls, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event by ID.
	GetLLMEvent(ctx context.Context, id string) (*LLMEvent, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMEvent(ctx context.Context, data LLMEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events
			(id, timestamp, purpose, provider, model, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		time.Now().UTC(),
		data.Purpose,
		data.Provider,
		data.Model,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
		data.RequestBody,
		data.ResponseBody,
	)
	return err
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, timestamp, purpose, provider, model, input_tokens, output_tokens,
		       latency_ms, success, error_message, request_body, response_body
		FROM llm_events`
	args := []any{}
	if opts.Purpose != "" {
		query += " WHERE purpose = ?"
		args = append(args, opts.Purpose)
	}
	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		var e LLMEvent
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.Purpose, &e.Provider, &e.Model,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id string) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, timestamp, purpose, provider, model, input_tokens, output_tokens,
		       latency_ms, success, error_message, request_body, response_body
		FROM llm_events WHERE id = ?`, id)

	var e LLMEvent
	err := row.Scan(
		&e.ID, &e.Timestamp, &e.Purpose, &e.Provider, &e.Model,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// NopEventRepo discards events. Used when the event log is disabled.
type NopEventRepo struct{}

func (NopEventRepo) AppendLLMEvent(context.Context, LLMEventData) error { return nil }
func (NopEventRepo) QueryLLMEvents(context.Context, QueryOpts) ([]LLMEvent, error) {
	return nil, nil
}
func (NopEventRepo) GetLLMEvent(context.Context, string) (*LLMEvent, error) { return nil, nil }
