package agent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Results are capped for downstream display even when the underlying result
// set is larger.
const maxResultRows = 100

// execute runs the current candidate SQL against the embedded store. Engine
// failures never propagate as Go errors: they land in s.Error and drive the
// repair branch. Result and error are mutually exclusive after this step.
func (w *Workflow) execute(ctx context.Context, s *State) error {
	result, err := runQuery(ctx, w.dbPath, s.SQLQuery)
	if err != nil {
		// Caller cancellation is not an engine failure; surface it.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		s.Error = fmt.Sprintf("SQL execution error: %v", err)
		s.Result = nil
		return nil
	}

	s.Result = result
	s.Error = ""
	return nil
}

// runQuery opens a scoped connection for the duration of the call, executes
// exactly one statement, and materializes up to maxResultRows rows.
func runQuery(ctx context.Context, path, query string) (*Result, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columns}
	for rows.Next() && len(result.Rows) < maxResultRows {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(result.Rows) == 0 {
		result.Empty = true
	}
	return result, nil
}

// normalizeValue maps driver values onto plain Go types that serialize
// cleanly: text as string, everything else as returned by the engine.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
