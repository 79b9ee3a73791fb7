package agent

import (
	"context"
	"fmt"

	"github.com/vendahq/venda/internal/llm"
)

const repairSystem = "You are a SQL expert. Fix the SQL query to resolve the error."

// repair feeds the failed SQL with its execution error back to the model and
// stores the corrected statement. The error is cleared before the next
// execution attempt; the attempt counter moves forward.
func (w *Workflow) repair(ctx context.Context, s *State) error {
	prompt := fmt.Sprintf(`The following SQL query failed with an error. Please fix it.

%s

Original Question: %s

Failed SQL Query: %s

Error: %s

Generate a corrected SQL query that will work. Return ONLY the SQL query without any explanation or markdown formatting:`,
		schemaInfo, s.Question, s.SQLQuery, s.Error)

	raw, err := w.llm.Complete(ctx, llm.Request{
		System:      repairSystem,
		Prompt:      prompt,
		Temperature: 0,
	})
	if err != nil {
		return fmt.Errorf("repairing query: %w", err)
	}

	s.SQLQuery = stripFences(raw)
	s.Error = ""
	s.Iteration++
	return nil
}
