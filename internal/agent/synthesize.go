package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendahq/venda/internal/llm"
)

const synthesizeSystem = "You are a SQL expert. Generate only valid SQLite queries without any formatting or explanation."

// synthesize turns the question into a candidate SQL statement. A single
// deterministic model call; call failure is fatal and propagates.
func (w *Workflow) synthesize(ctx context.Context, s *State) error {
	prompt := fmt.Sprintf(`You are a SQL expert. Convert the following natural language question into a valid SQLite query.

%s

Question: %s

Important Guidelines:
1. Use only the tables and columns mentioned in the schema
2. Use proper JOIN clauses when querying multiple tables
3. Return ONLY the SQL query without any explanation or markdown formatting
4. Do not include semicolons at the end
5. Use aggregate functions (COUNT, SUM, AVG, etc.) appropriately
6. Add LIMIT clauses for queries that might return many rows (default LIMIT 10 unless user specifies)
7. Use proper WHERE clauses to filter data
8. For date comparisons, remember the dates are stored as TEXT in ISO format

Generate the SQL query:`, schemaInfo, s.Question)

	raw, err := w.llm.Complete(ctx, llm.Request{
		System:      synthesizeSystem,
		Prompt:      prompt,
		Temperature: 0,
	})
	if err != nil {
		return fmt.Errorf("synthesizing query: %w", err)
	}

	s.SQLQuery = stripFences(raw)
	s.Iteration++
	return nil
}

// stripFences removes markdown code-fence markers and the trailing statement
// separator the prompt forbids but models occasionally emit anyway.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```sql", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}
