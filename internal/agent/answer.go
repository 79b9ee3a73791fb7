package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendahq/venda/internal/llm"
)

const answerSystem = "You are a helpful assistant that explains data insights clearly and concisely."

// answerTemperature gives the composer creative latitude for phrasing; every
// SQL-producing call stays at zero.
const answerTemperature = 0.7

// answer composes the prose explanation. When the repair budget was
// exhausted and an execution error is still present, a fixed apology
// containing the last error text is substituted and no model call is made.
func (w *Workflow) answer(ctx context.Context, s *State) error {
	if s.Error != "" {
		s.FinalAnswer = fmt.Sprintf(
			"I apologize, but I'm having trouble generating a correct SQL query for your question. Error: %s",
			s.Error,
		)
		return nil
	}

	prompt := fmt.Sprintf(`You are a helpful assistant that explains database query results in natural language.

Original Question: %s

SQL Query Used: %s

Query Results:
%s

Please provide a clear, concise answer to the original question based on the query results.
Format the answer in a user-friendly way. If the results contain numbers, present them clearly.
If there are multiple results, summarize them appropriately.

Answer:`, s.Question, s.SQLQuery, s.Result.Serialize())

	raw, err := w.llm.Complete(ctx, llm.Request{
		System:      answerSystem,
		Prompt:      prompt,
		Temperature: answerTemperature,
	})
	if err != nil {
		return fmt.Errorf("composing answer: %w", err)
	}

	s.FinalAnswer = strings.TrimSpace(raw)
	return nil
}
