package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vendahq/venda/internal/chart"
	"github.com/vendahq/venda/internal/llm"
)

// node names the steps of the workflow graph.
type node string

const (
	nodeSynthesize node = "synthesize"
	nodeExecute    node = "execute"
	nodeRepair     node = "repair"
	nodeAnswer     node = "answer"
	nodePlan       node = "plan_visualization"
	nodeRender     node = "render"
	nodeEnd        node = "end"
)

const (
	// maxRepairIteration bounds the repair cycle: execution attempts with
	// iteration beyond it exhaust the budget (4 attempts total).
	maxRepairIteration = 3

	// maxSteps is a defensive ceiling on the whole graph traversal,
	// independent of the repair bound.
	maxSteps = 50
)

// Workflow wires synthesis, execution, repair, answering, planning, and
// rendering into one directed graph. Construct it once at process start and
// reuse it across requests; each request gets its own State and its own
// scoped database connection.
type Workflow struct {
	llm      llm.ChatCompleter
	renderer chart.Renderer
	dbPath   string
}

// New creates a Workflow over the given model client, renderer, and SQLite
// database path.
func New(client llm.ChatCompleter, renderer chart.Renderer, dbPath string) *Workflow {
	return &Workflow{
		llm:      client,
		renderer: renderer,
		dbPath:   dbPath,
	}
}

// Run processes one question to completion and returns the flat response
// projection. Model call failures in synthesis, answering, or planning
// propagate as errors; execution failures are absorbed by the repair loop.
func (w *Workflow) Run(ctx context.Context, question string) (Response, error) {
	s := newState(question)
	if err := w.run(ctx, s, nil); err != nil {
		return Response{}, err
	}
	return s.response(), nil
}

// EventType classifies streamed workflow events.
type EventType string

const (
	EventStart EventType = "start"
	EventEnd   EventType = "end"
	EventError EventType = "error"
	EventFinal EventType = "final"
)

// Event is one step-boundary notification with a state snapshot.
type Event struct {
	Type  EventType `json:"type"`
	Node  string    `json:"node,omitempty"`
	State *State    `json:"state,omitempty"`
	Err   string    `json:"error,omitempty"`
}

// Stream runs the same computation as Run but emits start/end events at
// every step boundary, then a final (or error) event, and closes the
// channel. Execution is cooperative: one step at a time, suspending at each
// boundary. Cancelling the context abandons the run between steps.
func (w *Workflow) Stream(ctx context.Context, question string) <-chan Event {
	ch := make(chan Event)
	go func() {
		defer close(ch)
		s := newState(question)
		emit := func(e Event) bool {
			select {
			case ch <- e:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if err := w.run(ctx, s, emit); err != nil {
			emit(Event{Type: EventError, State: s.snapshot(), Err: err.Error()})
			return
		}
		emit(Event{Type: EventFinal, State: s.snapshot()})
	}()
	return ch
}

// run drives the graph traversal. emit may be nil for synchronous runs; when
// present it is called at each step boundary and may abort the run by
// returning false (consumer gone).
func (w *Workflow) run(ctx context.Context, s *State, emit func(Event) bool) error {
	n := nodeSynthesize
	for steps := 0; n != nodeEnd; steps++ {
		if steps >= maxSteps {
			return fmt.Errorf("workflow exceeded %d steps at node %s", maxSteps, n)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if emit != nil && !emit(Event{Type: EventStart, Node: string(n), State: s.snapshot()}) {
			return ctx.Err()
		}
		if err := w.step(ctx, n, s); err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
		if emit != nil && !emit(Event{Type: EventEnd, Node: string(n), State: s.snapshot()}) {
			return ctx.Err()
		}

		n = w.route(n, s)
		slog.Debug("workflow step complete",
			"run_id", s.RunID, "next", n, "iteration", s.Iteration, "has_error", s.Error != "")
	}
	return nil
}

// step dispatches one node.
func (w *Workflow) step(ctx context.Context, n node, s *State) error {
	switch n {
	case nodeSynthesize:
		return w.synthesize(ctx, s)
	case nodeExecute:
		return w.execute(ctx, s)
	case nodeRepair:
		return w.repair(ctx, s)
	case nodeAnswer:
		return w.answer(ctx, s)
	case nodePlan:
		return w.plan(ctx, s)
	case nodeRender:
		return w.render(ctx, s)
	default:
		return fmt.Errorf("unknown node %q", n)
	}
}

// route returns the next node given the state after the current step.
func (w *Workflow) route(n node, s *State) node {
	switch n {
	case nodeSynthesize, nodeRepair:
		return nodeExecute
	case nodeExecute:
		if s.Error == "" {
			return nodeAnswer
		}
		if s.Iteration > maxRepairIteration {
			// Budget exhausted: terminal branch through the answer step,
			// which substitutes the apology without a model call.
			return nodeAnswer
		}
		return nodeRepair
	case nodeAnswer:
		return nodePlan
	case nodePlan:
		if s.NeedsGraph {
			return nodeRender
		}
		return nodeEnd
	case nodeRender:
		return nodeEnd
	default:
		return nodeEnd
	}
}

// render produces the chart artifact. Rendering failure leaves the artifact
// empty and never fails the run.
func (w *Workflow) render(ctx context.Context, s *State) error {
	if w.renderer == nil || s.Result == nil {
		return nil
	}
	s.Artifact = w.renderer.Render(ctx, chart.Request{
		Question: s.Question,
		Type:     s.GraphType,
		Columns:  s.Result.Columns,
		Rows:     s.Result.Rows,
	})
	return nil
}
