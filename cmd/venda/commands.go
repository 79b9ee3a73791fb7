package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vendahq/venda/internal/agent"
	"github.com/vendahq/venda/internal/chart"
	"github.com/vendahq/venda/internal/config"
	"github.com/vendahq/venda/internal/llm"
	"github.com/vendahq/venda/internal/storage"
)

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question by generating and running SQL",
	Long: `Answer a natural-language question by generating SQL, executing it
against the e-commerce database and summarizing the result.

Examples:
  venda ask "How many orders were delivered?"
  venda ask --stream "Can you give me yearly breakdown of the orders?"
  venda ask --renderer figure "Show me the distribution of order statuses"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question is required")
		}

		rendererName, _ := cmd.Flags().GetString("renderer")
		stream, _ := cmd.Flags().GetBool("stream")
		graphOut, _ := cmd.Flags().GetString("graph-out")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		setupLogging(cfg.Log.Level)

		wf, err := buildWorkflow(cfg, rendererName)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var resp agent.Response
		if stream {
			resp, err = streamQuestion(ctx, wf, question)
		} else {
			resp, err = wf.Run(ctx, question)
		}
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stdout, formatResponse(resp))

		if graphOut != "" {
			if err := saveArtifact(graphOut, resp); err != nil {
				return err
			}
			printSuccess("Saved %s artifact to %s", resp.GraphType, graphOut)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().String("renderer", "png", "chart renderer: png or figure")
	askCmd.Flags().Bool("stream", false, "print workflow steps as they run")
	askCmd.Flags().String("graph-out", "", "write the chart artifact to this file")
}

func streamQuestion(ctx context.Context, wf *agent.Workflow, question string) (agent.Response, error) {
	var last *agent.State
	for event := range wf.Stream(ctx, question) {
		switch event.Type {
		case agent.EventStart:
			printStep("%s", event.Node)
		case agent.EventError:
			return agent.Response{}, fmt.Errorf("workflow failed: %s", event.Err)
		case agent.EventFinal:
			last = event.State
		}
	}
	if last == nil {
		return agent.Response{}, ctx.Err()
	}
	return agent.Response{
		Question:      last.Question,
		SQLQuery:      last.SQLQuery,
		QueryResult:   last.Result.Serialize(),
		FinalAnswer:   last.FinalAnswer,
		Error:         last.Error,
		NeedsGraph:    last.NeedsGraph,
		GraphType:     string(last.GraphType),
		GraphArtifact: last.Artifact.Data,
		ContentType:   last.Artifact.ContentType,
	}, nil
}

func buildWorkflow(cfg config.Config, rendererName string) (*agent.Workflow, error) {
	client, err := llm.NewClient(llm.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	})
	if err != nil {
		return nil, err
	}

	var renderer chart.Renderer
	switch rendererName {
	case "png":
		renderer = chart.NewTemplateRenderer()
	case "figure":
		renderer = chart.NewFigureRenderer(client)
	default:
		return nil, fmt.Errorf("unknown renderer %q (expected png or figure)", rendererName)
	}

	return agent.New(client, renderer, cfg.Storage.DBPath), nil
}

func saveArtifact(path string, resp agent.Response) error {
	if resp.GraphArtifact == "" {
		return fmt.Errorf("no chart artifact to save")
	}

	data := []byte(resp.GraphArtifact)
	if resp.ContentType == "image/png" {
		decoded, err := base64.StdEncoding.DecodeString(resp.GraphArtifact)
		if err != nil {
			return fmt.Errorf("decoding chart image: %w", err)
		}
		data = decoded
	}
	return os.WriteFile(path, data, 0o644)
}

// --- demo ---

var demoQuestions = []struct {
	description string
	question    string
}{
	{"Simple count (no chart expected)", "How many orders were delivered?"},
	{"Yearly breakdown (line or bar chart expected)", "Can you give me yearly breakdown of the orders?"},
	{"Top categories (bar chart expected)", "What are the top 5 product categories by number of orders?"},
	{"Status distribution (pie chart expected)", "Show me the distribution of order statuses"},
	{"Single average (no chart expected)", "What is the average order value?"},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a canned set of questions showing chart decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		setupLogging(cfg.Log.Level)

		wf, err := buildWorkflow(cfg, "png")
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		for _, d := range demoQuestions {
			printStep("%s", d.description)
			resp, err := wf.Run(ctx, d.question)
			if err != nil {
				printError("%s: %v", d.question, err)
				if ctx.Err() != nil {
					return ctx.Err()
				}
				continue
			}
			fmt.Fprint(os.Stdout, formatResponse(resp))
			fmt.Fprintln(os.Stdout)
		}
		return nil
	},
}

// --- init ---

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema, optionally with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, _ := cmd.Flags().GetBool("sample")

		cfg, err := config.LoadStorage()
		if err != nil {
			return err
		}

		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		if sample {
			if err := store.SeedSample(); err != nil {
				return fmt.Errorf("seeding sample data: %w", err)
			}
			printSuccess("Database ready at %s (sample data loaded)", cfg.DBPath)
			return nil
		}

		printSuccess("Database ready at %s", cfg.DBPath)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("sample", false, "load a small sample dataset after migrating")
}

// --- verify ---

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the setup: API key, database file, schema, row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("OPENAI_API_KEY") != "" {
			printStatus("API key", "set")
		} else {
			printWarning("OPENAI_API_KEY is not set; `ask` and `serve` will fail")
		}

		cfg, err := config.LoadStorage()
		if err != nil {
			return err
		}

		if cfg.DBPath != ":memory:" {
			if _, err := os.Stat(cfg.DBPath); err != nil {
				printError("database file %s does not exist; run `venda init`", cfg.DBPath)
				return fmt.Errorf("database file: %w", err)
			}
		}

		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		statuses, err := store.Verify()
		if err != nil {
			printError("schema check failed: %v", err)
			return err
		}

		empty := 0
		for _, ts := range statuses {
			printStatus(ts.Name, "%d rows", ts.Rows)
			if ts.Rows == 0 {
				empty++
			}
		}

		var one int
		if err := store.DB().QueryRow("SELECT 1").Scan(&one); err != nil {
			printError("round-trip query failed: %v", err)
			return err
		}

		if empty > 0 {
			printWarning("%d empty tables; run `venda init --sample` to load sample data", empty)
		} else {
			printSuccess("All %d tables present", len(statuses))
		}
		return nil
	},
}
