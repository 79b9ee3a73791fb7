package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/vendahq/venda/internal/agent"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+msg))
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+msg))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorYellow, "⚠ "+msg))
}

func printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	l := colorize(colorBold, label+":")
	fmt.Fprintf(os.Stderr, "  %s %s\n", l, val)
}

func printStep(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorCyan, "→ "+msg))
}

// formatResponse renders a workflow response for terminal output.
func formatResponse(resp agent.Response) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", colorize(colorBold, "Question:"), resp.Question)
	if resp.SQLQuery != "" {
		fmt.Fprintf(&b, "%s\n  %s\n", colorize(colorBold, "SQL:"), resp.SQLQuery)
	}
	fmt.Fprintf(&b, "%s %s\n", colorize(colorBold, "Answer:"), resp.FinalAnswer)
	if resp.Error != "" {
		fmt.Fprintf(&b, "%s %s\n", colorize(colorRed, "Error:"), resp.Error)
	}
	if resp.NeedsGraph {
		fmt.Fprintf(&b, "%s %s", colorize(colorBold, "Chart:"), resp.GraphType)
		if resp.GraphArtifact != "" {
			fmt.Fprintf(&b, " (%s, %d bytes)", resp.ContentType, len(resp.GraphArtifact))
		} else {
			fmt.Fprint(&b, " (rendering failed)")
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}
