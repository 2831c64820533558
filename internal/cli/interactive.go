// Package cli implements the interactive terminal driver: it replays the
// workflow, prompts the operator for each suspended ability, and renders
// the final response.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/fernwald/espalier"
	"github.com/fernwald/espalier/internal/human"
	"github.com/fernwald/espalier/pkg/domain"
)

// RunInteractive drives a workflow session on a terminal. Every suspension
// prompts for one answer on in, then replays the run with the extended
// answer queue.
func RunInteractive(ctx context.Context, engine *espalier.Engine, seed domain.Seed, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	var answers []string

	for {
		state, err := engine.Run(ctx, seed, answers)
		if err != nil {
			return err
		}

		ability, suspended := state.Suspended()
		if !suspended {
			printSummary(out, state)
			return nil
		}

		fmt.Fprintf(out, "\n[%s] %s\n>>> ", ability, human.Prompt(state, ability))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			return fmt.Errorf("input closed while awaiting %s", ability)
		}
		answers = append(answers, strings.TrimSpace(scanner.Text()))
	}
}

func printSummary(out io.Writer, state domain.State) {
	fmt.Fprintln(out, "\n--- Support Ticket Summary ---")
	fmt.Fprintf(out, "Ticket:    %v\n", state["ticket_id"])
	fmt.Fprintf(out, "Customer:  %v <%v>\n", state["customer_name"], state["email"])
	fmt.Fprintf(out, "Priority:  %v\n", state["priority"])

	if update, ok := state["update_ticket"].(map[string]any); ok {
		if status, ok := update["status"].(string); ok && status != "" {
			fmt.Fprintf(out, "Status:    %s\n", status)
		}
	}
	if esc, ok := state["escalation_decision"].(map[string]any); ok && esc["escalate"] == true {
		fmt.Fprintln(out, "Escalated: routed to a human agent")
	}
	if kb, ok := state["knowledge_base_search"].(map[string]any); ok && kb["found"] == true {
		fmt.Fprintf(out, "KB match:  %v\n", kb["article_title"])
	}
	if errLog := state.ErrorLog(); len(errLog) > 0 {
		fmt.Fprintf(out, "Recovered failures: %d\n", len(errLog))
	}

	if response, ok := state["response_generation"].(string); ok && response != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderResponse(out, response))
	}
}

// renderResponse pretty-prints the generated message when the terminal
// supports it, falling back to the raw text otherwise.
func renderResponse(out io.Writer, response string) string {
	if termenv.NewOutput(outOrStdout(out)).ColorProfile() == termenv.Ascii {
		return response
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return response
	}
	rendered, err := renderer.Render(response)
	if err != nil {
		return response
	}
	return strings.TrimRight(rendered, "\n")
}

func outOrStdout(out io.Writer) io.Writer {
	if out != nil {
		return out
	}
	return os.Stdout
}
