package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fernwald/espalier"
	"github.com/fernwald/espalier/internal/cli"
	"github.com/fernwald/espalier/pkg/config"
	"github.com/fernwald/espalier/pkg/domain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a support workflow interactively",
	Long: `Starts a workflow for one customer request and drives it on the
terminal, prompting for human input whenever the run suspends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := backendFromFlags(cmd)
		if err != nil {
			return err
		}

		opts := []espalier.Option{espalier.WithLogger(loggerFromFlags(cmd))}
		if path, _ := cmd.Flags().GetString("stages"); path != "" {
			wf, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			opts = append(opts, espalier.WithStages(wf.Stages))
		}

		engine, err := espalier.New(backend, opts...)
		if err != nil {
			return err
		}

		seed := domain.Seed{}
		seed.CustomerName, _ = cmd.Flags().GetString("name")
		seed.Email, _ = cmd.Flags().GetString("email")
		seed.Query, _ = cmd.Flags().GetString("query")
		seed.Priority, _ = cmd.Flags().GetString("priority")
		seed.TicketID, _ = cmd.Flags().GetInt("ticket")
		if seed.CustomerName == "" || seed.Email == "" || seed.Query == "" {
			return fmt.Errorf("--name, --email and --query are required")
		}

		return cli.RunInteractive(cmd.Context(), engine, seed, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("name", "", "Customer name")
	runCmd.Flags().String("email", "", "Customer email")
	runCmd.Flags().String("query", "", "Free-text description of the issue")
	runCmd.Flags().String("priority", "high", "Initial priority")
	runCmd.Flags().Int("ticket", 123, "Ticket identifier")
	runCmd.Flags().String("stages", "", "YAML file with a custom stage configuration")
}
