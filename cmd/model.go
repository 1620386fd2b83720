package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtakeda/annealsched/config"
	"github.com/mtakeda/annealsched/core/qubo"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Encode the configured problem and print model statistics",
	RunE:  inspectModel,
}

func init() {
	rootCmd.AddCommand(modelCmd)
}

func inspectModel(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prob := cfg.Problem
	m := qubo.Encode(prob.Tasks, prob.People, prob.Slots, cfg.Weights.Weights())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "tasks:        %d\n", len(prob.Tasks))
	fmt.Fprintf(out, "people:       %d\n", len(prob.People))
	fmt.Fprintf(out, "slots:        %d\n", prob.Slots)
	fmt.Fprintf(out, "variables:    %d\n", m.NumVariables())
	fmt.Fprintf(out, "interactions: %d\n", m.NumInteractions())
	fmt.Fprintf(out, "offset:       %.4f\n", m.Offset())
	fmt.Fprintf(out, "max field:    %.4f\n", m.MaxAbsField())
	return nil
}
