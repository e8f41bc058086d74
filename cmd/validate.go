package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// validateCmd checks a YAML flow definition without generating anything.
var validateCmd = &cobra.Command{
	Use:   "validate <flow.yaml>",
	Short: "Validate a flow definition and print its stage table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := LoadFlowSpec(args[0])
		if err != nil {
			logrus.Fatalf("loading flow spec: %v", err)
		}
		flow, err := spec.ToFlow()
		if err != nil {
			logrus.Fatalf("invalid flow spec %s: %v", args[0], err)
		}

		fmt.Printf("flow: %d stages, pivot %q (index %d)\n", flow.Len(), flow.Pivot, flow.PivotIndex())
		for i, st := range flow.Stages {
			marker := " "
			if i == flow.PivotIndex() {
				marker = "*"
			}
			line := fmt.Sprintf("%s %2d  %-35s dur [%6.1f, %6.1f] min  chance %.2f", marker, i, st.Name, st.DurationMin, st.DurationMax, st.Chance)
			if st.ReworkTo != "" {
				line += fmt.Sprintf("  rework -> %s", st.ReworkTo)
			}
			if cp, ok := flow.ReworkOverrides[st.Name]; ok {
				line += fmt.Sprintf("  checkpoint -> %s", cp)
			}
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
