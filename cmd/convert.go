package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cpusim/sim/workload"
)

var convertCmd = &cobra.Command{
	Use:   "convert <workload-file>",
	Short: "Convert a workload file to YAML",
	Long:  "Convert a plain-text (or YAML) workload file to the YAML workload format. Output is written to stdout for piping.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := workload.Load(args[0])
		if err != nil {
			logrus.Fatalf("Workload conversion failed: %v", err)
		}
		data, err := workload.FromWorkload(w).Encode()
		if err != nil {
			logrus.Fatalf("Workload conversion failed: %v", err)
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			logrus.Fatalf("Writing converted workload: %v", err)
		}
	},
}
