package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codelens-ai/pydebug/service"
)

func samplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples [name]",
		Short: "List or print built-in buggy sample snippets",
		Long: `List the built-in sample snippets, or print one by name for piping
into analyze.

Examples:
  pydebug samples
  pydebug samples "Debug Print" | pydebug analyze -`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runSamples,
		SilenceUsage: true,
	}
}

func runSamples(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, s := range service.Samples() {
			fmt.Println(s.Name)
		}
		return nil
	}

	sample, ok := service.FindSample(args[0])
	if !ok {
		return fmt.Errorf("unknown sample: %s", args[0])
	}
	fmt.Println(sample.Code)
	return nil
}
