package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codelens-ai/pydebug/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pydebug",
		Short: "pydebug - AI-assisted Python debugging",
		Long: `pydebug statically checks Python source for shallow bug patterns and
asks a hosted language model to explain probable bugs and suggest fixes.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(samplesCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		// Handle custom exit codes from check command
		if exitErr, ok := err.(*CheckExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("pydebug version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
