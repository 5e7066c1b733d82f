package main

import (
	"fmt"
	"os"

	"github.com/helmcode/symptomai/cmd"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "symptomai",
		Short: "AI-powered symptom analysis",
		Long: `symptomai collects patient-reported symptoms, asks a generative-AI model
for a structured assessment and shows the severity, an analysis and either
urgent-care instructions or suggested appointments and medications.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewServeCmd(),
		cmd.NewAnalyzeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("symptomai version %s\n", version)
		},
	}
}
