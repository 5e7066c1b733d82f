package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/helmcode/symptomai/pkg/analyzer"
	"github.com/helmcode/symptomai/pkg/formatter"
	"github.com/helmcode/symptomai/pkg/intake"
	"github.com/helmcode/symptomai/pkg/model"
	"github.com/spf13/cobra"
)

var (
	patientForm  intake.Form
	outputFormat string
	llmProvider  string
	llmModel     string
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze symptoms from the terminal",
		Long: `Send patient details to the AI model and print the structured assessment.

Examples:
  # Analyze symptoms
  symptomai analyze --name "Jane Doe" --age 34 --gender Female \
    --symptoms "persistent headache and slight fever for two days"

  # Include a location and print JSON
  symptomai analyze --name Sam --age 52 --symptoms "chest pain and sweating" \
    --lat 40.7128 --lon -74.0060 -o json`,
		Args:          cobra.NoArgs,
		RunE:          runAnalyze,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&patientForm.Name, "name", "", "Patient full name")
	cmd.Flags().StringVar(&patientForm.Age, "age", "", "Patient age (1-120)")
	cmd.Flags().StringVar(&patientForm.Gender, "gender", "Male", "Patient gender (Male, Female, Other)")
	cmd.Flags().StringVarP(&patientForm.Symptoms, "symptoms", "s", "", "Description of the symptoms (at least 10 characters)")
	cmd.Flags().StringVar(&patientForm.Latitude, "lat", "", "Latitude of the patient (optional)")
	cmd.Flags().StringVar(&patientForm.Longitude, "lon", "", "Longitude of the patient (optional)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (gemini, claude, openai). Defaults to LLM_PROVIDER")
	cmd.Flags().StringVar(&llmModel, "model", "", "LLM model to use (overrides default)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	patient, coords, errs := patientForm.Validate()
	if !errs.Empty() {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			printError(fmt.Sprintf("%s: %s", field, errs[field]))
		}
		return fmt.Errorf("invalid patient details")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	a, err := analyzer.NewFromConfig(cmd.Context(), cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize AI provider: %w", err)
	}

	return analyzeAndDisplay(cmd, a, patient, coords)
}

// patientAnalyzer is the part of analyzer.Analyzer the command needs.
type patientAnalyzer interface {
	Analyze(ctx context.Context, patient model.Patient, coords *model.Coordinates) (*model.AnalysisResult, error)
	Model() string
}

// analyzeAndDisplay runs one analysis and prints it. Failures surface only
// as the generic message; the cause is already logged by the analyzer.
func analyzeAndDisplay(cmd *cobra.Command, a patientAnalyzer, patient model.Patient, coords *model.Coordinates) error {
	if coords == nil {
		printInfo("No location provided, analyzing without it")
	}

	// Create spinner for visual feedback
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" Analyzing symptoms with %s...", a.Model())
	s.Start()

	result, err := a.Analyze(cmd.Context(), patient, coords)
	s.Stop()
	if err != nil {
		return errors.New(analyzer.GenericErrorMessage)
	}
	printSuccess("Analysis complete")

	return formatter.DisplayResults(cmd.OutOrStdout(), patient, result, outputFormat)
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(os.Stderr, "✓ %s\n", msg)
}

func printInfo(msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(os.Stderr, "• %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Fprintf(os.Stderr, "✗ %s\n", msg)
}
