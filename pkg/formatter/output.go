package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/helmcode/symptomai/pkg/model"
	"gopkg.in/yaml.v3"
)

// Report is the machine-readable output of an analysis.
type Report struct {
	Patient model.Patient         `json:"patient" yaml:"patient"`
	Result  *model.AnalysisResult `json:"result" yaml:"result"`
}

// DisplayResults formats and displays the analysis results
func DisplayResults(w io.Writer, patient model.Patient, result *model.AnalysisResult, format string) error {
	report := Report{Patient: patient, Result: result}
	switch format {
	case "json":
		return displayJSON(w, report)
	case "yaml":
		return displayYAML(w, report)
	case "human", "":
		displayHuman(w, report)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: human, json, yaml)", format)
	}
}

func displayJSON(w io.Writer, report Report) error {
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, report Report) error {
	output, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayHuman(w io.Writer, report Report) {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	p, r := report.Patient, report.Result

	fmt.Fprintln(w)
	cyan.Fprintln(w, "🩺 PATIENT:")
	fmt.Fprintf(w, "   %s, %d, %s\n\n", p.Name, p.Age, p.Gender)

	severityColor(r.SymptomSeverity).Fprintf(w, "📊 SYMPTOM SEVERITY: %s\n\n", strings.ToUpper(string(r.SymptomSeverity)))

	white.Fprintln(w, "📄 ANALYSIS:")
	fmt.Fprintln(w, wrapText(r.Analysis, 80, "   "))
	fmt.Fprintln(w)

	white.Fprintln(w, "👩‍⚕️ RECOMMENDED SPECIALIST:")
	fmt.Fprintf(w, "   %s\n\n", r.DoctorSuggestion)

	if r.IsSevere() {
		red.Fprintln(w, "🚨 URGENT CARE REQUIRED:")
		fmt.Fprintln(w, wrapText(r.UrgentCareInstructions, 80, "   "))
		fmt.Fprintln(w)
	} else {
		if len(r.SuggestedAppointments) > 0 {
			green.Fprintln(w, "📅 SUGGESTED APPOINTMENTS:")
			for i, a := range r.SuggestedAppointments {
				fmt.Fprintf(w, "   %d. %s at %s\n", i+1, a.Date, a.Time)
			}
			fmt.Fprintln(w)
		}
		if len(r.SuggestedMedications) > 0 {
			green.Fprintln(w, "💊 SUGGESTED MEDICATIONS:")
			for i, m := range r.SuggestedMedications {
				fmt.Fprintf(w, "   %d. %s\n", i+1, m.Name)
				fmt.Fprintf(w, "      Dosage: %s\n", m.Dosage)
			}
			fmt.Fprintln(w)
		}
	}

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "⚠️  %s\n", color.HiBlackString(r.Disclaimer))
}

func severityColor(s model.Severity) *color.Color {
	switch s {
	case model.SeveritySevere:
		return color.New(color.FgRed, color.Bold)
	case model.SeverityNotSevere:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
