package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/helmcode/symptomai/pkg/model"
)

// ErrMalformedResponse is returned when the model's answer does not match
// the requested shape.
var ErrMalformedResponse = errors.New("received malformed or incomplete data from AI model")

var (
	leadingFenceRe  = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	trailingFenceRe = regexp.MustCompile("\\s*```$")
)

// wireResult mirrors model.AnalysisResult with pointers so that missing
// required fields can be told apart from empty ones.
type wireResult struct {
	SymptomSeverity        *string             `json:"symptomSeverity"`
	Analysis               *string             `json:"analysis"`
	DoctorSuggestion       *string             `json:"doctorSuggestion"`
	SuggestedAppointments  []model.Appointment `json:"suggestedAppointments"`
	SuggestedMedications   []model.Medication  `json:"suggestedMedications"`
	UrgentCareInstructions *string             `json:"urgentCareInstructions"`
	Disclaimer             *string             `json:"disclaimer"`
}

// ParseAnalysisResponse decodes and shape-checks a raw model answer. The
// returned result is normalized to its severity.
func ParseAnalysisResponse(raw string) (*model.AnalysisResult, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var w wireResult
	if err := json.Unmarshal([]byte(cleaned), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var missing []string
	if w.SymptomSeverity == nil {
		missing = append(missing, "symptomSeverity")
	}
	if w.Analysis == nil {
		missing = append(missing, "analysis")
	}
	if w.DoctorSuggestion == nil {
		missing = append(missing, "doctorSuggestion")
	}
	if w.Disclaimer == nil {
		missing = append(missing, "disclaimer")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	severity := model.Severity(*w.SymptomSeverity)
	if !severity.Valid() {
		return nil, fmt.Errorf("%w: unknown symptomSeverity %q", ErrMalformedResponse, *w.SymptomSeverity)
	}

	result := &model.AnalysisResult{
		SymptomSeverity:       severity,
		Analysis:              *w.Analysis,
		DoctorSuggestion:      *w.DoctorSuggestion,
		SuggestedAppointments: w.SuggestedAppointments,
		SuggestedMedications:  w.SuggestedMedications,
		Disclaimer:            *w.Disclaimer,
	}
	if w.UrgentCareInstructions != nil {
		result.UrgentCareInstructions = *w.UrgentCareInstructions
	}
	result.Normalize()
	return result, nil
}

// stripFences removes a markdown code fence such as ```json ... ``` wrapping
// the whole answer. Backticks inside the JSON are left alone.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = leadingFenceRe.ReplaceAllString(text, "")
	text = trailingFenceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
