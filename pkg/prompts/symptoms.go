package prompts

import (
	"fmt"

	"github.com/helmcode/symptomai/pkg/llm"
	"github.com/helmcode/symptomai/pkg/model"
)

// ResponseSchema is the JSON shape requested for every symptom analysis.
func ResponseSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"symptomSeverity": {
				Type:        llm.TypeString,
				Description: "An assessment of the symptom severity. Must be one of two values: 'Severe' or 'Not Severe'.",
				Enum:        []string{string(model.SeveritySevere), string(model.SeverityNotSevere)},
			},
			"analysis": {
				Type:        llm.TypeString,
				Description: "A brief, easy-to-understand analysis of the symptoms provided. Do not diagnose.",
			},
			"doctorSuggestion": {
				Type:        llm.TypeString,
				Description: "The type of specialist or doctor the patient should consider seeing (e.g., General Practitioner, Cardiologist).",
			},
			"suggestedAppointments": {
				Type:        llm.TypeArray,
				Description: "An array of three suggested appointment slots. This should only be provided for 'Not Severe' cases.",
				Items: &llm.Schema{
					Type: llm.TypeObject,
					Properties: map[string]*llm.Schema{
						"date": {Type: llm.TypeString, Description: "Suggested date in 'Month Day, YYYY' format (e.g., 'July 28, 2024')."},
						"time": {Type: llm.TypeString, Description: "Suggested time in 'HH:MM AM/PM' format (e.g., '10:30 AM')."},
					},
					Required: []string{"date", "time"},
				},
			},
			"suggestedMedications": {
				Type:        llm.TypeArray,
				Description: "An array of suggested over-the-counter medications. This should only be provided for 'Not Severe' cases.",
				Items: &llm.Schema{
					Type: llm.TypeObject,
					Properties: map[string]*llm.Schema{
						"name":   {Type: llm.TypeString, Description: "Name of the medication."},
						"dosage": {Type: llm.TypeString, Description: "Suggested dosage (e.g., '2 tablets every 4-6 hours')."},
					},
					Required: []string{"name", "dosage"},
				},
			},
			"urgentCareInstructions": {
				Type:        llm.TypeString,
				Description: "Urgent care instructions for the patient. This should only be provided for 'Severe' cases, and must recommend seeing a doctor within the hour and going to the nearest hospital.",
			},
			"disclaimer": {
				Type:        llm.TypeString,
				Description: "A standard medical disclaimer stating this is not medical advice and a doctor should be consulted.",
			},
		},
		Required: []string{"symptomSeverity", "analysis", "doctorSuggestion", "disclaimer"},
	}
}

// BuildSymptomPrompt embeds the patient record and, when known, the
// patient's location into the analysis instructions.
func BuildSymptomPrompt(p model.Patient, coords *model.Coordinates) string {
	locationInfo := "The patient's location is not available."
	if coords != nil {
		locationInfo = fmt.Sprintf("The patient is at location: latitude %g, longitude %g.", coords.Latitude, coords.Longitude)
	}

	return fmt.Sprintf(`A patient has submitted their information.
- Name: %s
- Age: %d
- Gender: %s
- Symptoms: %q
- %s

Your task is to act as a helpful AI health assistant. Based on the symptoms, provide a brief analysis and assess the symptom severity ('Severe' or 'Not Severe'). Do not give a medical diagnosis. The tone should be helpful and reassuring.

- IF the symptomSeverity is 'Severe': Provide 'urgentCareInstructions' advising the patient to seek medical attention at the nearest hospital within the next hour. Do not provide 'suggestedAppointments' or 'suggestedMedications'.
- IF the symptomSeverity is 'Not Severe': Provide a list of 'suggestedMedications' (over-the-counter) with dosages, and a list of three 'suggestedAppointments'. Do not provide 'urgentCareInstructions'.

Always provide an 'analysis', 'doctorSuggestion', and 'disclaimer'.
Ensure the output is a valid JSON object matching the provided schema.`,
		p.Name, p.Age, p.Gender, p.Symptoms, locationInfo)
}
