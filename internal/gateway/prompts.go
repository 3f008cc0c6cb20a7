package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/wolfman30/medmatch/internal/directory"
)

// doctorProfile is the reduced doctor record sent to the matcher. Ratings,
// images and availability are left out to keep the payload small.
type doctorProfile struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Specialty directory.Specialty `json:"specialty"`
	Bio       string              `json:"bio"`
	Location  string              `json:"location"`
}

func minifyDoctors(doctors []directory.Doctor) []doctorProfile {
	out := make([]doctorProfile, len(doctors))
	for i, d := range doctors {
		out[i] = doctorProfile{ID: d.ID, Name: d.Name, Specialty: d.Specialty, Bio: d.Bio, Location: d.Location}
	}
	return out
}

func specialistPrompt(query string, doctors []directory.Doctor) (string, error) {
	profiles, err := json.Marshal(minifyDoctors(doctors))
	if err != nil {
		return "", fmt.Errorf("gateway: marshal doctor profiles: %w", err)
	}
	return fmt.Sprintf(`You are a helpful medical receptionist assistant.
Patient Symptoms/Query: %q

Available Doctors List (JSON):
%s

Task: Analyze the patient's query and identify the top 1-3 most suitable doctors from the provided list.
Consider the specialty and bio.
Return a JSON array of objects.`, query, profiles), nil
}

// matchSchema is the array-of-matches shape the matcher must return.
var matchSchema = &Schema{
	Type: TypeArray,
	Items: &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"id":          {Type: TypeString},
			"matchReason": {Type: TypeString, Description: "A brief explanation why this doctor is a good match for the symptoms."},
			"confidence":  {Type: TypeNumber, Description: "A number between 0 and 1 indicating match confidence."},
		},
		Required: []string{"id", "matchReason", "confidence"},
	},
}

func bioPrompt(req directory.BioRequest) string {
	return fmt.Sprintf(`Write a professional, trustworthy, and concise medical biography (max 40 words) for a doctor.
Name: %s
Specialty: %s
Years of Experience: %d
Key Interests/Focus: %s

Tone: Warm, professional, and competent.
Do not use markdown formatting.`, req.Name, req.Specialty, req.YearsExperience, req.Keywords)
}

func clinicalPrompt(query string) string {
	return fmt.Sprintf(`You are a clinical AI assistant designed to help medical professionals.
Answer the following clinical question comprehensively using the provided search tools.
Focus on evidence-based medicine, recent studies, and clinical guidelines.

Question: %s`, query)
}
