package inference

import "context"

// Severity labels in clinical order, matching the pretrained network's
// output indices.
var Classes = []string{"No DR", "Mild", "Moderate", "Severe", "Proliferative"}

// ClassDescriptions expands each label for the /classes endpoint.
var ClassDescriptions = map[string]string{
	"No DR":         "No Diabetic Retinopathy detected",
	"Mild":          "Mild Non-Proliferative Diabetic Retinopathy",
	"Moderate":      "Moderate Non-Proliferative Diabetic Retinopathy",
	"Severe":        "Severe Non-Proliferative Diabetic Retinopathy",
	"Proliferative": "Proliferative Diabetic Retinopathy",
}

var riskScores = map[string]int{
	"No DR":         10,
	"Mild":          40,
	"Moderate":      60,
	"Severe":        80,
	"Proliferative": 95,
}

// RiskScore maps a severity label onto the 0-100 numeric scale. Unknown
// labels land in the middle rather than failing the screening.
func RiskScore(label string) int {
	if score, ok := riskScores[label]; ok {
		return score
	}
	return 50
}

// Result contains the outcome returned by the model-serving service.
type Result struct {
	Label            string
	LabelIndex       int
	Confidence       float64
	ClassScores      map[string]float64
	HeatmapAvailable bool
	HeatmapFilename  string
}

// Client exposes the subset of classifier functionality used by the
// screening flow.
type Client interface {
	Classify(ctx context.Context, screeningID string, imageBytes []byte) (*Result, error)
}
