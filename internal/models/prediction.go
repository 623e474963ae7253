package models

import (
	"fmt"
	"math"
)

// RiskClass is the binary outcome of the prediction service.
type RiskClass string

const (
	RiskLow  RiskClass = "low"
	RiskHigh RiskClass = "high"
)

// Label returns the display form of the risk class.
func (r RiskClass) Label() string {
	if r == RiskHigh {
		return "High Risk"
	}
	return "Low Risk"
}

// PredictionOutcome is the classification returned by the prediction
// service: a risk class plus the model's confidence in [0,1].
type PredictionOutcome struct {
	RiskClass  RiskClass `json:"risk_class"`
	Confidence float64   `json:"confidence"`
}

// Summary produces the one-line result shown to the user, with the
// confidence rounded to the nearest percent.
func (o PredictionOutcome) Summary() string {
	return fmt.Sprintf("%s, %d%% confidence", o.RiskClass.Label(), int(math.Round(o.Confidence*100)))
}

// PredictionRequest is the wire format of the prediction service. The
// model was trained on integer-coded features, so enums and booleans are
// mapped to the codes it expects.
type PredictionRequest struct {
	Age         int `json:"age"` // days
	Gender      int `json:"gender"`
	Height      int `json:"height"`
	Weight      int `json:"weight"`
	ApHi        int `json:"ap_hi"`
	ApLo        int `json:"ap_lo"`
	Cholesterol int `json:"cholesterol"`
	Gluc        int `json:"gluc"`
	Smoke       int `json:"smoke"`
	Alco        int `json:"alco"`
	Active      int `json:"active"`
}

// PredictionResponse is the raw body returned by the prediction service.
type PredictionResponse struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
}

// Outcome maps the raw response to a typed outcome. Prediction 1 denotes
// high risk.
func (r PredictionResponse) Outcome() PredictionOutcome {
	class := RiskLow
	if r.Prediction == 1 {
		class = RiskHigh
	}
	return PredictionOutcome{RiskClass: class, Confidence: r.Probability}
}

// PredictorRequest encodes the input for the prediction service.
func (in AssessmentInput) PredictorRequest() PredictionRequest {
	return PredictionRequest{
		Age:         in.Age,
		Gender:      genderCode(in.Gender),
		Height:      in.Height,
		Weight:      in.Weight,
		ApHi:        in.SystolicBP,
		ApLo:        in.DiastolicBP,
		Cholesterol: levelCode(in.Cholesterol),
		Gluc:        levelCode(in.Glucose),
		Smoke:       boolCode(in.Smoker),
		Alco:        boolCode(in.Alcohol),
		Active:      boolCode(in.PhysicallyActive),
	}
}

func genderCode(g Gender) int {
	if g == GenderFemale {
		return 2
	}
	return 1
}

func levelCode(l Level) int {
	switch l {
	case LevelAboveNormal:
		return 2
	case LevelWellAboveNormal:
		return 3
	default:
		return 1
	}
}

func boolCode(b bool) int {
	if b {
		return 1
	}
	return 0
}
