package curvefit

import "github.com/aouyang1/go-curvefit/stats"

// Results holds the fit evaluated at the training samples
type Results struct {
	X            []float64     `json:"x"`
	Observed     []float64     `json:"observed"`
	Predicted    []float64     `json:"predicted"`
	Residuals    []float64     `json:"residuals"`
	SquaredError float64       `json:"squared_error"`
	Scores       *stats.Scores `json:"scores"`
	Outliers     []int         `json:"outliers,omitempty"`
}
