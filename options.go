package curvefit

import (
	"fmt"
	"io"

	"github.com/aouyang1/go-curvefit/util"
)

const DefaultPlotPoints = 100

// ModelKind names the curve family to fit
type ModelKind string

const (
	ModelPolynomial  ModelKind = "polynomial"
	ModelExponential ModelKind = "exponential"
)

// OutlierOptions configures the Tukey fences used to flag samples with unusually large residuals
// after a fit. Flagged samples are reported only and never removed from the fit.
type OutlierOptions struct {
	LowerPercentile float64 `json:"lower_percentile"`
	UpperPercentile float64 `json:"upper_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

func NewDefaultOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		LowerPercentile: 0.25,
		UpperPercentile: 0.75,
		TukeyFactor:     1.5,
	}
}

// Options configures the curve family and degree to fit along with reporting options
type Options struct {
	Model ModelKind `json:"model"`

	// Degree is only used by polynomial models
	Degree int `json:"degree"`

	// PlotPoints is the number of evenly spaced x values the fitted curve is evaluated at
	// when plotting
	PlotPoints int `json:"plot_points"`

	OutlierOptions *OutlierOptions `json:"outlier_options,omitempty"`
}

// NewDefaultOptions returns options for a straight line fit
func NewDefaultOptions() *Options {
	return &Options{
		Model:          ModelPolynomial,
		Degree:         1,
		PlotPoints:     DefaultPlotPoints,
		OutlierOptions: NewDefaultOutlierOptions(),
	}
}

// Validate runs basic validation on the options filling in defaults where unset
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	switch o.Model {
	case "":
		o.Model = ModelPolynomial
	case ModelPolynomial, ModelExponential:
	default:
		return nil, fmt.Errorf("got model %q, %w", o.Model, ErrUnknownModel)
	}
	if o.Model == ModelPolynomial && o.Degree < 0 {
		return nil, fmt.Errorf("got degree %d, %w", o.Degree, ErrNegativeDegree)
	}
	if o.PlotPoints <= 0 {
		o.PlotPoints = DefaultPlotPoints
	}
	return o, nil
}

func (o *Options) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if _, err := fmt.Fprintf(w, "%s%sModel: %s\n", prefix, util.IndentExpand(indent, indentGrowth), o.Model); err != nil {
		return err
	}
	if o.Model == ModelPolynomial {
		if _, err := fmt.Fprintf(w, "%s%sDegree: %d\n", prefix, util.IndentExpand(indent, indentGrowth), o.Degree); err != nil {
			return err
		}
	}
	return nil
}
