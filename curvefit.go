// Package curvefit fits polynomial and exponential curves to (x, y) samples by least squares,
// evaluates the fitted curve and scores the fit by its sum of squared residuals.
package curvefit

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aouyang1/go-curvefit/dataset"
	"github.com/aouyang1/go-curvefit/models"
	"github.com/aouyang1/go-curvefit/stats"
	"github.com/go-echarts/go-echarts/v2/components"
)

var (
	ErrUnknownModel     = errors.New("unknown model kind")
	ErrNegativeDegree   = errors.New("negative polynomial degree not allowed")
	ErrUntrainedFitter  = errors.New("fitter has not been trained yet")
	ErrNoOptionsInModel = errors.New("no options set in model")
)

// Fitter fits a curve model and can be used to evaluate the fitted curve at new x values
type Fitter struct {
	opt   *Options
	model models.Model

	fitTrainingData *dataset.Dataset
	fitResults      *Results
}

// New creates a new instance of a Fitter using the provided options. If no options are provided
// a straight line fit is used.
func New(opt *Options) (*Fitter, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	model, err := newModel(opt)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize %s model, %w", opt.Model, err)
	}
	return &Fitter{
		opt:   opt,
		model: model,
	}, nil
}

func newModel(opt *Options) (models.Model, error) {
	switch opt.Model {
	case ModelPolynomial:
		return models.NewPolynomialRegression(&models.PolynomialOptions{Degree: opt.Degree})
	case ModelExponential:
		return models.NewExponentialRegression(), nil
	default:
		return nil, fmt.Errorf("got model %q, %w", opt.Model, ErrUnknownModel)
	}
}

// NewFromModel creates a new instance of Fitter from a pre-existing model. This should be generated
// from a previous fitter call to Model(). The returned fitter can predict immediately but has no
// training data or fit results.
func NewFromModel(model Model) (*Fitter, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	opt, err := model.Options.Validate()
	if err != nil {
		return nil, err
	}

	var m models.Model
	switch opt.Model {
	case ModelPolynomial:
		if len(model.Coefficients) != opt.Degree+1 {
			return nil, fmt.Errorf("degree %d expects %d coefficients, but got %d, %w",
				opt.Degree, opt.Degree+1, len(model.Coefficients), models.ErrCoefLen)
		}
		m, err = models.NewPolynomialRegressionFromCoef(model.Coefficients)
		if err != nil {
			return nil, fmt.Errorf("unable to load polynomial model, %w", err)
		}
	case ModelExponential:
		if len(model.Coefficients) != 2 {
			return nil, fmt.Errorf("exponential expects 2 coefficients, but got %d, %w",
				len(model.Coefficients), models.ErrCoefLen)
		}
		m = models.NewExponentialRegressionFromParams(model.Coefficients[0], model.Coefficients[1])
	}

	return &Fitter{
		opt:   opt,
		model: m,
	}, nil
}

// Fit uses the input samples to fit the curve model, then evaluates the model at the training x
// values to compute residuals and fit scores. On error the fitter keeps any previous fit.
func (f *Fitter) Fit(x, y []float64) error {
	td, err := dataset.New(x, y)
	if err != nil {
		switch {
		case errors.Is(err, dataset.ErrNoSamples):
			err = fmt.Errorf("%w, %w", models.ErrInsufficientData, err)
		case errors.Is(err, dataset.ErrDatasetLenMismatch):
			err = fmt.Errorf("%w, %w", models.ErrLengthMismatch, err)
		}
		return fmt.Errorf("unable to create training dataset, %w", err)
	}

	model, err := newModel(f.opt)
	if err != nil {
		return err
	}
	if err := model.Fit(td.X, td.Y); err != nil {
		return fmt.Errorf("unable to fit %s model, %w", f.opt.Model, err)
	}

	predicted, err := model.Predict(td.X)
	if err != nil {
		return fmt.Errorf("unable to get predicted values from training set, %w", err)
	}

	res, err := newResults(td, predicted, f.opt.OutlierOptions)
	if err != nil {
		return err
	}

	f.model = model
	f.fitTrainingData = td
	f.fitResults = res

	slog.Debug("fit curve",
		"model", f.opt.Model,
		"samples", td.Len(),
		"equation", model.Equation(),
		"squared_error", res.SquaredError,
	)
	if len(res.Outliers) > 0 {
		slog.Debug("residual outliers detected", "indexes", res.Outliers)
	}
	return nil
}

func newResults(td *dataset.Dataset, predicted []float64, outlierOpt *OutlierOptions) (*Results, error) {
	scores, err := stats.NewScores(td.Y, predicted)
	if err != nil {
		return nil, fmt.Errorf("unable to score fit, %w", err)
	}
	residuals, err := stats.Residuals(td.Y, predicted)
	if err != nil {
		return nil, fmt.Errorf("unable to compute residuals, %w", err)
	}

	r := &Results{
		X:            td.X,
		Observed:     td.Y,
		Predicted:    predicted,
		Residuals:    residuals,
		SquaredError: scores.SSE,
		Scores:       scores,
	}
	if outlierOpt != nil {
		r.Outliers = stats.DetectOutliers(
			residuals,
			outlierOpt.LowerPercentile,
			outlierOpt.UpperPercentile,
			outlierOpt.TukeyFactor,
		)
	}
	return r, nil
}

// Predict evaluates the fitted curve at any set of x values
func (f *Fitter) Predict(x []float64) ([]float64, error) {
	if f == nil || f.model == nil {
		return nil, ErrUntrainedFitter
	}
	res, err := f.model.Predict(x)
	if err != nil {
		if errors.Is(err, models.ErrUntrainedModel) {
			return nil, fmt.Errorf("%w, %w", ErrUntrainedFitter, err)
		}
		return nil, err
	}
	return res, nil
}

// CurvePoints evaluates the fitted curve at n evenly spaced x values spanning the training
// samples. This is the dense curve handed to plots.
func (f *Fitter) CurvePoints(n int) ([]float64, []float64, error) {
	if f.fitTrainingData == nil {
		return nil, nil, ErrUntrainedFitter
	}
	x, err := f.fitTrainingData.Span(n)
	if err != nil {
		return nil, nil, err
	}
	y, err := f.Predict(x)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Coefficients returns the fitted parameters. Polynomials return coefficients in descending power
// order and exponentials return [a, b] for y = b*e^(a*x).
func (f *Fitter) Coefficients() []float64 {
	if f == nil || f.model == nil {
		return nil
	}
	return f.model.Coef()
}

// Equation returns a string representation of the fitted curve
func (f *Fitter) Equation() string {
	if f == nil || f.model == nil {
		return ""
	}
	return f.model.Equation()
}

// Residuals returns the observed minus predicted values of the training data
func (f *Fitter) Residuals() []float64 {
	if f.fitResults == nil {
		return nil
	}
	return f.fitResults.Residuals
}

// SquaredError returns the sum of squared residuals of the fit against the training data
func (f *Fitter) SquaredError() (float64, error) {
	if f.fitResults == nil {
		return 0, ErrUntrainedFitter
	}
	return f.fitResults.SquaredError, nil
}

// TrainingData returns a copy of the training data used to fit the current model
func (f *Fitter) TrainingData() *dataset.Dataset {
	if f.fitTrainingData == nil {
		return nil
	}
	return f.fitTrainingData.Copy()
}

// FitResults returns the results of the fit evaluated at the training samples
func (f *Fitter) FitResults() *Results {
	return f.fitResults
}

// Model generates a serializeable representation of the fit options, fitted parameters and
// scores. This can be used to initialize a new Fitter for immediate predictions skipping the
// training step.
func (f *Fitter) Model() (Model, error) {
	coef := f.Coefficients()
	if len(coef) == 0 {
		return Model{}, ErrUntrainedFitter
	}
	m := Model{
		Options:      f.opt,
		Coefficients: coef,
		Equation:     f.Equation(),
	}
	if f.fitResults != nil {
		m.Scores = f.fitResults.Scores
	}
	return m, nil
}

// PlotOpts sets the number of points the fitted curve is drawn with. By default the fitter
// options PlotPoints is used.
type PlotOpts struct {
	Points int
}

// PlotFit uses the Apache Echarts library to generate an html page showing the samples overlaid
// with the fitted curve and the fit residuals
func (f *Fitter) PlotFit(w io.Writer, opt *PlotOpts) error {
	if f.fitResults == nil {
		return ErrUntrainedFitter
	}

	n := f.opt.PlotPoints
	if opt != nil && opt.Points > 0 {
		n = opt.Points
	}
	curveX, curveY, err := f.CurvePoints(n)
	if err != nil {
		return fmt.Errorf("unable to evaluate fitted curve, %w", err)
	}

	page := components.NewPage()
	page.AddCharts(
		LineFit(
			fmt.Sprintf("%s fit", f.opt.Model),
			f.Equation(),
			f.fitTrainingData,
			curveX, curveY,
		),
		BarResiduals(f.fitResults.X, f.fitResults.Residuals),
	)
	return page.Render(w)
}
