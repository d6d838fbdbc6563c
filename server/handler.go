package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aouyang1/go-curvefit"
	"github.com/aouyang1/go-curvefit/models"
	"github.com/aouyang1/go-curvefit/stats"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// maxBodyBytes bounds the size of a fit request body
const maxBodyBytes = 1 << 20

// FitRequest is the body of POST /api/fit
type FitRequest struct {
	Model    string    `json:"model" validate:"omitempty,oneof=polynomial exponential"`
	Degree   int       `json:"degree" validate:"gte=0"`
	X        []float64 `json:"x" validate:"required,min=1"`
	Y        []float64 `json:"y" validate:"required,min=1"`
	PredictX []float64 `json:"predict_x"`
}

// FitResponse holds the fitted curve, its predictions at the training x values and at any
// requested x values, and the fit scores
type FitResponse struct {
	Model        string        `json:"model"`
	Equation     string        `json:"equation"`
	Coefficients []float64     `json:"coefficients"`
	Predicted    []float64     `json:"predicted"`
	SquaredError float64       `json:"squared_error"`
	Scores       *stats.Scores `json:"scores"`
	Outliers     []int         `json:"outliers,omitempty"`
	PredictX     []float64     `json:"predict_x,omitempty"`
	PredictY     []float64     `json:"predict_y,omitempty"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// FitHandler handles curve fitting requests. Every request is fit by its own Fitter so requests
// share no state.
type FitHandler struct {
	validator *validator.Validate
	logger    *slog.Logger
}

// NewFitHandler creates a new FitHandler
func NewFitHandler(logger *slog.Logger) *FitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FitHandler{
		validator: validator.New(),
		logger:    logger,
	}
}

// Fit handles POST /api/fit requests
func (h *FitHandler) Fit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	var req FitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	f, err := curvefit.New(&curvefit.Options{
		Model:          curvefit.ModelKind(req.Model),
		Degree:         req.Degree,
		OutlierOptions: curvefit.NewDefaultOutlierOptions(),
	})
	if err != nil {
		respondWithError(w, MapErrorToStatusCode(err), err.Error())
		return
	}

	if err := f.Fit(req.X, req.Y); err != nil {
		status := MapErrorToStatusCode(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("failed to fit curve", "error", err)
		} else {
			h.logger.Debug("rejected fit request", "error", err)
		}
		respondWithError(w, status, err.Error())
		return
	}

	res := f.FitResults()
	resp := FitResponse{
		Model:        string(curvefit.ModelKind(req.Model)),
		Equation:     f.Equation(),
		Coefficients: f.Coefficients(),
		Predicted:    res.Predicted,
		SquaredError: res.SquaredError,
		Scores:       res.Scores,
		Outliers:     res.Outliers,
	}
	if resp.Model == "" {
		resp.Model = string(curvefit.ModelPolynomial)
	}
	if len(req.PredictX) > 0 {
		predictY, err := f.Predict(req.PredictX)
		if err != nil {
			h.logger.Error("failed to predict", "error", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to evaluate fitted curve")
			return
		}
		resp.PredictX = req.PredictX
		resp.PredictY = predictY
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// Health handles GET /healthz requests
func Health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MapErrorToStatusCode maps fit errors to HTTP status codes. Bad options are client errors,
// samples that cannot be fit are unprocessable.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, curvefit.ErrUnknownModel),
		errors.Is(err, curvefit.ErrNegativeDegree),
		errors.Is(err, models.ErrNegativeDegree):
		return http.StatusBadRequest

	case errors.Is(err, models.ErrInsufficientData),
		errors.Is(err, models.ErrSingularSystem),
		errors.Is(err, models.ErrDomain),
		errors.Is(err, models.ErrLengthMismatch),
		errors.Is(err, models.ErrNonFiniteInput):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	out, err := json.Marshal(data)
	if err != nil {
		// predictions far outside the training range can overflow to +Inf which JSON cannot carry
		slog.Error("failed to encode JSON response", "error", err)
		status = http.StatusUnprocessableEntity
		out, _ = json.Marshal(ErrorResponse{Error: "Response contains non-finite values", Code: status})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, ErrorResponse{
		Error: message,
		Code:  status,
	})
}
