package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aouyang1/go-curvefit"
	"github.com/aouyang1/go-curvefit/models"
	"github.com/goccy/go-json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postFit(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/fit", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFitHandler(t *testing.T) {
	testData := map[string]struct {
		body     string
		status   int
		coef     []float64
		predictY []float64
		errMsg   string
	}{
		"quadratic": {
			body:   `{"model":"polynomial","degree":2,"x":[0,1,2],"y":[1,3,7]}`,
			status: http.StatusOK,
			coef:   []float64{1, 1, 1},
		},
		"default model with predictions": {
			body:     `{"degree":1,"x":[0,1,2,3],"y":[1,3,5,7],"predict_x":[10]}`,
			status:   http.StatusOK,
			coef:     []float64{2, 1},
			predictY: []float64{21},
		},
		"exponential": {
			body:   `{"model":"exponential","x":[0,1],"y":[1,2.718281828459045]}`,
			status: http.StatusOK,
			coef:   []float64{1, 1},
		},
		"constant y": {
			body:   `{"degree":1,"x":[0.1,0.2,0.3,0.7],"y":[0.3,0.3,0.3,0.3]}`,
			status: http.StatusOK,
			coef:   []float64{0, 0.3},
		},
		"constant y exponential": {
			body:   `{"model":"exponential","x":[0.1,0.2,0.3,0.7],"y":[7.7,7.7,7.7,7.7]}`,
			status: http.StatusOK,
			coef:   []float64{0, 7.7},
		},
		"malformed json": {
			body:   `{"x":[1,2`,
			status: http.StatusBadRequest,
			errMsg: "Invalid request format",
		},
		"unknown model": {
			body:   `{"model":"spline","x":[1,2],"y":[1,2]}`,
			status: http.StatusBadRequest,
			errMsg: "Validation error",
		},
		"negative degree": {
			body:   `{"degree":-1,"x":[1,2],"y":[1,2]}`,
			status: http.StatusBadRequest,
			errMsg: "Validation error",
		},
		"missing y": {
			body:   `{"x":[1,2]}`,
			status: http.StatusBadRequest,
			errMsg: "Validation error",
		},
		"insufficient data": {
			body:   `{"degree":3,"x":[1,2],"y":[1,2]}`,
			status: http.StatusUnprocessableEntity,
			errMsg: models.ErrInsufficientData.Error(),
		},
		"singular system": {
			body:   `{"degree":1,"x":[2,2,2],"y":[1,2,3]}`,
			status: http.StatusUnprocessableEntity,
			errMsg: models.ErrSingularSystem.Error(),
		},
		"exponential domain": {
			body:   `{"model":"exponential","x":[1,2],"y":[-1,2]}`,
			status: http.StatusUnprocessableEntity,
			errMsg: models.ErrDomain.Error(),
		},
		"length mismatch": {
			body:   `{"degree":1,"x":[1,2,3],"y":[1,2]}`,
			status: http.StatusUnprocessableEntity,
			errMsg: models.ErrLengthMismatch.Error(),
		},
	}

	router := NewRouter(nil)
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			rec := postFit(t, router, td.body)
			require.Equal(t, td.status, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if td.status != http.StatusOK {
				var resp ErrorResponse
				require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, td.status, resp.Code)
				assert.Contains(t, resp.Error, td.errMsg)
				return
			}

			var resp FitResponse
			require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.InDeltaSlice(t, td.coef, resp.Coefficients, 1e-9)
			assert.InDelta(t, 0.0, resp.SquaredError, 1e-9)
			assert.NotEmpty(t, resp.Equation)
			require.NotNil(t, resp.Scores)
			assert.InDelta(t, resp.SquaredError, resp.Scores.SSE, 1e-12)
			if td.predictY != nil {
				assert.InDeltaSlice(t, td.predictY, resp.PredictY, 1e-9)
			}
		})
	}
}

func TestFitHandlerReportsModel(t *testing.T) {
	rec := postFit(t, NewRouter(nil), `{"degree":1,"x":[0,1],"y":[0,1]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FitResponse
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(curvefit.ModelPolynomial), resp.Model)
	assert.InDeltaSlice(t, []float64{0, 1}, resp.Predicted, 1e-12)
}

func TestFitHandlerNonFinitePrediction(t *testing.T) {
	rec := postFit(t, NewRouter(nil), `{"model":"exponential","x":[0,1],"y":[1,2.718281828459045],"predict_x":[1000]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	NewRouter(nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/fit", nil)
	rec := httptest.NewRecorder()
	NewRouter(nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMapErrorToStatusCode(t *testing.T) {
	testData := map[string]struct {
		err    error
		status int
	}{
		"unknown model":     {curvefit.ErrUnknownModel, http.StatusBadRequest},
		"negative degree":   {models.ErrNegativeDegree, http.StatusBadRequest},
		"insufficient data": {models.ErrInsufficientData, http.StatusUnprocessableEntity},
		"wrapped singular":  {fmt.Errorf("unable to fit, %w", models.ErrSingularSystem), http.StatusUnprocessableEntity},
		"non finite":        {models.ErrNonFiniteInput, http.StatusUnprocessableEntity},
		"unexpected":        {errors.New("boom"), http.StatusInternalServerError},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.status, MapErrorToStatusCode(td.err))
		})
	}
}
