package models

import (
	"errors"
)

var (
	ErrNoOptions        = errors.New("no initialized model options")
	ErrNegativeDegree   = errors.New("negative polynomial degree not allowed")
	ErrLengthMismatch   = errors.New("x and y have different lengths")
	ErrNonFiniteInput   = errors.New("input contains NaN or Inf values")
	ErrInsufficientData = errors.New("insufficient samples for requested degree")
	ErrSingularSystem   = errors.New("design matrix is singular to working precision")
	ErrDomain           = errors.New("input outside of model domain")
	ErrUntrainedModel   = errors.New("model has not been fit yet")
	ErrCoefLen          = errors.New("unexpected number of model coefficients")
)
