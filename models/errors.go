package models

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
)

var (
	ErrTargetLenMismatch  = fmt.Errorf("target length does not match training rows, %w", errs.ErrInvalidData)
	ErrNoTrainingMatrix   = fmt.Errorf("no training matrix, %w", errs.ErrInvalidData)
	ErrNoTargetMatrix     = fmt.Errorf("no target matrix, %w", errs.ErrInvalidData)
	ErrNoDesignMatrix     = fmt.Errorf("no design matrix for inference, %w", errs.ErrInvalidData)
	ErrFeatureLenMismatch = fmt.Errorf("number of features does not match number of model coefficients, %w", errs.ErrInvalidData)
	ErrSingularMatrix     = fmt.Errorf("training matrix is rank deficient, %w", errs.ErrModel)
	ErrUntrainedModel     = fmt.Errorf("model must be fit before inference, %w", errs.ErrModel)
)
