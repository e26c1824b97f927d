package contract

import "errors"

var (
	ErrModelInvoke = errors.New("model invoke failed")
	ErrLoopBudget  = errors.New("tool loop budget exceeded")
	ErrValidation  = errors.New("validation failed")
)
