package pricing

import "errors"

// Sentinel errors returned by the calculation engine. Callers classify them with errors.Is.
var (
	ErrInvalidMarginPercent   = errors.New("margin percent must be in [0, 100)")
	ErrInvalidMarkupPercent   = errors.New("markup percent must be >= 0")
	ErrDegenerateYieldOrBatch = errors.New("yield must be in (0, 100] and batch size >= 1")
	ErrNegativeInput          = errors.New("amount must be a finite number >= 0")
	ErrUnknownStrategy        = errors.New("unknown pricing strategy")
)
