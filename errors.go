package quota

import "errors"

// Sentinel errors for the quota package.
// Use errors.Is to check: errors.Is(err, quota.ErrInvalidSettings)
var (
	ErrInvalidSettings = errors.New("quota: invalid settings")
	ErrInvalidSubject  = errors.New("quota: invalid subject")
	ErrInvalidLevel    = errors.New("quota: invalid level")
	ErrInvalidPeriod   = errors.New("quota: invalid period")
	ErrInvalidStatus   = errors.New("quota: invalid status")
)
