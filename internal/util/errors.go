package util

import "errors"

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCaseNotFound       = errors.New("case not found")
	ErrCaseInactive       = errors.New("case is not active")
	ErrEmptyResponse      = errors.New("please write a response")
	ErrInvalidDifficulty  = errors.New("difficulty must be 1, 2 or 3")
	ErrMissingCaseFields  = errors.New("please fill in all fields, including difficulty")
	ErrStatsNotFound      = errors.New("user stats not found")
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrAchievementUnknown = errors.New("achievement not found")
	ErrAlreadyAwarded     = errors.New("achievement already awarded")
	ErrNoCasesAvailable   = errors.New("no cases available for daily challenge")
	ErrInvalidOAuthState  = errors.New("invalid oauth state")
	ErrInvalidPeriod      = errors.New("period must be week, month or year")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrDisplayNameEmpty   = errors.New("display name is required")
)
