package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrConfig          = crerr.New("supabase is not configured")
	ErrNotInitialized  = crerr.New("player stats store is not initialized")
	ErrMissingIdentity = crerr.New("record identity is required")
	ErrRecordNotFound  = crerr.New("player stats record not found")
)
