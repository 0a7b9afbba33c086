package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts and agents.
const (
	// Vault errors
	ErrVaultNotFound     = "VAULT_NOT_FOUND"
	ErrVaultNotSpecified = "VAULT_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"

	// Directory errors
	ErrDirNotFound     = "DIR_NOT_FOUND"
	ErrDirOutsideVault = "DIR_OUTSIDE_VAULT"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"
	ErrFileExists     = "FILE_EXISTS"

	// Front matter errors
	ErrParseError = "PARSE_ERROR"
	ErrConflict   = "CONFLICT"

	// Infrastructure errors
	ErrCacheError   = "CACHE_ERROR"
	ErrSessionError = "SESSION_ERROR"

	// Confirmation errors
	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"
	ErrAborted              = "ABORTED"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnSkippedConflict   = "SKIPPED_CONFLICT"
	WarnSkippedParseError = "SKIPPED_PARSE_ERROR"
	WarnRenameDestExists  = "RENAME_DEST_EXISTS"
	WarnFileError         = "FILE_ERROR"
)
