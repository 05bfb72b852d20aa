package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies installer failures so callers can branch without
// matching on message text
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindIO
	KindNetwork
	KindDecode
	KindArchive
	KindRateLimited
	KindInstall
)

// String returns a short label for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	case KindArchive:
		return "archive"
	case KindRateLimited:
		return "rate-limited"
	case KindInstall:
		return "install"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrSteamNotFound     = errors.New("steam installation not found")
	ErrNoLibraryFolders  = errors.New("steam library folders could not be read")
	ErrGameNotFound      = errors.New("game not found in any steam library")
	ErrRateLimited       = errors.New("rate limit exceeded, please wait a few minutes and try again")
	ErrNoRelease         = errors.New("no release found")
	ErrNoAsset           = errors.New("no asset found")
	ErrUnsupportedAsset  = errors.New("unsupported asset type")
	ErrDestinationExists = errors.New("destination already exists")
)

// Error is the tagged error returned by installer components. Op names the
// stage that failed (for example "download" or "extract").
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg += " during " + e.Op
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a tagged error
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf creates a tagged error with a formatted message and no cause
func Errorf(kind ErrorKind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first tagged error in err's chain
func KindOf(err error) ErrorKind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindUnknown
}

// IsRateLimited reports whether err was caused by an API rate limit
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || KindOf(err) == KindRateLimited
}
