package publish

import (
	"errors"
	"fmt"
)

// Kind classifies the errors of a sync run.
type Kind int

const (
	// Setup is a failure that aborts the whole run.
	Setup Kind = iota
	// SectionNotFound means the changelog has no section for a tag.
	SectionNotFound
	// RemoteTagNotFound means a tag does not exist at the remote git repository.
	RemoteTagNotFound
	// ReleaseExists means a release already exists for a tag and overwriting is disabled.
	ReleaseExists
	// Remote is a failure reported by the git remote or the release API.
	Remote
	// ListReleases is a failure to list the releases of the remote repository.
	// It aborts the whole run.
	ListReleases
)

func (k Kind) String() string {
	switch k {
	case Setup:
		return "Setup"
	case SectionNotFound:
		return "SectionNotFound"
	case RemoteTagNotFound:
		return "RemoteTagNotFound"
	case ReleaseExists:
		return "ReleaseExists"
	case Remote:
		return "Remote"
	case ListReleases:
		return "ListReleases"
	default:
		return "Unknown"
	}
}

// Error is an error of a given kind, optionally for a tag.
type Error struct {
	Kind Kind
	Tag  string
	Err  error
}

func newError(kind Kind, tag string, err error) *Error {
	return &Error{
		Kind: kind,
		Tag:  tag,
		Err:  err,
	}
}

func newErrorf(kind Kind, tag, format string, args ...any) *Error {
	return newError(kind, tag, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind determines whether an error, or any error it wraps, is a publish error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
