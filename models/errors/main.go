package errors

import (
	"errors"
	"fmt"
)

/*
	Error kinds surfaced by the repository client
	and the synchronization services
*/

var (
	ErrUnknownPipeline  = errors.New("unknown pipeline")
	ErrUnresolvedAllele = errors.New("parent allele has not been resolved")
	ErrInvalidRecord    = errors.New("invalid import record")
)

// RepositoryCommunicationError covers every transport failure and every
// non-success response from the repository. It is never retried.
type RepositoryCommunicationError struct {
	Method     string
	Url        string
	StatusCode int
	Message    string
	Err        error
}

func (e *RepositoryCommunicationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("error communicating with repository: %s %s: %d %s", e.Method, e.Url, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("error communicating with repository: %s %s: %s", e.Method, e.Url, e.Message)
}

func (e *RepositoryCommunicationError) Unwrap() error {
	return e.Err
}

// AmbiguousMatchError reports more than one remote record for a natural key.
type AmbiguousMatchError struct {
	Resource string
	Key      string
	Count    int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("found %d %s entries for %s", e.Count, e.Resource, e.Key)
}

func IsRepositoryCommunicationError(err error) bool {
	var rce *RepositoryCommunicationError
	return errors.As(err, &rce)
}

func IsAmbiguousMatchError(err error) bool {
	var ame *AmbiguousMatchError
	return errors.As(err, &ame)
}
