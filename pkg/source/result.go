package source

import (
	"fmt"

	"github.com/gnames/macrofitas/pkg/record"
)

// Status is the outcome of one remote lookup.
type Status int

const (
	// OK means records were found.
	OK Status = iota
	// NotFound means the source answered, but has no records for the name.
	NotFound
	// TransportError covers timeouts, refused connections and bad HTTP
	// status codes.
	TransportError
	// ParseError means the answer did not have the expected schema.
	ParseError
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case NotFound:
		return "not_found"
	case TransportError:
		return "transport_error"
	case ParseError:
		return "parse_error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the typed outcome of a lookup.
type Result struct {
	Source  ID
	Query   string
	Status  Status
	Records []record.Record
	Err     error
}

// Found creates a successful result. Empty records turn it into NotFound.
func Found(id ID, query string, recs []record.Record) Result {
	if len(recs) == 0 {
		return Missing(id, query)
	}
	return Result{Source: id, Query: query, Status: OK, Records: recs}
}

// Missing creates a NotFound result.
func Missing(id ID, query string) Result {
	return Result{Source: id, Query: query, Status: NotFound}
}

// Failed creates a TransportError or ParseError result.
func Failed(id ID, query string, st Status, err error) Result {
	return Result{Source: id, Query: query, Status: st, Err: err}
}

// OK reports if the result contains records.
func (r Result) OK() bool {
	return r.Status == OK && len(r.Records) > 0
}

// Retryable reports if repeating the lookup could change the outcome.
func (r Result) Retryable() bool {
	return r.Status == TransportError
}

// Done tells that a source finished processing a query, whatever the
// outcome was.
type Done struct {
	Source ID
	Query  string
}
