package domain

import "strconv"

// LeaseID identifies a renewable lease agreement. IDs are assigned by the
// lease factory and are always positive; zero is the "unset" sentinel.
type LeaseID int64

// Valid reports whether the ID refers to an assignable lease.
func (l LeaseID) Valid() bool {
	return l > 0
}

func (l LeaseID) String() string {
	return strconv.FormatInt(int64(l), 10)
}

// ParseLeaseID parses a decimal lease ID from a path or query parameter.
// Parse failures surface as the zero LeaseID, which never validates.
func ParseLeaseID(s string) LeaseID {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return LeaseID(n)
}

// Principal is an opaque caller identity. Authorization is a plain equality
// test against the configured oracle; no structure is assumed beyond that.
type Principal string

// IsZero reports whether no principal was established for the caller.
func (p Principal) IsZero() bool {
	return p == ""
}

// EvaluationID is the process-wide, monotonically increasing counter value
// assigned to each appended evaluation record.
type EvaluationID int64

func (e EvaluationID) String() string {
	return strconv.FormatInt(int64(e), 10)
}

// ParseEvaluationID parses a decimal evaluation ID. Returns -1 on failure so
// lookups miss rather than aliasing record 0.
func ParseEvaluationID(s string) EvaluationID {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1
	}
	return EvaluationID(n)
}
