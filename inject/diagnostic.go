package inject

import (
	"errors"
	"strconv"
)

// Diagnostic codes.
const (
	// CodeNotExtensible is reported for a qualifying type whose declaration cannot
	// be joined by a generated file.
	CodeNotExtensible = "INJ001"
	// CodeUnknownQualifier is reported for an injected field whose type uses a
	// package qualifier that no import of its file is known under.
	CodeUnknownQualifier = "INJ002"
	// CodeDuplicateOutput is reported for a qualifying type whose output file is
	// already produced by another type of the same package.
	CodeDuplicateOutput = "INJ003"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a non-fatal finding about a single declaration.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Location Location
}

// String renders the diagnostic the way compilers do: location: severity code: message.
func (d Diagnostic) String() string {
	return d.Location.String() + ": " + string(d.Severity) + " " + d.Code + ": " + d.Message
}

// ErrNoMembers is wrapped by ConsistencyError.
var ErrNoMembers = errors.New("inject: qualifying type resolved no injectable members")

// ConsistencyError reports a qualifying type that resolved no members.
// Scan and ResolveMembers use the same member predicate, so this indicates a defect.
type ConsistencyError struct {
	Type     string
	Location Location
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	return "inject: internal consistency fault: qualifying type " + strconv.Quote(e.Type) +
		" at " + e.Location.String() + " resolved no injectable members"
}

// Unwrap returns ErrNoMembers.
func (e *ConsistencyError) Unwrap() error { return ErrNoMembers }
