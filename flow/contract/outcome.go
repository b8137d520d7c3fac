package contract

import "fmt"

// OutcomeKind tags the terminal result of one flow-start invocation.
type OutcomeKind string

const (
	OutcomeStarted         OutcomeKind = "started"
	OutcomeContactNotFound OutcomeKind = "contact_not_found"
	OutcomeUnauthorized    OutcomeKind = "unauthorized"
	OutcomeMalformedInput  OutcomeKind = "malformed_input"
	OutcomeRemoteError     OutcomeKind = "remote_error"
	OutcomeInternalError   OutcomeKind = "internal_error"
)

// Outcome is the tagged result consumed by the entry surfaces. Business
// outcomes never cross the orchestrator boundary as Go errors, so every
// caller has to handle each case explicitly.
type Outcome struct {
	Kind OutcomeKind

	// URN is set for Started and ContactNotFound.
	URN URN
	// ContactName accompanies Started when the remote record carries a name.
	ContactName string
	// Reason is the human-readable detail for Unauthorized and MalformedInput.
	Reason string
	// StatusCode and Detail are set for RemoteError and InternalError.
	// Detail must reach the server log even when hidden from the end user.
	StatusCode int
	Detail     string
}

func Started(urn URN, contactName string) Outcome {
	return Outcome{Kind: OutcomeStarted, URN: urn, ContactName: contactName}
}

func ContactNotFound(urn URN) Outcome {
	return Outcome{Kind: OutcomeContactNotFound, URN: urn}
}

func Unauthorized(reason string) Outcome {
	return Outcome{Kind: OutcomeUnauthorized, Reason: reason}
}

func MalformedInput(reason string) Outcome {
	return Outcome{Kind: OutcomeMalformedInput, Reason: reason}
}

func RemoteError(statusCode int, detail string) Outcome {
	return Outcome{Kind: OutcomeRemoteError, StatusCode: statusCode, Detail: detail}
}

func InternalError(statusCode int, detail string) Outcome {
	return Outcome{Kind: OutcomeInternalError, StatusCode: statusCode, Detail: detail}
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeStarted:
		return fmt.Sprintf("started urn=%s", o.URN)
	case OutcomeContactNotFound:
		return fmt.Sprintf("contact_not_found urn=%s", o.URN)
	case OutcomeUnauthorized, OutcomeMalformedInput:
		return fmt.Sprintf("%s reason=%s", o.Kind, o.Reason)
	default:
		return fmt.Sprintf("%s status=%d detail=%s", o.Kind, o.StatusCode, o.Detail)
	}
}
