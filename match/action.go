package match

import "errors"

// ErrNoSelection is returned when an action is requested without a
// current match. Callers disable the affordances beforehand, but the
// contract is enforced here too.
var ErrNoSelection = errors.New("no match selected")

// ActionKind is one of the six entry actions offered on a match.
type ActionKind int

const (
	TypeUsername ActionKind = iota
	TypePassword
	TypeTotp
	CopyUsername
	CopyPassword
	CopyTotp
)

// ResultKind says how the caller should finish the session.
type ResultKind int

const (
	// ResultType commits the match for keystroke injection.
	ResultType ResultKind = iota
	// ResultCopy puts Value on the clipboard and closes without a
	// commit.
	ResultCopy
)

// Result is the resolved outcome of an action on a match.
type Result struct {
	Kind  ResultKind
	Match Match
	// Value carries the plaintext field for copy actions.
	Value string
}

// Availability reports which actions have a usable field behind them.
// It drives menu enablement for both the type and copy groups.
type Availability struct {
	Username bool
	Password bool
	TOTP     bool
}

// AvailabilityFor inspects the entry backing a match. With no current
// match everything is disabled.
func AvailabilityFor(current Match, ok bool) Availability {
	if !ok || current.Entry == nil {
		return Availability{}
	}
	return Availability{
		Username: current.Entry.Username() != "",
		Password: current.Entry.Password() != "",
		TOTP:     current.Entry.HasTOTP(),
	}
}

// Resolve maps a committed selection and an action kind to a result.
// Type actions override the matched sequence with a fixed placeholder
// token so only that one field is injected. Copy actions carry the
// field's plaintext; an empty field still resolves, emptiness is a
// display concern, not an error.
func Resolve(current Match, ok bool, action ActionKind) (Result, error) {
	if !ok || current.Entry == nil {
		return Result{}, ErrNoSelection
	}

	switch action {
	case TypeUsername:
		return typeResult(current, "{USERNAME}"), nil
	case TypePassword:
		return typeResult(current, "{PASSWORD}"), nil
	case TypeTotp:
		return typeResult(current, "{TOTP}"), nil
	case CopyUsername:
		return Result{Kind: ResultCopy, Match: current, Value: current.Entry.Username()}, nil
	case CopyPassword:
		return Result{Kind: ResultCopy, Match: current, Value: current.Entry.Password()}, nil
	case CopyTotp:
		return Result{Kind: ResultCopy, Match: current, Value: current.Entry.TOTP()}, nil
	default:
		return Result{}, errors.New("unknown action")
	}
}

func typeResult(current Match, override string) Result {
	return Result{
		Kind:  ResultType,
		Match: Match{Entry: current.Entry, Sequence: override},
	}
}
