package game

import "errors"

// Kind groups game errors by how the router should answer them.
type Kind int

const (
	KindUnknown Kind = iota
	KindPermission
	KindValidation
	KindNotFound
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindPermission:
		return "permission"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPrecondition:
		return "precondition"
	default:
		return "unknown"
	}
}

// Error is a rejected room operation. The room is left unchanged.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// NewError builds an Error of the given kind; used by the registry too.
func NewError(kind Kind, msg string) *Error { return &Error{Kind: kind, msg: msg} }

var (
	ErrNotHost = NewError(KindPermission, "only the host can do that")

	ErrLivesTooLow    = NewError(KindValidation, "lives must be at least 1")
	ErrWordTooShort   = NewError(KindValidation, "word is too short or has no allowed letters")
	ErrWordTooLong    = NewError(KindValidation, "word is too long")
	ErrInvalidLetter  = NewError(KindValidation, "letter is outside the alphabet")
	ErrAlreadyGuessed = NewError(KindValidation, "letter was already guessed")
	ErrEmptyGuess     = NewError(KindValidation, "empty guess")
	ErrAlreadyHost    = NewError(KindValidation, "user is already the host")
	ErrKickSelf       = NewError(KindValidation, "host cannot kick themselves")

	ErrNotMember = NewError(KindNotFound, "user is not in this room")

	ErrNoWord          = NewError(KindPrecondition, "no word configured")
	ErrNoGuessers      = NewError(KindPrecondition, "no guessers present")
	ErrNotStarted      = NewError(KindPrecondition, "round is not running")
	ErrNotYourTurn     = NewError(KindPrecondition, "not your turn")
	ErrHostCannotGuess = NewError(KindPrecondition, "host does not guess")
)

// KindOf classifies err; KindUnknown for foreign errors and nil.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}
