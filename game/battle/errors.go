package battle

import (
	"errors"
	"fmt"
)

// Caller-contract errors. These report misuse of the session API; rule
// outcomes inside a battle (miss, immunity, failed move) are events, not
// errors.
var (
	ErrNotAwaitingActions = errors.New("battle: session is not awaiting actions")
	ErrActionAlreadySet   = errors.New("battle: action already submitted for this turn")
	ErrInvalidMoveIndex   = errors.New("battle: move index out of range")
	ErrNoPP               = errors.New("battle: selected move has no PP left")
	ErrInactiveCombatant  = errors.New("battle: switch target is fainted or already active")
	ErrChoiceLocked       = errors.New("battle: choice item locks the user into its first move")
	ErrInvalidSide        = errors.New("battle: unknown side")
	ErrSessionFinished    = errors.New("battle: session already finished")
)

// ContractError reports an internal invariant violation. It aborts the
// session: a battle that reached an impossible state must not keep running.
type ContractError struct {
	Invariant string
	Detail    string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("battle: invariant violated (%s): %s", e.Invariant, e.Detail)
}

func contractErr(invariant, format string, args ...interface{}) *ContractError {
	return &ContractError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}
