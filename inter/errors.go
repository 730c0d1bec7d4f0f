package inter

// Operation failures are a closed set of caller-correctable conditions,
// modeled as a tagged variant so call sites stay exhaustive and
// self-documenting. None of these represent internal faults, and none are
// retryable without changing the inputs: a failing precondition
// short-circuits its operation before any mutation.

// Code enumerates every failure an engine operation can return.
type Code uint8

const (
	// CodeAlreadyRegistered: the miner is already in the registered set.
	CodeAlreadyRegistered Code = iota + 1
	// CodeThresholdReached: the registration set is full and locked.
	CodeThresholdReached
	// CodeMiningClosed: mining has not yet opened at the given height.
	CodeMiningClosed
	// CodeRoundFull: the block's commitment list is at its cap.
	CodeRoundFull
	// CodeAlreadyMined: the miner already committed at this height.
	CodeAlreadyMined
	// CodeCannotMine: the commitment amount is zero.
	CodeCannotMine
	// CodeInsufficientBalance: the amount exceeds the spendable balance.
	CodeInsufficientBalance
	// CodeCannotStack: invalid start cycle, lock period or amount.
	CodeCannotStack
	// CodeUnauthorized: the caller is not the recorded winner.
	CodeUnauthorized
	// CodeImmatureReward: the cycle's rewards have not matured yet.
	CodeImmatureReward
	// CodeAlreadyClaimed: the claim record is already settled.
	CodeAlreadyClaimed
	// CodeNothingToRedeem: no live position, or the claim is settled.
	CodeNothingToRedeem
)

var codeNames = map[Code]string{
	CodeAlreadyRegistered:   "already registered",
	CodeThresholdReached:    "threshold reached",
	CodeMiningClosed:        "mining closed",
	CodeRoundFull:           "round full",
	CodeAlreadyMined:        "already mined",
	CodeCannotMine:          "cannot mine",
	CodeInsufficientBalance: "insufficient balance",
	CodeCannotStack:         "cannot stack",
	CodeUnauthorized:        "unauthorized",
	CodeImmatureReward:      "immature reward",
	CodeAlreadyClaimed:      "already claimed",
	CodeNothingToRedeem:     "nothing to redeem",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown error code"
}

// Error is the engine's error type. Each exported sentinel below carries
// one Code; operations return the sentinels directly, so errors.Is works
// by pointer identity and callers can also switch on Code().
type Error struct {
	code Code
}

func (e *Error) Error() string {
	return e.code.String()
}

// Code returns the tagged variant of the failure.
func (e *Error) Code() Code {
	return e.code
}

// One sentinel per failure code. These are the only Error values the
// engine ever returns.
var (
	ErrAlreadyRegistered   = &Error{CodeAlreadyRegistered}
	ErrThresholdReached    = &Error{CodeThresholdReached}
	ErrMiningClosed        = &Error{CodeMiningClosed}
	ErrRoundFull           = &Error{CodeRoundFull}
	ErrAlreadyMined        = &Error{CodeAlreadyMined}
	ErrCannotMine          = &Error{CodeCannotMine}
	ErrInsufficientBalance = &Error{CodeInsufficientBalance}
	ErrCannotStack         = &Error{CodeCannotStack}
	ErrUnauthorized        = &Error{CodeUnauthorized}
	ErrImmatureReward      = &Error{CodeImmatureReward}
	ErrAlreadyClaimed      = &Error{CodeAlreadyClaimed}
	ErrNothingToRedeem     = &Error{CodeNothingToRedeem}
)
