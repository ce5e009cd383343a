package domain

// ResultCode classifies the outcome of an engine action. Rejections are
// ordinary values, never faults: the engine leaves state untouched and the
// caller decides how to present the code.
type ResultCode string

const (
	StatusOK              ResultCode = "ok"
	StatusCannotAfford    ResultCode = "cannot_afford"
	StatusMaxLevel        ResultCode = "max_level"
	StatusEraLocked       ResultCode = "era_locked"
	StatusAlreadyUnlocked ResultCode = "already_unlocked"
	StatusNotFound        ResultCode = "not_found"
	StatusNotMature       ResultCode = "not_mature"
	StatusQuestActive     ResultCode = "quest_active"
	StatusQuestExpired    ResultCode = "quest_expired"
	StatusQuestDone       ResultCode = "quest_already_done"
	StatusVisitorPresent  ResultCode = "visitor_present"
	StatusVisitorBusy     ResultCode = "visitor_busy"
	StatusPrestigeLocked  ResultCode = "prestige_locked"
	StatusNoEffect        ResultCode = "no_effect"
)

// Result is the caller-visible outcome of applying one action.
type Result struct {
	Code    ResultCode `json:"code"`
	Message string     `json:"message,omitempty"`
	// Suggestion carries a nearest-match identifier for not-found rejections.
	Suggestion string `json:"suggestion,omitempty"`
}

// OK reports whether the action was applied.
func (r Result) OK() bool { return r.Code == StatusOK }

// Accepted is the canonical success result.
var Accepted = Result{Code: StatusOK}

// Rejected builds a rejection result with a human-readable message.
func Rejected(code ResultCode, message string) Result {
	return Result{Code: code, Message: message}
}
