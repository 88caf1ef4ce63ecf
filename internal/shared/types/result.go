package types

// Result is the {ok, error?} envelope returned by mutating operations.
// Optional fields are only set by the operations that report them.
type Result struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	Enabled   *bool  `json:"enabled,omitempty"`
	Paused    *bool  `json:"paused,omitempty"`
	AppID     string `json:"app_id,omitempty"`
	ProfileID string `json:"profile_id,omitempty"`
}

// OKResult is the plain success envelope.
func OKResult() Result {
	return Result{OK: true}
}

// Failed returns a failure envelope carrying msg.
func Failed(msg string) Result {
	return Result{OK: false, Error: msg}
}
