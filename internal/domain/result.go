package domain

// Status is the outcome label carried by every operation result.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusPending Status = "PENDING"
	StatusFailed  Status = "FAILED"
)

// Result is the structured outcome of a lifecycle operation. Data is only
// populated on a successful sign-in, and then holds an AccountView.
type Result struct {
	Status  Status      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Failed builds a FAILED result with the given message.
func Failed(message string) Result {
	return Result{Status: StatusFailed, Message: message}
}

// Pending builds a PENDING result with the given message.
func Pending(message string) Result {
	return Result{Status: StatusPending, Message: message}
}

// Success builds a SUCCESS result.
func Success(message string, data interface{}) Result {
	return Result{Status: StatusSuccess, Message: message, Data: data}
}
