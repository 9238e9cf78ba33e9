// FILE: internal/dto/assistant_dto.go
package dto

type TurnRequest struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

type DocumentPayload struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

// TurnResult is the outcome of one dialogue turn. Stage is only set while the
// email sub-machine is active; Document only when a save produced a report.
type TurnResult struct {
	SessionId string           `json:"session_id"`
	Response  string           `json:"response"`
	Mode      string           `json:"mode"`
	Stage     string           `json:"stage,omitempty"`
	Document  *DocumentPayload `json:"document,omitempty"`
}
