package dto

import "github.com/SscSPs/ledger_dedup/internal/apperrors"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error" example:"ValidationError"`
	Message string `json:"message" example:"unknown decision \"maybe\""`
}

// NewErrorResponse renders err's kind and message.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{Error: apperrors.Kind(err), Message: err.Error()}
}
