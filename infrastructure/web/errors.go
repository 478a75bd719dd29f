package web

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the fallback error body for failures raised inside the
// framework itself, before application error handling runs.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func NewError(status int, msg string) ErrorResponse {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return ErrorResponse{StatusCode: status, Message: msg}
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

func (e ErrorResponse) HTTPStatus() int {
	return e.StatusCode
}
