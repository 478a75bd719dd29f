// Package fopbridge wraps successful results in the response envelope and
// shapes paged lists.
package fopbridge

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the success wrapper around every payload.
type Envelope[T any] struct {
	Success    bool      `json:"success"`
	StatusCode int       `json:"statusCode"`
	Timestamp  time.Time `json:"timestamp"`
	Path       string    `json:"path"`
	Method     string    `json:"method"`
	Data       T         `json:"data"`
}

// Respond wraps data for r with status.
func Respond[T any](r *http.Request, status int, data T) Envelope[T] {
	return Envelope[T]{
		Success:    true,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
		Path:       r.URL.Path,
		Method:     r.Method,
		Data:       data,
	}
}

// OK is Respond with 200.
func OK[T any](r *http.Request, data T) Envelope[T] {
	return Respond(r, http.StatusOK, data)
}

// Created is Respond with 201.
func Created[T any](r *http.Request, data T) Envelope[T] {
	return Respond(r, http.StatusCreated, data)
}

func (e Envelope[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

func (e Envelope[T]) HTTPStatus() int {
	return e.StatusCode
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
