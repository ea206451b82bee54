// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodySize = 1 << 20

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Response wraps the payload of successful API calls.
type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Response{Data: data, Message: message, Status: status})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Status: status, Message: message})
}

// DecodeJSON reads a single JSON document from the request body into v and validates it
// when a validator is given.
func DecodeJSON(r *http.Request, v any, validate *validator.Validate) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if validate == nil {
		return nil
	}

	if err := validate.Struct(v); err != nil {
		return ValidationMessage(err)
	}

	return nil
}

// ValidationMessage turns validator field errors into a readable error.
func ValidationMessage(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "min", "max":
			messages = append(messages, fmt.Sprintf("%s must respect %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}

	return errors.New(strings.Join(messages, "; "))
}
