package types

import "fmt"

// CustomError is rendered by the server error handler as the standard error envelope
type CustomError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
