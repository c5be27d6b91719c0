package response

import (
	"encoding/json"
	"io"

	"go.uber.org/zap"
	"webrecon/internal/log"
)

const (
	StatusComplete      = "complete"
	StatusPartial       = "partial"
	StatusInvalidTarget = "invalid_target"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON writes one indented envelope followed by a newline.
func JSON(w io.Writer, status string, data interface{}, message string) error {
	res := Response{
		Status:  status,
		Message: message,
		Data:    data,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Logger.Error("failed to encode JSON response", zap.Error(err))
		return err
	}
	return nil
}

func Success(w io.Writer, data interface{}, message string) error {
	return JSON(w, StatusComplete, data, message)
}

func Error(w io.Writer, status string, data interface{}, message string) error {
	return JSON(w, status, data, message)
}
