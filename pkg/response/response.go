package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	customError "github.com/segyhp/fintrack/pkg/errors"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the logger used for encoding failures and 5xx errors.
func SetLogger(l logrus.FieldLogger) {
	logger = l
}

type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Code      string    `json:"code,omitempty"`
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success:   statusCode >= 200 && statusCode < 300,
		Data:      data,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Error encoding JSON response")
	}
}

// Success sends a successful JSON response
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Created sends a created JSON response
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// Error sends an error JSON response
func Error(w http.ResponseWriter, statusCode int, message string, err error) {
	response := ErrorResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now(),
	}

	if err != nil {
		response.Error = err.Error()
		response.Code = customError.CodeOf(err)
	}

	write(w, statusCode, response)
}

// FromError maps a service error to its HTTP status. Business errors carry
// their code and message; anything else is a 500 whose detail is logged
// rather than returned.
func FromError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("request failed")
		write(w, status, ErrorResponse{
			Success:   false,
			Code:      customError.CodeOf(err),
			Error:     "internal server error",
			Message:   "The request could not be completed",
			Timestamp: time.Now(),
		})
		return
	}

	message := err.Error()
	var be *customError.BusinessError
	if errors.As(err, &be) {
		message = be.Message
	}

	write(w, status, ErrorResponse{
		Success:   false,
		Code:      customError.CodeOf(err),
		Error:     message,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// StatusOf returns the HTTP status for an error code.
func StatusOf(err error) int {
	switch customError.CodeOf(err) {
	case customError.ErrCodeInvalidPeriod, customError.ErrCodeInvalidFile, customError.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case customError.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case customError.ErrCodeDuplicatePlan:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, statusCode int, response ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		logger.WithError(encodeErr).Error("Error encoding error response")
	}
}

// NotFound sends a 404 not found response
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message, nil)
}

// CORSMiddleware adds CORS headers
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(log logrus.FieldLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response recorder to capture the status code
			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(recorder, r)

			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   recorder.statusCode,
				"duration": time.Since(start).String(),
			}).Info("request handled")
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *responseRecorder) WriteHeader(statusCode int) {
	rec.statusCode = statusCode
	rec.ResponseWriter.WriteHeader(statusCode)
}
