package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"work-tracker/internal/errors"
	"work-tracker/internal/logging"
	"work-tracker/internal/validation"

	"github.com/sirupsen/logrus"
)

// ========== Response Structures ==========

type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type PaginatedResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Meta    Meta `json:"meta"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Meta describes one zero-based page of a listing
type Meta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ========== Success Responses ==========

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Data: data})
}

func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func respondPage(w http.ResponseWriter, data any, page, size, total, totalPages int) {
	writeJSON(w, http.StatusOK, PaginatedResponse{
		Success: true,
		Data:    data,
		Meta: Meta{
			Total:      total,
			Page:       page,
			Size:       size,
			TotalPages: totalPages,
			HasNext:    page+1 < totalPages,
			HasPrev:    page > 0,
		},
	})
}

// ========== Error Responses ==========

// statusFor maps an error type onto its HTTP status
func statusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeInvalidArgument:
		return http.StatusBadRequest
	case errors.ErrorTypeUnauthenticated:
		return http.StatusUnauthorized
	case errors.ErrorTypeUnauthorized, errors.ErrorTypeForbidden:
		return http.StatusForbidden
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeInvalidState:
		return http.StatusConflict
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an error envelope and logs it at a level matching its type
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := logging.FromContext(r.Context(), s.logger).WithFields(logrus.Fields{
		"status": status,
		"code":   errors.GetErrorCode(err),
	})
	switch {
	case status >= http.StatusInternalServerError:
		logger.WithError(err).Error("request failed")
	case errors.ShouldLogError(err):
		logger.WithError(err).Warn("request rejected")
	default:
		logger.WithError(err).Debug("request rejected")
	}

	info := &ErrorInfo{
		Code:    errors.GetErrorCode(err),
		Message: errors.GetUserMessage(err),
	}
	var invalid *validation.ValidationError
	if stderrors.As(err, &invalid) {
		info.Details = fieldDetails(invalid)
	}
	if !errors.IsAppError(err) {
		info.Code = "INTERNAL_ERROR"
		info.Message = "An unexpected error occurred. Please try again."
	}
	writeJSON(w, status, Response{Success: false, Error: info})
}

// FieldDetail is one rejected request field
type FieldDetail struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func fieldDetails(ve *validation.ValidationError) []FieldDetail {
	details := make([]FieldDetail, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		details = append(details, FieldDetail{Field: fe.Field, Type: string(fe.Type), Message: fe.Message})
	}
	return details
}
