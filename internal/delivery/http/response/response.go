package response

import (
	"net/http"

	"candidate-voting-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// MessageResponse is the body of requests that succeed without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// Message sends a bare {"message": ...} success body
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Message:   message,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
}

// Attachment sends a file download
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
