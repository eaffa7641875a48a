package response

import (
	"go-applicant-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       interface{}        `json:"data,omitempty"`
	Errors     interface{}        `json:"errors,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	RequestID  string             `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Paginated sends one page of a list with its pagination block
func Paginated(c *gin.Context, code int, message string, data interface{}, p domain.Pagination) {
	c.JSON(code, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &p,
		RequestID:  requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, errs interface{}) {
	ErrorWithData(c, code, message, errs, nil)
}

// ErrorWithData sends an error response that also carries data, e.g. the
// record that caused a conflict.
func ErrorWithData(c *gin.Context, code int, message string, errs interface{}, data interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Data:      data,
		Errors:    errs,
		RequestID: requestID(c),
	})
}
