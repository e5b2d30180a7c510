package response

import (
	"log"
	"net/http"

	"github.com/fardhanrasya/gamify-api/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// Pagination is the page metadata attached to list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Envelope is the standard response body: {success, message?, data?, pagination?}
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func NewPagination(page, limit int, total int64) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func Paginated(c *gin.Context, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: p})
}

// Fail reports a domain-rule rejection (skip a required task, claim an
// expired reward). These are results, not errors, so the status stays 200.
func Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: false, Message: message})
}

// BadRequest reports a validation failure at the route boundary.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// Error maps err to a status code. Internal errors are logged and replaced
// with a generic message so database text never reaches clients.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		msg = apperror.ErrInternal.Error()
	}

	c.JSON(code, Envelope{Success: false, Message: msg})
}
