package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"todo-service/backend/internal/tasks"
)

var errInvalidBody = errors.New("invalid request body")

const internalErrorMessage = "Internal Server Error"

// statusFor maps an error to the response status and the message shown to
// the caller. Anything unrecognised is a storage failure and stays opaque.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, tasks.ErrNameRequired):
		return http.StatusBadRequest, "Task name is required"
	case errors.Is(err, tasks.ErrInvalidID):
		return http.StatusBadRequest, "Invalid task id"
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, "Invalid request body"
	case errors.Is(err, tasks.ErrNotFound):
		return http.StatusNotFound, "Task not found"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

func (s *Server) fail(c *gin.Context, op string, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s failed (request %s): %v", op, requestID(c), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// bindJSON binds the body into out with gin's JSON binder. An empty body
// leaves out untouched. Anything after the first JSON value is rejected.
func bindJSON(c *gin.Context, out any) error {
	err := c.ShouldBindBodyWith(out, binding.JSON)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if raw, ok := c.Get(gin.BodyBytesKey); ok {
		if body, ok := raw.([]byte); ok && !json.Valid(body) {
			return fmt.Errorf("%w: trailing data after JSON value", errInvalidBody)
		}
	}
	return nil
}
