package response

import (
	"reflect"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response. The HTTP status always
// mirrors StatusCode.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
}

// New builds an envelope; empty slices and maps are dropped from data.
func New(status int, msg string, data any) Envelope {
	if isEmpty(data) {
		data = nil
	}
	return Envelope{StatusCode: status, Message: msg, Success: status < 400, Data: data}
}

func Error(status int, msg string) Envelope {
	if msg == "" {
		msg = DefaultMessage(status)
	}
	return New(status, msg, nil)
}

// JSON writes env with a matching HTTP status.
func JSON(c *gin.Context, env Envelope) { c.JSON(env.StatusCode, env) }

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, msg string) {
	env := Error(status, msg)
	c.AbortWithStatusJSON(env.StatusCode, env)
}

func isEmpty(data any) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return false
}
