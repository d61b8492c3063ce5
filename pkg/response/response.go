package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON sends a success response with an optional message.
func JSON(c *gin.Context, status int, data interface{}, message ...string) {
	noStore(c)
	envelope := Envelope{Success: true, Data: data}
	if len(message) > 0 {
		envelope.Message = message[0]
	}
	c.JSON(status, envelope)
}

// List sends a success response carrying the number of returned items.
func List(c *gin.Context, data interface{}, count int) {
	noStore(c)
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, data, message)
}

// Message sends a success response without a payload.
func Message(c *gin.Context, message string) {
	noStore(c)
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	noStore(c)
	c.JSON(appErr.Status, Envelope{Success: false, Message: appErr.Message})
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
