package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 with an arbitrary JSON body.
func OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Created writes a 201 with an arbitrary JSON body.
func Created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

// Message writes a `{"message": ...}` body with the given status.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// Raw forwards an already-encoded JSON payload untouched. Used by the coin
// proxy routes so cached upstream bodies are not re-marshalled.
func Raw(c *gin.Context, payload json.RawMessage) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// Error writes the `{"message": ...}` error body with the status the error
// maps to. Internal detail never reaches the client; msg is the public text.
func Error(c *gin.Context, err error, msg string) {
	Message(c, StatusFor(err), msg)
}
