package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 Created JSON response.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}

// BindError reports a malformed request body.
func BindError(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, "validation_error", "invalid request body", []map[string]string{
		{"field": "body", "issue": err.Error()},
	})
}
