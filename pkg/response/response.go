package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/backendac/actividades-api/pkg/errors"
)

// Envelope is the uniform response contract inherited from the legacy API:
// estado reports success, mensaje is human-readable, data carries the payload.
type Envelope struct {
	Estado  bool        `json:"estado"`
	Mensaje string      `json:"mensaje"`
	Data    interface{} `json:"data"`
}

// JSON sends a success envelope with the given status code.
func JSON(c *gin.Context, status int, mensaje string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Estado: true, Mensaje: mensaje, Data: data})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, mensaje string, data interface{}) {
	JSON(c, http.StatusOK, mensaje, data)
}

// Created responds with HTTP 201.
func Created(c *gin.Context, mensaje string, data interface{}) {
	JSON(c, http.StatusCreated, mensaje, data)
}

// Error converts err into the envelope using its mapped HTTP status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Estado: false, Mensaje: appErr.Message, Data: nil})
}
