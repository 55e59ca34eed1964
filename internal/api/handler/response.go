package handler

import (
	"reflect"
	"strings"

	"github.com/labstack/echo/v4"
)

// envelope is the success body of every endpoint.
type envelope struct {
	Message string `json:"message"`
	Payload any    `json:"payload,omitempty"`
}

func respond(c echo.Context, status int, message string, payload any) error {
	return c.JSON(status, envelope{Message: message, Payload: payload})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
