package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieweb/internal/types"
)

// ErrorHandler renders errors returned from handlers and middleware as the standard envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := genericErrorMessage
	errorType := "unknown"
	var fields map[string]string

	var fe *fiber.Error
	var ce *types.CustomError
	switch {
	case errors.As(err, &ce):
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
		fields = ce.Fields
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
		if code == fiber.StatusNotFound {
			message = NotFoundMessage
		}
	default:
		log.Printf("unhandled error on %s %s: %v", c.Method(), c.OriginalURL(), err)
	}

	body := fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	}
	if len(fields) > 0 {
		body["fields"] = fields
	}

	return c.Status(code).JSON(body)
}

// NotFoundMessage is the body message for unmapped routes
const NotFoundMessage = "[404] Page Not Found"

// NotFound is the catch-all handler registered after every route
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   NotFoundMessage,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
