package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieweb/internal/models"
	"github.com/localnerve/movieweb/internal/services"
	"github.com/localnerve/movieweb/internal/types"
)

const userKey = "user"

// UserLoader is the slice of the data-access contract LoadUser needs
type UserLoader interface {
	GetUser(ctx context.Context, userID uint64) (*models.User, error)
}

// LoadUser resolves the :id route parameter to a user and stores it in the context.
// Requests for unknown users stop here with a 404.
func LoadUser(dm UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("id")
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return &types.CustomError{
				Code:    fiber.StatusNotFound,
				Message: fmt.Sprintf("User '%s' not found", raw),
				Type:    "data.user.notfound",
			}
		}

		user, err := dm.GetUser(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return &types.CustomError{
					Code:    fiber.StatusNotFound,
					Message: fmt.Sprintf("User '%d' not found", id),
					Type:    "data.user.notfound",
				}
			}
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by LoadUser, or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
