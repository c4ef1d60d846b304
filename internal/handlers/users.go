package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieweb/internal/middleware"
	"github.com/localnerve/movieweb/internal/models"
	"github.com/localnerve/movieweb/internal/services"
	"github.com/localnerve/movieweb/internal/types"
	"github.com/localnerve/movieweb/internal/utils"
)

// AppTitle is reported by the home route
const AppTitle = "MovieWeb App"

// UserHandler handles user routes
type UserHandler struct {
	DM services.DataManager
}

// Home handles GET /
// @Summary Home
// @Description Application title and entry points
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *UserHandler) Home(c *fiber.Ctx) error {
	users, err := h.DM.GetAllUsers(c.UserContext())
	if err != nil {
		return serviceError(c, err, "No users found", "home")
	}

	return c.JSON(fiber.Map{
		"title":     AppTitle,
		"message":   "Welcome to " + AppTitle,
		"userCount": len(users),
		"links": fiber.Map{
			"users":   "/users",
			"addUser": "/add_user",
		},
	})
}

// ListUsers handles GET /users
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.DM.GetAllUsers(c.UserContext())
	if err != nil {
		return serviceError(c, err, "No users found", "listUsers")
	}

	result := fiber.Map{
		"users": users,
		"count": len(users),
	}
	if len(users) == 0 {
		result["message"] = "No users found"
	}

	return c.JSON(result)
}

// AddUserForm handles GET /add_user
func (h *UserHandler) AddUserForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form": formSpec{Name: "add_user", Action: "/add_user", Method: fiber.MethodPost, Fields: addUserFields},
	})
}

// AddUser handles POST /add_user
// @Summary Add a user
// @Description Form posts are redirected to /users, JSON posts receive the created user
// @Tags Users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param name formData string true "User name"
// @Success 201 {object} models.User
// @Success 303
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /add_user [post]
func (h *UserHandler) AddUser(c *fiber.Ctx) error {
	var name types.FlexString
	if wantsJSON(c) {
		var body struct {
			Name types.FlexString `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
		}
		name = body.Name
	} else {
		name = formValue(c, "name")
	}

	user, err := h.DM.AddUser(c.UserContext(), &models.User{Name: name.String()})
	if err != nil {
		return serviceError(c, err, "User not found", "addUser")
	}

	if !wantsJSON(c) {
		return c.Redirect("/users", fiber.StatusSeeOther)
	}
	return utils.SuccessResponse(c, user, fiber.StatusCreated)
}

// UserMovies handles GET /user/:id
// @Summary List a user's movies
// @Tags Movies
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /user/{id} [get]
func (h *UserHandler) UserMovies(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	movies, err := h.DM.GetUserMovies(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, err, fmt.Sprintf("User '%d' not found", user.ID), "userMovies")
	}

	result := fiber.Map{
		"user":   user,
		"movies": movies,
		"count":  len(movies),
	}
	if len(movies) == 0 {
		result["message"] = "No movies found"
	}

	return c.JSON(result)
}

// DeleteUser handles POST /users/:id/delete
// @Summary Delete a user and their movies
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Success 303
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/delete [post]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	removed, err := h.DM.DeleteUser(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, err, fmt.Sprintf("User '%d' not found", user.ID), "deleteUser")
	}

	if !wantsJSON(c) {
		return c.Redirect("/users", fiber.StatusSeeOther)
	}
	// The user row plus every movie it owned
	return utils.MutationSuccessResponse(c, removed+1)
}
