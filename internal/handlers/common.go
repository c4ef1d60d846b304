// common.go
//
// MovieWeb, a service for keeping users and the movies they like, with OMDb lookups
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of movieweb.
// movieweb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// movieweb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with movieweb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieweb/internal/services"
	"github.com/localnerve/movieweb/internal/types"
	"github.com/localnerve/movieweb/internal/utils"
)

const genericErrorMessage = "An unexpected error occurred. Please try again later."

// parseID reads a positive integer route parameter
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &types.CustomError{
			Code:    fiber.StatusNotFound,
			Message: fmt.Sprintf("Invalid %s '%s'", name, raw),
			Type:    "data.validation.id",
		}
	}
	return id, nil
}

// wantsJSON reports whether the client posted JSON and so expects JSON back.
// Classic form posts get a redirect instead.
func wantsJSON(c *fiber.Ctx) bool {
	return c.Is("json")
}

// formValue reads a field from a form post, trimmed
func formValue(c *fiber.Ctx, key string) types.FlexString {
	return types.FlexString(strings.TrimSpace(c.FormValue(key)))
}

// serviceError maps the data-access error taxonomy to HTTP responses
func serviceError(c *fiber.Ctx, err error, notFoundMessage, op string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.ValidationErrorResponse(c, verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, notFoundMessage)
	case errors.Is(err, services.ErrDuplicateName):
		return utils.ErrorResponse(c, "A user with that name already exists", fiber.StatusConflict, "data.validation.duplicate")
	}

	log.Printf("%s: %v", op, err)
	return utils.ErrorResponse(c, genericErrorMessage, fiber.StatusInternalServerError, op)
}
