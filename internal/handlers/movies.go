// movies.go
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
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieweb/internal/middleware"
	"github.com/localnerve/movieweb/internal/models"
	"github.com/localnerve/movieweb/internal/omdb"
	"github.com/localnerve/movieweb/internal/services"
	"github.com/localnerve/movieweb/internal/types"
	"github.com/localnerve/movieweb/internal/utils"
	"github.com/localnerve/movieweb/internal/validator"
)

// MovieLookup is the metadata source used for suggestions and autofill
type MovieLookup interface {
	Configured() bool
	Search(ctx context.Context, query string) ([]omdb.SearchResult, error)
	Details(ctx context.Context, imdbID string) (*omdb.Details, error)
}

// MovieHandler handles a user's movie routes. All routes run behind middleware.LoadUser.
type MovieHandler struct {
	DM     services.DataManager
	Lookup MovieLookup
}

// movieForm accepts both form posts and JSON bodies.
// Empty values mean "leave unchanged" on update; Clear names fields to null.
type movieForm struct {
	Name     types.FlexString `json:"name"`
	Director types.FlexString `json:"director"`
	Year     types.FlexString `json:"year"`
	Rating   types.FlexString `json:"rating"`
	IMDbID   types.FlexString `json:"imdb_id"`
	Clear    []string         `json:"clear"`
}

func readMovieForm(c *fiber.Ctx) (movieForm, error) {
	var f movieForm
	if wantsJSON(c) {
		err := c.BodyParser(&f)
		return f, err
	}

	f.Name = formValue(c, "name")
	f.Director = formValue(c, "director")
	f.Year = formValue(c, "year")
	f.Rating = formValue(c, "rating")
	f.IMDbID = formValue(c, "imdb_id")
	if clear := formValue(c, "clear"); !clear.Empty() {
		f.Clear = strings.Split(clear.String(), ",")
	}
	return f, nil
}

func userMoviesURL(user *models.User) string {
	return fmt.Sprintf("/user/%d", user.ID)
}

// ownedMovie loads :movie_id and checks it belongs to the route's user
func (h *MovieHandler) ownedMovie(c *fiber.Ctx, user *models.User) (*models.Movie, error) {
	movieID, err := parseID(c, "movie_id")
	if err != nil {
		return nil, err
	}

	movie, err := h.DM.GetMovie(c.UserContext(), movieID)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return nil, err
	}
	if movie == nil || movie.UserID != user.ID {
		return nil, &types.CustomError{
			Code:    fiber.StatusNotFound,
			Message: fmt.Sprintf("Movie '%d' not found for user '%d'", movieID, user.ID),
			Type:    "data.movie.notfound",
		}
	}
	return movie, nil
}

// AddMovieForm handles GET /users/:id/add_movie
func (h *MovieHandler) AddMovieForm(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"user": user,
		"form": formSpec{
			Name:   "add_movie",
			Action: fmt.Sprintf("/users/%d/add_movie", user.ID),
			Method: fiber.MethodPost,
			Fields: movieFields,
		},
		"lookupEnabled": h.Lookup != nil && h.Lookup.Configured(),
	})
}

// AddMovie handles POST /users/:id/add_movie
// @Summary Add a movie to a user's list
// @Description With imdb_id set, missing fields are filled from OMDb
// @Tags Movies
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "User ID"
// @Param name formData string false "Movie name"
// @Param director formData string false "Director"
// @Param year formData int false "Year"
// @Param rating formData number false "Rating 0-10"
// @Param imdb_id formData string false "IMDb id for autofill"
// @Success 201 {object} models.Movie
// @Success 303
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /users/{id}/add_movie [post]
func (h *MovieHandler) AddMovie(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	f, err := readMovieForm(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}

	v := validator.New()
	input := services.MovieInput{Name: f.Name.String()}
	if !f.Director.Empty() {
		director := f.Director.String()
		input.Director = &director
	}
	if !f.Year.Empty() {
		if year, ok := v.ParseInt(f.Year.String(), "year"); ok {
			input.Year = &year
		}
	}
	if !f.Rating.Empty() {
		if rating, ok := v.ParseFloat(f.Rating.String(), "rating"); ok {
			input.Rating = &rating
		}
	}
	if !f.IMDbID.Empty() {
		h.autofill(c.UserContext(), &input, f.IMDbID.String(), v)
	}
	v.Check(validator.NotBlank(input.Name), "name", "must not be blank")
	if !v.Valid() {
		return utils.ValidationErrorResponse(c, v.FieldErrors)
	}

	movie, err := h.DM.AddMovie(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err, fmt.Sprintf("User '%d' not found", user.ID), "addMovie")
	}

	if !wantsJSON(c) {
		return c.Redirect(userMoviesURL(user), fiber.StatusSeeOther)
	}
	return utils.SuccessResponse(c, movie, fiber.StatusCreated)
}

// autofill fills the fields the client left empty from OMDb.
// Lookup failures other than an unknown id are logged and ignored.
func (h *MovieHandler) autofill(ctx context.Context, input *services.MovieInput, imdbID string, v *validator.Validator) {
	if !omdb.ValidIMDbID(imdbID) {
		v.AddFieldError("imdb_id", "must be an IMDb title id such as tt0111161")
		return
	}
	input.IMDbID = &imdbID

	if h.Lookup == nil || !h.Lookup.Configured() {
		return
	}

	details, err := h.Lookup.Details(ctx, imdbID)
	if err != nil {
		if errors.Is(err, omdb.ErrNotFound) {
			v.AddFieldError("imdb_id", "no movie with that IMDb id")
			return
		}
		log.Printf("addMovie: omdb details %s: %v", imdbID, err)
		return
	}

	if input.Name == "" && validator.MaxChars(details.Title, models.MaxNameLength) {
		input.Name = details.Title
	}
	if input.Director == nil {
		if director, ok := details.DirectorValue(); ok && validator.MaxChars(director, models.MaxNameLength) {
			input.Director = &director
		}
	}
	if input.Year == nil {
		if year, ok := details.YearValue(); ok {
			input.Year = &year
		}
	}
	if input.Rating == nil {
		if rating, ok := details.RatingValue(); ok {
			input.Rating = &rating
		}
	}
	if poster, ok := details.PosterValue(); ok {
		input.Poster = &poster
	}
	input.Metadata = details.Raw
}

// UpdateMovieForm handles GET /users/:id/update_movie/:movie_id
func (h *MovieHandler) UpdateMovieForm(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	movie, err := h.ownedMovie(c, user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"movie": movie,
		"form": formSpec{
			Name:   "update_movie",
			Action: fmt.Sprintf("/users/%d/update_movie/%d", user.ID, movie.ID),
			Method: fiber.MethodPost,
			Fields: movieFields[:4],
		},
	})
}

// UpdateMovie handles POST /users/:id/update_movie/:movie_id
// @Summary Update a movie
// @Description Empty fields are left unchanged; list fields in "clear" to null them
// @Tags Movies
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "User ID"
// @Param movie_id path int true "Movie ID"
// @Success 200 {object} models.Movie
// @Success 303
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /users/{id}/update_movie/{movie_id} [post]
func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	movie, err := h.ownedMovie(c, user)
	if err != nil {
		return err
	}

	f, err := readMovieForm(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}

	v := validator.New()
	update := services.MovieUpdate{
		Name:     types.SetIf(f.Name.String(), !f.Name.Empty()),
		Director: types.SetIf(f.Director.String(), !f.Director.Empty()),
	}
	if !f.Year.Empty() {
		if year, ok := v.ParseInt(f.Year.String(), "year"); ok {
			update.Year = types.Set(year)
		}
	}
	if !f.Rating.Empty() {
		if rating, ok := v.ParseFloat(f.Rating.String(), "rating"); ok {
			update.Rating = types.Set(rating)
		}
	}
	for _, field := range f.Clear {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "":
		case "director":
			update.Director = types.Clear[string]()
		case "year":
			update.Year = types.Clear[int]()
		case "rating":
			update.Rating = types.Clear[float64]()
		case "name":
			v.AddFieldError("clear", "name cannot be cleared")
		default:
			v.AddFieldError("clear", fmt.Sprintf("unknown field %q", field))
		}
	}
	if !v.Valid() {
		return utils.ValidationErrorResponse(c, v.FieldErrors)
	}

	updated, err := h.DM.UpdateMovie(c.UserContext(), movie.ID, update)
	if err != nil {
		return serviceError(c, err, fmt.Sprintf("Movie '%d' not found", movie.ID), "updateMovie")
	}

	if !wantsJSON(c) {
		return c.Redirect(userMoviesURL(user), fiber.StatusSeeOther)
	}
	return utils.SuccessResponse(c, updated, fiber.StatusOK)
}

// DeleteMovie handles POST /users/:id/delete_movie/:movie_id
// @Summary Delete a movie
// @Tags Movies
// @Produce json
// @Param id path int true "User ID"
// @Param movie_id path int true "Movie ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Success 303
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id}/delete_movie/{movie_id} [post]
func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	movie, err := h.ownedMovie(c, user)
	if err != nil {
		return err
	}

	deleted, err := h.DM.DeleteMovie(c.UserContext(), movie.ID)
	if err != nil {
		return serviceError(c, err, "", "deleteMovie")
	}
	if !deleted {
		return utils.NotFoundResponse(c, fmt.Sprintf("Movie '%d' not found", movie.ID))
	}

	if !wantsJSON(c) {
		return c.Redirect(userMoviesURL(user), fiber.StatusSeeOther)
	}
	return utils.MutationSuccessResponse(c, 1)
}
