package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieweb/internal/middleware"
	"github.com/localnerve/movieweb/internal/services"
)

// RegisterRoutes mounts every application route on router.
// The catch-all NotFound handler is left to the caller so it can come last.
func RegisterRoutes(router fiber.Router, dm services.DataManager, lookup MovieLookup) {
	users := &UserHandler{DM: dm}
	movies := &MovieHandler{DM: dm, Lookup: lookup}
	metadata := &MetadataHandler{Lookup: lookup}
	loadUser := middleware.LoadUser(dm)

	router.Get("/", users.Home)
	router.Get("/users", users.ListUsers)
	router.Get("/add_user", users.AddUserForm)
	router.Post("/add_user", users.AddUser)
	router.Get("/user/:id", loadUser, users.UserMovies)
	router.Post("/users/:id/delete", loadUser, users.DeleteUser)

	router.Get("/users/:id/add_movie", loadUser, movies.AddMovieForm)
	router.Post("/users/:id/add_movie", loadUser, movies.AddMovie)
	router.Get("/users/:id/update_movie/:movie_id", loadUser, movies.UpdateMovieForm)
	router.Post("/users/:id/update_movie/:movie_id", loadUser, movies.UpdateMovie)
	router.Post("/users/:id/delete_movie/:movie_id", loadUser, movies.DeleteMovie)

	router.Get("/movie_suggestions", metadata.Suggestions)
	router.Get("/movie_details", metadata.Details)
}
