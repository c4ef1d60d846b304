package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieweb/internal/omdb"
	"github.com/localnerve/movieweb/internal/utils"
)

// MetadataHandler serves OMDb lookups for the movie forms
type MetadataHandler struct {
	Lookup MovieLookup
}

func (h *MetadataHandler) unavailable(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, "Movie lookup is not configured", fiber.StatusServiceUnavailable, "omdb.unconfigured")
}

// Suggestions handles GET /movie_suggestions?query=
// @Summary Search OMDb by title
// @Tags Metadata
// @Produce json
// @Param query query string true "Title fragment"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /movie_suggestions [get]
func (h *MetadataHandler) Suggestions(c *fiber.Ctx) error {
	if h.Lookup == nil || !h.Lookup.Configured() {
		return h.unavailable(c)
	}

	query := strings.TrimSpace(c.Query("query"))
	results, err := h.Lookup.Search(c.UserContext(), query)
	if err != nil {
		log.Printf("movieSuggestions %q: %v", query, err)
		return utils.ErrorResponse(c, "Movie lookup failed", fiber.StatusBadGateway, "omdb.search")
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"results": results,
	})
}

// Details handles GET /movie_details?imdbID=
// @Summary Fetch OMDb details for an IMDb id
// @Tags Metadata
// @Produce json
// @Param imdbID query string true "IMDb id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /movie_details [get]
func (h *MetadataHandler) Details(c *fiber.Ctx) error {
	imdbID := strings.TrimSpace(c.Query("imdbID"))
	if !omdb.ValidIMDbID(imdbID) {
		return utils.ErrorResponse(c, "imdbID must be an IMDb title id such as tt0111161", fiber.StatusBadRequest, "data.validation.input")
	}
	if h.Lookup == nil || !h.Lookup.Configured() {
		return h.unavailable(c)
	}

	details, err := h.Lookup.Details(c.UserContext(), imdbID)
	if err != nil {
		if errors.Is(err, omdb.ErrNotFound) {
			return utils.NotFoundResponse(c, "Movie '"+imdbID+"' not found")
		}
		log.Printf("movieDetails %s: %v", imdbID, err)
		return utils.ErrorResponse(c, "Movie lookup failed", fiber.StatusBadGateway, "omdb.details")
	}

	// Field names match the add_movie form so clients can prefill it
	result := fiber.Map{
		"imdb_id": details.IMDbID,
		"name":    details.Title,
		"plot":    details.Plot,
		"genre":   details.Genre,
	}
	if director, ok := details.DirectorValue(); ok {
		result["director"] = director
	}
	if year, ok := details.YearValue(); ok {
		result["year"] = year
	}
	if rating, ok := details.RatingValue(); ok {
		result["rating"] = rating
	}
	if poster, ok := details.PosterValue(); ok {
		result["poster"] = poster
	}

	return c.JSON(result)
}
