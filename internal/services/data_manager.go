// data_manager.go
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

package services

import (
	"context"

	"github.com/localnerve/movieweb/internal/models"
	"github.com/localnerve/movieweb/internal/types"
)

// DataManager is the data-access contract over users and their movies.
// Each mutating call runs in its own transaction.
type DataManager interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID uint64) (*models.User, error)
	GetUserMovies(ctx context.Context, userID uint64) ([]models.Movie, error)
	AddUser(ctx context.Context, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, userID uint64) (int64, error)
	AddMovie(ctx context.Context, userID uint64, input MovieInput) (*models.Movie, error)
	UpdateMovie(ctx context.Context, movieID uint64, update MovieUpdate) (*models.Movie, error)
	DeleteMovie(ctx context.Context, movieID uint64) (bool, error)
	GetMovie(ctx context.Context, movieID uint64) (*models.Movie, error)
}

// MovieInput holds the fields of a new movie. Nil pointers are stored as NULL.
type MovieInput struct {
	Name     string
	Director *string
	Year     *int
	Rating   *float64
	IMDbID   *string
	Poster   *string
	Metadata []byte
}

// MovieUpdate is a partial update; unset patches leave their column alone.
type MovieUpdate struct {
	Name     types.Patch[string]
	Director types.Patch[string]
	Year     types.Patch[int]
	Rating   types.Patch[float64]
}

// Empty reports whether the update changes nothing
func (u MovieUpdate) Empty() bool {
	return !u.Name.IsSet() && !u.Director.IsSet() && !u.Year.IsSet() && !u.Rating.IsSet()
}
