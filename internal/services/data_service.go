package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/movieweb/internal/models"
	"github.com/localnerve/movieweb/internal/validator"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

const (
	minYear   = 1000
	maxYear   = 9999
	minRating = 0.0
	maxRating = 10.0
)

// SQLDataManager implements DataManager on any GORM dialect
type SQLDataManager struct {
	DB *gorm.DB
}

// NewSQLDataManager returns a DataManager backed by db
func NewSQLDataManager(db *gorm.DB) *SQLDataManager {
	return &SQLDataManager{DB: db}
}

// query returns a quiet session whose SELECTs carry the operation name as a SQL comment
func (m *SQLDataManager) query(ctx context.Context, op string) *gorm.DB {
	return m.DB.WithContext(ctx).
		Session(&gorm.Session{Logger: m.DB.Logger.LogMode(logger.Silent)}).
		Clauses(hints.Comment("select", "movieweb:"+op))
}

// GetAllUsers returns every user in primary key order
func (m *SQLDataManager) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := m.query(ctx, "get_all_users").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a single user without its movies
func (m *SQLDataManager) GetUser(ctx context.Context, userID uint64) (*models.User, error) {
	var user models.User
	if err := m.query(ctx, "get_user").First(&user, userID).Error; err != nil {
		return nil, notFound(err, "user", userID)
	}
	return &user, nil
}

// GetUserMovies returns ErrNotFound for a missing user and an empty slice for a user without movies
func (m *SQLDataManager) GetUserMovies(ctx context.Context, userID uint64) ([]models.Movie, error) {
	if _, err := m.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	movies := make([]models.Movie, 0)
	if err := m.query(ctx, "get_user_movies").
		Where("user_id = ?", userID).
		Order("id").
		Find(&movies).Error; err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// AddUser validates and inserts a new user
func (m *SQLDataManager) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, &ValidationError{Fields: map[string]string{"name": "must not be blank"}}
	}
	user.Name = strings.TrimSpace(user.Name)

	v := validator.New()
	v.Check(validator.NotBlank(user.Name), "name", "must not be blank")
	v.Check(validator.MaxChars(user.Name, models.MaxNameLength), "name", fmt.Sprintf("must not be more than %d characters", models.MaxNameLength))
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.FieldErrors}
	}

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("name = ?", user.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}
		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateName) || isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", user.Name, ErrDuplicateName)
		}
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user and all of their movies, returning the number of movies removed
func (m *SQLDataManager) DeleteUser(ctx context.Context, userID uint64) (int64, error) {
	var removed int64

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return notFound(err, "user", userID)
		}

		// Cascade explicitly; not every dialect enforces the FK constraint
		res := tx.Where("user_id = ?", userID).Delete(&models.Movie{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		return tx.Delete(&user).Error
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// AddMovie validates input and inserts a movie owned by userID
func (m *SQLDataManager) AddMovie(ctx context.Context, userID uint64, input MovieInput) (*models.Movie, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Director != nil {
		d := strings.TrimSpace(*input.Director)
		input.Director = &d
	}

	v := validator.New()
	v.Check(validator.NotBlank(input.Name), "name", "must not be blank")
	checkName(v, "name", input.Name)
	if input.Director != nil {
		checkName(v, "director", *input.Director)
	}
	if input.Year != nil {
		checkYear(v, *input.Year)
	}
	if input.Rating != nil {
		checkRating(v, *input.Rating)
	}
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.FieldErrors}
	}

	movie := models.Movie{
		Name:     input.Name,
		Director: input.Director,
		Year:     input.Year,
		Rating:   input.Rating,
		IMDbID:   input.IMDbID,
		Poster:   input.Poster,
		Metadata: models.NewJSON(input.Metadata),
		UserID:   userID,
	}

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, userID).Error; err != nil {
			return notFound(err, "user", userID)
		}
		return tx.Create(&movie).Error
	})
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// UpdateMovie applies the set patches of update to a movie
func (m *SQLDataManager) UpdateMovie(ctx context.Context, movieID uint64, update MovieUpdate) (*models.Movie, error) {
	v := validator.New()
	v.Check(!update.Name.IsClear(), "name", "must not be blank")
	if name := update.Name.Value(); name != nil {
		v.Check(validator.NotBlank(*name), "name", "must not be blank")
		checkName(v, "name", strings.TrimSpace(*name))
	}
	if d := update.Director.Value(); d != nil {
		checkName(v, "director", strings.TrimSpace(*d))
	}
	if y := update.Year.Value(); y != nil {
		checkYear(v, *y)
	}
	if r := update.Rating.Value(); r != nil {
		checkRating(v, *r)
	}
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.FieldErrors}
	}

	var movie models.Movie
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&movie, movieID).Error; err != nil {
			return notFound(err, "movie", movieID)
		}
		if update.Empty() {
			return nil
		}

		if name := update.Name.Value(); name != nil {
			movie.Name = strings.TrimSpace(*name)
		}
		update.Director.Apply(&movie.Director)
		if movie.Director != nil {
			d := strings.TrimSpace(*movie.Director)
			movie.Director = &d
		}
		update.Year.Apply(&movie.Year)
		update.Rating.Apply(&movie.Rating)

		return tx.Select("name", "director", "year", "rating", "updated_at").Save(&movie).Error
	})
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// DeleteMovie returns false without error when movieID does not resolve
func (m *SQLDataManager) DeleteMovie(ctx context.Context, movieID uint64) (bool, error) {
	res := m.DB.WithContext(ctx).Delete(&models.Movie{}, movieID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetMovie returns a single movie
func (m *SQLDataManager) GetMovie(ctx context.Context, movieID uint64) (*models.Movie, error) {
	var movie models.Movie
	if err := m.query(ctx, "get_movie").First(&movie, movieID).Error; err != nil {
		return nil, notFound(err, "movie", movieID)
	}
	return &movie, nil
}

func checkName(v *validator.Validator, key, value string) {
	v.Check(validator.MaxChars(value, models.MaxNameLength), key, fmt.Sprintf("must not be more than %d characters", models.MaxNameLength))
}

func checkYear(v *validator.Validator, year int) {
	v.Check(validator.Between(year, minYear, maxYear), "year", "must be a four digit year")
}

func checkRating(v *validator.Validator, rating float64) {
	v.Check(validator.Between(rating, minRating, maxRating), "rating", "must be between 0 and 10")
}
