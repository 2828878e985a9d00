package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
	"github.com/Yandex-School/SplitBill-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const sessionTTL = 24 * time.Hour

type SessionClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

type UserService struct {
	users     repository.UserStore
	sessions  repository.SessionStore
	jwtSecret []byte
}

// NewUserService creates a new instance of UserService.
func NewUserService(users repository.UserStore, sessions repository.SessionStore, jwtSecret []byte) *UserService {
	return &UserService{users: users, sessions: sessions, jwtSecret: jwtSecret}
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, username, password, fullName, photoURL string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, entity.NewValidationError("Username and password are required.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Password: string(hashed),
		FullName: fullName,
		PhotoURL: photoURL,
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, entity.NewConflictError("Username already exists.")
		}
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return created, nil
}

// Login checks credentials and issues a session token. The token is a
// signed JWT, but it is only honored while the session it names is still
// present in the session store.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", entity.NewValidationError("Username and password are required.")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", entity.NewNotFoundError("Invalid username or password")
		}
		logger.Error().Err(err).Msgf("Error getting user %q", username)
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", entity.NewNotFoundError("Invalid username or password")
	}

	claims := &SessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	if err := s.sessions.SaveSession(ctx, token, user.ID, sessionTTL); err != nil {
		logger.Error().Err(err).Msg("Error saving session")
		return "", err
	}

	return token, nil
}

// ValidateToken resolves a session ticket to the user id it was issued for.
func (s *UserService) ValidateToken(ctx context.Context, token string) (int, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, entity.NewUnauthorizedError("Unauthorized")
	}

	userID, err := s.sessions.ResolveSession(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, entity.NewUnauthorizedError("Unauthorized")
		}
		logger.Error().Err(err).Msg("Error resolving session")
		return 0, err
	}

	return userID, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id int) (*entity.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.NewNotFoundError("User Does not exist!")
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, err
	}
	return user, nil
}
