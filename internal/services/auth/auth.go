package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akazakov/polls-api/internal/entity"
	"github.com/akazakov/polls-api/internal/lib/jwt"
	"github.com/akazakov/polls-api/internal/lib/logger/sl"
	"github.com/akazakov/polls-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=../mocks/auth.go -package=mocks

type Auth struct {
	log          *slog.Logger
	userSaver    UserSaver
	userProvider UserProvider
	secret       string
	tokenTTL     time.Duration
}

type UserSaver interface {
	SaveUser(ctx context.Context, username string, passHash []byte) (uid int64, err error)
}

type UserProvider interface {
	User(ctx context.Context, username string) (user entity.User, err error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

// NewAuth returns a new instance of the Auth service.
func NewAuth(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	secret string,
	tokenTTL time.Duration,
) *Auth {
	return &Auth{
		log:          log,
		userSaver:    userSaver,
		userProvider: userProvider,
		secret:       secret,
		tokenTTL:     tokenTTL,
	}
}

// RegisterNewUser registers new user in the system and returns user ID.
// If user with given username already exists, returns error.
func (auth *Auth) RegisterNewUser(ctx context.Context, username, password string) (int64, error) {
	const op = "auth.RegisterNewUser"

	log := auth.log.With(slog.String("op", op), slog.String("username", username))

	log.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate hash password", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := auth.userSaver.SaveUser(ctx, username, passHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists", sl.Err(err))
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		log.Error("failed to save user", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered successfully")
	return id, nil
}

// Login checks if user with given credentials exists in the system and returns access token.
// If user exists, but password is incorrect, returns error.
// If user doesn`t exist, returns error.
func (auth *Auth) Login(ctx context.Context, username, password string) (string, error) {
	const op = "auth.Login"

	log := auth.log.With(slog.String("op", op), slog.String("username", username))

	log.Info("attempting to login user")

	user, err := auth.userProvider.User(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		log.Warn("failed to get user", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(user, auth.secret, auth.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("successfully logged in")

	return token, nil
}

// VerifyToken checks the token signature and expiry and returns the
// authenticated user ID with username.
func (auth *Auth) VerifyToken(ctx context.Context, accessToken string) (int64, string, error) {
	const op = "auth.VerifyToken"

	uid, username, err := jwt.ParseToken(accessToken, auth.secret)
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, username, nil
}
