package jwt

import (
	"fmt"
	"time"

	"github.com/akazakov/polls-api/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

func NewToken(user entity.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["uid"] = user.ID
	claims["username"] = user.Username
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

func ParseToken(tokenString, secret string) (int64, string, error) {
	const op = "jwt.ParseToken"

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("%s: invalid claims", op)
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("%s: uid claim missing", op)
	}
	username, ok := claims["username"].(string)
	if !ok {
		return 0, "", fmt.Errorf("%s: username claim missing", op)
	}

	return int64(uid), username, nil
}
