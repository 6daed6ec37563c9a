package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/akazakov/polls-api/internal/entity"
	jwtGo "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestNewToken_RoundTrip(t *testing.T) {
	user := entity.User{ID: 42, Username: "gopher"}

	issuedAt := time.Now()

	token, err := NewToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, username, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, uid)
	assert.Equal(t, user.Username, username)

	parsed, err := jwtGo.Parse(token, func(token *jwtGo.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwtGo.MapClaims)
	require.True(t, ok)

	const deltaSeconds = 1
	assert.InDelta(t, issuedAt.Add(time.Hour).Unix(), claims["exp"].(float64), deltaSeconds)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewToken(entity.User{ID: 1, Username: "gopher"}, testSecret, time.Hour)
	require.NoError(t, err)

	_, _, err = ParseToken(token, "another-secret")
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := NewToken(entity.User{ID: 1, Username: "gopher"}, testSecret, -time.Hour)
	require.NoError(t, err)

	_, _, err = ParseToken(token, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token is expired")
}

func TestParseToken_WrongSigningMethod(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	claims := jwtGo.MapClaims{
		"uid":      int64(50),
		"username": "gopher",
		"exp":      time.Now().Add(time.Minute).Unix(),
	}
	token := jwtGo.NewWithClaims(jwtGo.SigningMethodRS256, claims)
	signed, err := token.SignedString(privKey)
	require.NoError(t, err)

	_, _, err = ParseToken(signed, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected signing method")
}

func TestParseToken_MissingUIDClaim(t *testing.T) {
	claims := jwtGo.MapClaims{
		"username": "gopher",
		"exp":      time.Now().Add(time.Minute).Unix(),
	}
	token := jwtGo.NewWithClaims(jwtGo.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = ParseToken(signed, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uid claim missing")
}

func TestParseToken_MissingUsernameClaim(t *testing.T) {
	claims := jwtGo.MapClaims{
		"uid": int64(50),
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	token := jwtGo.NewWithClaims(jwtGo.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = ParseToken(signed, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username claim missing")
}

func TestParseToken_Garbage(t *testing.T) {
	_, _, err := ParseToken("not.a.jwt", testSecret)
	require.Error(t, err)
}
