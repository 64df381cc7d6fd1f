package authorization

import (
	"fmt"
	"os"
	"time"

	"github.com/cristalhq/jwt/v4"
)

var jwtKey = []byte(os.Getenv("SECRET_KEY"))

const tokenLifetime = 12 * time.Hour

type Claims struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func GenerateJWT(username, role, sessionID string) (string, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, jwtKey)
	if err != nil {
		return "", err
	}

	builder := jwt.NewBuilder(signer)
	claims := &Claims{
		Username:  username,
		Role:      role,
		SessionID: sessionID,
		ExpiresAt: time.Now().Add(tokenLifetime),
	}

	token, err := builder.Build(claims)
	if err != nil {
		return "", err
	}
	return token.String(), nil
}

func VerifyJWT(tokenString string) (*Claims, error) {
	verifier, err := jwt.NewVerifierHS(jwt.HS256, jwtKey)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse([]byte(tokenString), verifier)
	if err != nil {
		return nil, err
	}

	var claims Claims
	if err := jwt.ParseClaims(token.Bytes(), verifier, &claims); err != nil {
		return nil, err
	}

	if time.Now().After(claims.ExpiresAt) {
		return nil, fmt.Errorf("token expired")
	}
	return &claims, nil
}
