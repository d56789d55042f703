package security

import (
	"errors"
	"time"

	"recruitconnect/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// TokenPair carries the two tokens handed out on register/login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // always "Bearer"
}

func GenerateTokenPair(userID, role string) (*TokenPair, error) {
	access, err := generateToken(userID, role, TokenTypeAccess, config.AppConfig.JWTExp)
	if err != nil {
		return nil, err
	}
	refresh, err := generateToken(userID, role, TokenTypeRefresh, config.AppConfig.JWTRefreshExp)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "Bearer"}, nil
}

// GenerateAccessToken mints a fresh access token during the refresh flow.
func GenerateAccessToken(userID, role string) (string, error) {
	return generateToken(userID, role, TokenTypeAccess, config.AppConfig.JWTExp)
}

func generateToken(userID, role, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"role":       role,
		"token_type": tokenType,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, used by the auth middleware.
func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetTokenTypeFromClaims(claims map[string]interface{}) string {
	t, _ := claims["token_type"].(string)
	return t
}
