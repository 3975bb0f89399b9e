package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Roles carried in the HR SSO token.
const (
	RoleOnsite      = "onsite"
	RoleCoordinator = "coordinator"
)

// Service verifies access tokens issued by the HR SSO. This API never issues
// tokens to end users; GenerateToken exists for local tooling and tests.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateToken(nik string, role string, expiry time.Duration) (string, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateToken(nik string, role string, expiry time.Duration) (string, error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"nik":  nik,
		"role": role,
		"type": "access",
		"exp":  time.Now().Add(expiry).Unix(),
	})
	return tokenString, err
}
