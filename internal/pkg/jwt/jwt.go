package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Role is carried in the "role" claim and gates the admin surface.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Service verifies access tokens minted by the identity collaborator
// and issues the short-lived SSE tokens that are the only tokens this
// backend mints itself.
type Service interface {
	GenerateSSEToken(userID string, companyID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, companyID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateSSEToken generates a short-lived token for SSE connections,
// passed as a query parameter because EventSource cannot set headers.
func (j *JWTService) GenerateSSEToken(userID string, companyID string) (token string, expiresIn int, err error) {
	expiresIn = 300 // 5 minutes
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"type":       "sse",
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns its subject.
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, companyID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "sse" {
		return "", "", jwt.ErrInvalidJWT()
	}

	uid, ok := token.Get("user_id")
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}
	userID, ok = uid.(string)
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}

	cid, ok := token.Get("company_id")
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}
	companyID, ok = cid.(string)
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}

	return userID, companyID, nil
}
