package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the identity service. This service
// never mints tokens of its own.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	ClaimsFromContext(ctx context.Context) (Claims, error)
}

// Claims is the subset of access-token claims this service consumes.
type Claims struct {
	UserID     string
	EmployeeID string
	Role       string
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

func (j *JWTService) ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Claims{}, fmt.Errorf("role claim is missing or invalid")
	}

	employeeID, _ := claims["employee_id"].(string)

	return Claims{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       role,
	}, nil
}
