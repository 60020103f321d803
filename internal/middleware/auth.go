package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pageza/foodies/backend/internal/logging"
	"github.com/pageza/foodies/backend/internal/models"
	"gorm.io/gorm"
)

const viewerIDKey = "viewer_id"

var (
	ErrMissingToken = errors.New("authorization header missing")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenValidator is an interface for validating bearer tokens. It returns the id of
// the user the token was issued to.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uint, error)
}

// JWTValidator verifies HS256 tokens whose subject is the user id.
type JWTValidator struct {
	secret []byte
	users  *gorm.DB
}

// NewJWTValidator creates a validator for tokens signed with secret
func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret)}
}

// WithSessionCheck additionally requires the token to be the one stored on the user,
// so logging out revokes it.
func (v *JWTValidator) WithSessionCheck(db *gorm.DB) *JWTValidator {
	v.users = db
	return v
}

// GenerateToken signs a token for userID valid for ttl.
func (v *JWTValidator) GenerateToken(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func (v *JWTValidator) ValidateToken(ctx context.Context, tokenString string) (uint, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	if v.users != nil {
		var n int64
		err := v.users.WithContext(ctx).Model(&models.User{}).
			Where("id = ? AND token = ?", id, tokenString).
			Count(&n).Error
		if err != nil {
			return 0, fmt.Errorf("failed to check session: %w", err)
		}
		if n == 0 {
			return 0, fmt.Errorf("%w: session not found", ErrInvalidToken)
		}
	}
	return uint(id), nil
}

// Authenticate rejects requests without a valid bearer token and stores the viewer id.
func Authenticate(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}

		userID, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logging.Ctx(c.Request.Context()).Debug().Err(err).Msg("rejected token")
			abortWithError(c, http.StatusUnauthorized, "Not authorized")
			return
		}

		c.Set(viewerIDKey, userID)
		c.Next()
	}
}

// OptionalAuthenticate stores the viewer id when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuthenticate(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil {
			if userID, err := validator.ValidateToken(c.Request.Context(), token); err == nil {
				c.Set(viewerIDKey, userID)
			} else {
				logging.Ctx(c.Request.Context()).Debug().Err(err).Msg("optional auth failed")
			}
		}
		c.Next()
	}
}

// ViewerID returns the authenticated user id, if any.
func ViewerID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(viewerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("authorization header must have bearer type")
	}
	return parts[1], nil
}

// abortWithError writes the standard {status, message} error envelope.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  status,
		"message": message,
	})
}
