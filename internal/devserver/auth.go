package devserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	ctxUserIDKey = "user_id"
	ctxRoleKey   = "user_role"

	tokenTTL = 12 * time.Hour
)

type authClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func issueToken(secret string, userID int, username, role string) (string, error) {
	claims := authClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(secret, raw string) (*authClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &authClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	claims, ok := token.Claims.(*authClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	return claims, nil
}

// authMiddleware enforces the bearer contract on every /api route except
// login: a missing or bad token is a 401, which the client maps onto its
// authentication error variant.
func authMiddleware(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization must be 'Bearer <token>'"})
			return
		}

		claims, err := parseToken(secret, parts[1])
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

func actingUser(c *gin.Context) (int, string) {
	return c.GetInt(ctxUserIDKey), c.GetString(ctxRoleKey)
}

// login exchanges credentials for a bearer token. Accounts live in the
// "users" collection with bcrypt password hashes.
func (s *Server) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	users, err := s.store.List(c.Request.Context(), "users")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}

	for _, user := range users {
		if user["username"] != req.Username {
			continue
		}
		hash, _ := user["password_hash"].(string)
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			break
		}
		role, _ := user["role"].(string)
		token, err := issueToken(s.jwtSecret, docID(user), req.Username, role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":       docID(user),
				"username": req.Username,
				"role":     role,
			},
		})
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
}

// HashPassword derives the stored bcrypt hash for seeded accounts.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// SeedUser inserts an account directly into the store, for dev seeding and
// tests.
func SeedUser(ctx context.Context, store Store, username, password, role string) (int, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return 0, err
	}
	doc, err := store.Insert(ctx, "users", map[string]any{
		"username":      username,
		"full_name":     username,
		"role":          role,
		"active":        true,
		"password_hash": hash,
	})
	if err != nil {
		return 0, err
	}
	return docID(doc), nil
}
