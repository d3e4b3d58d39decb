package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"charitybridge/internal/auth"
	"charitybridge/internal/logger"
	"charitybridge/internal/models"
	"charitybridge/internal/policy"
	"charitybridge/internal/services"
	"charitybridge/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	userIDKey = "userID"
	roleKey   = "role"

	syncTTL = 10 * time.Minute
)

// UserSyncer is the part of services.UserService the middleware needs.
type UserSyncer interface {
	SyncUser(ctx context.Context, db *gorm.DB, identity services.Identity) error
}

// identityCache remembers recently synced identities so the user read model
// is upserted once per TTL rather than on every request.
type identityCache struct {
	seen sync.Map // services.Identity -> time.Time
	now  func() time.Time
}

func (c *identityCache) fresh(id services.Identity) bool {
	v, ok := c.seen.Load(id)
	return ok && c.now().Sub(v.(time.Time)) < syncTTL
}

func (c *identityCache) mark(id services.Identity) {
	c.seen.Store(id, c.now())
}

// AuthMiddleware - middleware проверки JWT. users may be nil, then the user
// read model is not touched.
func AuthMiddleware(users UserSyncer, db *gorm.DB) gin.HandlerFunc {
	cache := &identityCache{now: time.Now}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		// users.id is a uuid column; anything else would fail later as a 500
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		identity := services.Identity{
			ID:    userID.String(),
			Role:  models.UserRole(claims.Role),
			Email: claims.Email,
			Name:  claims.Name,
		}
		if !identity.Role.Valid() {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), identity.ID)
		c.Request = c.Request.WithContext(ctx)

		if users != nil && !cache.fresh(identity) {
			if err := users.SyncUser(ctx, db, identity); err != nil {
				apperrors.HandleError(c, err)
				return
			}
			cache.mark(identity)
		}

		// Сохраняем claims в контекст
		c.Set(userIDKey, identity.ID)
		c.Set(roleKey, identity.Role)
		c.Next()
	}
}

// RequireRoles - middleware для проверки нескольких возможных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		if !roleSet[GetUserRole(c)] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("auth", "Access denied: insufficient role"))
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func GetUserRole(c *gin.Context) models.UserRole {
	v, ok := c.Get(roleKey)
	if !ok {
		return ""
	}
	role, _ := v.(models.UserRole)
	return role
}

// GetActor returns the authenticated caller, ok=false on public routes.
func GetActor(c *gin.Context) (policy.Actor, bool) {
	id := GetUserID(c)
	if id == "" {
		return policy.Actor{}, false
	}
	return policy.Actor{ID: id, Role: GetUserRole(c)}, true
}
