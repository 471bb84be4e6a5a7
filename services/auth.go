package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"
	"github.com/safe-steps/prepared_api/shared"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns registration, login and role resolution. The role is never
// stored on the user: it is derived from the administrator registry and
// re-resolved on every login and on every admin-gated request.
type AuthService struct {
	context.DefaultService

	sqlSvc *PostgresService
	jwtSvc *JWTService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	available, err := svc.sqlSvc.IsEmailAvailable(req.Email)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, shared.NewConflictError(nil, "Email is already registered")
	}

	available, err = svc.sqlSvc.IsUsernameAvailable(req.Username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, shared.NewConflictError(nil, "Username is taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to process password")
	}

	user, err := svc.sqlSvc.CreateUser(req, string(hash))
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": user.ID, "username": user.Username}).
		Info("User registered")

	return &dto.RegisterResponse{
		UserID:  user.ID,
		Message: "Registration successful",
	}, nil
}

// Login writes the session row first, then resolves the role against the
// admin registry. Sequencing the role query behind the session write removes
// any need for a settle delay between the two.
func (svc *AuthService) Login(req dto.LoginRequest, clientIP, userAgent string) (*dto.LoginResponse, error) {
	user, err := svc.sqlSvc.GetUserByEmailOrUsername(req.EmailOrUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(nil, "Invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, shared.NewForbiddenError(nil, "Account is disabled")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, shared.NewUnauthorizedError(nil, "Invalid credentials")
	}

	sessionID := uuid.New().String()
	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, sessionID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}

	now := time.Now()
	if _, err := svc.sqlSvc.CreateUserSession(&model.UserSession{
		ID:        sessionID,
		UserID:    user.ID,
		TokenHash: hashToken(tokens.AccessToken),
		IP:        clientIP,
		UserAgent: userAgent,
		IsActive:  true,
		LastUsed:  now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.UpdateLastLogin(user.ID, clientIP); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	role, err := svc.ResolveRole(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
		SessionID:   sessionID,
		User: dto.UserInfo{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			CreatedAt:   user.CreatedAt,
			LastLoginAt: user.LastLoginAt,
		},
		Role: *role,
	}, nil
}

func (svc *AuthService) Logout(userID, sessionID string) error {
	return svc.sqlSvc.DeactivateSession(sessionID, userID)
}

// hashToken stores a fingerprint of the issued token on the session row; the
// token itself is never persisted.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ResolveRole queries the administrator registry: no row means standard role.
func (svc *AuthService) ResolveRole(userID string) (*dto.RoleInfo, error) {
	admin, err := svc.sqlSvc.GetAdminUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.RoleInfo{IsAdmin: false, IsStudent: true}, nil
		}
		return nil, err
	}

	var permissions []string
	if admin.Permissions != nil {
		if err := json.Unmarshal(admin.Permissions, &permissions); err != nil {
			log.WithError(err).WithField("user_id", userID).
				Warn("Failed to unmarshal admin permissions")
			permissions = []string{}
		}
	}

	return &dto.RoleInfo{
		IsAdmin:     true,
		IsStudent:   false,
		AdminLevel:  admin.AdminLevel,
		Permissions: permissions,
	}, nil
}

// ==================== MIDDLEWARE ====================

func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}

		payload, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if payload.UserID == "" {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
		}

		if payload.SessionID != "" {
			if _, err := svc.sqlSvc.GetActiveSession(payload.SessionID); err != nil {
				return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Session expired")
			}
		}

		c.Locals(shared.UserID, payload.UserID)
		c.Locals(shared.SessionID, payload.SessionID)
		return c.Next()
	}
}

// RequireAdmin re-resolves the role on every request rather than trusting
// anything cached in the token.
func (svc *AuthService) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(shared.UserID).(string)
		if !ok || userID == "" {
			return shared.ResponseUnauthorized(c)
		}

		role, err := svc.ResolveRole(userID)
		if err != nil {
			return err
		}
		if !role.IsAdmin {
			return shared.ResponseJSON(c, fiber.StatusForbidden, "Forbidden", "Administrator access required")
		}

		return c.Next()
	}
}
