package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

const sessionTTL = 24 * 7 * time.Hour

type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtSecret   string
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtSecret string,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   jwtSecret,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the authenticated user.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest, deviceInfo, ipAddress string) (*AuthResponse, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		IsOnline:     true,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user, IsNewUser: true}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest, deviceInfo, ipAddress string) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.userRepo.UpdateOnlineStatus(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("failed to update online status: %w", err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user, IsNewUser: false}, nil
}

// createSession issues a JWT and records its hash server-side so tokens can
// be revoked on logout.
func (uc *AuthUseCase) createSession(ctx context.Context, userID int, deviceInfo, ipAddress string) (string, time.Time, error) {
	expiresAt := time.Now().Add(sessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.NewString(),
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		UserID:     userID,
		Token:      uc.hashToken(tokenString),
		DeviceInfo: &deviceInfo,
		IPAddress:  &ipAddress,
		ExpiresAt:  expiresAt,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// VerifyToken validates the JWT and its backing session, returning the
// authenticated user id.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	session, err := uc.sessionRepo.GetByToken(ctx, uc.hashToken(tokenString))
	if err != nil {
		return 0, domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		return 0, domain.ErrSessionExpired
	}

	return int(userID), nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, userID int, tokenString string) error {
	if err := uc.userRepo.UpdateOnlineStatus(ctx, userID, false); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return uc.sessionRepo.DeleteByToken(ctx, uc.hashToken(tokenString))
}

func (uc *AuthUseCase) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// PurgeExpiredSessions removes sessions past their expiry and reports how
// many rows were deleted.
func (uc *AuthUseCase) PurgeExpiredSessions(ctx context.Context) (int, error) {
	deleted, err := uc.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return deleted, nil
}

func (uc *AuthUseCase) hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
