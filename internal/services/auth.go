package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/requestdata"
	"github.com/openbims/bims-backend/internal/types"
	"github.com/openbims/bims-backend/internal/utils"
)

const (
	PrincipalStaff    = "staff"
	PrincipalResident = "resident"
)

type JWTClaims struct {
	Principal string `json:"principal"`
	Refresh   bool   `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	RegisterStaff(ctx context.Context, input RegisterStaffInput) (*types.Staff, error)
	LoginStaff(ctx context.Context, username, password string) (*TokenPair, error)
	LoginResident(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// SetContextFromToken validates the access token and stores the caller
	// identity in the request context.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	staffRepo    repos.StaffRepo
	accountRepo  repos.AccountRepo
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	staffRepo repos.StaffRepo,
	accountRepo repos.AccountRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		staffRepo:    staffRepo,
		accountRepo:  accountRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

type RegisterStaffInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Assignment string `json:"assignment"`
}

func (s *authService) RegisterStaff(ctx context.Context, input RegisterStaffInput) (*types.Staff, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", pkgerrors.ErrInvalidArgument)
	}
	switch input.Assignment {
	case types.StaffAssignmentProfiling, types.StaffAssignmentAdmin, types.StaffAssignmentBHW:
	default:
		return nil, fmt.Errorf("%w: unknown assignment %q", pkgerrors.ErrInvalidArgument, input.Assignment)
	}

	existing, err := s.staffRepo.GetByUsernames(ctx, nil, []string{username})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: username %q is taken", pkgerrors.ErrConflict, username)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	created, err := s.staffRepo.Create(ctx, nil, []*types.Staff{{
		ID:         uuid.New(),
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Username:   username,
		Password:   hash,
		Assignment: input.Assignment,
	}})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *authService) LoginStaff(ctx context.Context, username, password string) (*TokenPair, error) {
	staff, err := s.staffRepo.GetByUsernames(ctx, nil, []string{strings.TrimSpace(username)})
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		return nil, fmt.Errorf("%w: invalid credentials", pkgerrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff[0].Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", pkgerrors.ErrUnauthorized)
	}
	return s.issueTokens(PrincipalStaff, staff[0].ID.String())
}

func (s *authService) LoginResident(ctx context.Context, username, password string) (*TokenPair, error) {
	accounts, err := s.accountRepo.GetByUsernames(ctx, nil, []string{strings.TrimSpace(username)})
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: invalid credentials", pkgerrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(accounts[0].Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", pkgerrors.ErrUnauthorized)
	}
	return s.issueTokens(PrincipalResident, accounts[0].RpID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUnauthorized, err)
	}
	if !claims.Refresh {
		return nil, fmt.Errorf("%w: not a refresh token", pkgerrors.ErrUnauthorized)
	}
	return s.issueTokens(claims.Principal, claims.Subject)
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", pkgerrors.ErrUnauthorized, err)
	}
	if claims.Refresh {
		return ctx, fmt.Errorf("%w: refresh token used as access token", pkgerrors.ErrUnauthorized)
	}

	rd := &requestdata.RequestData{TokenString: tokenString}
	switch claims.Principal {
	case PrincipalStaff:
		staffID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return ctx, fmt.Errorf("%w: malformed staff id in token", pkgerrors.ErrUnauthorized)
		}
		rd.StaffID = staffID
	case PrincipalResident:
		rd.ResidentID = claims.Subject
	default:
		return ctx, fmt.Errorf("%w: unknown principal %q", pkgerrors.ErrUnauthorized, claims.Principal)
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (s *authService) GetAccessTTL() time.Duration {
	return s.accessTTL
}

func (s *authService) issueTokens(principal, subject string) (*TokenPair, error) {
	access, err := s.signToken(principal, subject, s.accessTTL, false)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(principal, subject, s.refreshTTL, true)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) signToken(principal, subject string, ttl time.Duration, refresh bool) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Principal: principal,
		Refresh:   refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}

func (s *authService) parseToken(tokenString string) (*JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
