package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
	"rackup/internal/infrastructure/firebase"
	"rackup/pkg/errors"
)

// IdentityVerifier validates an identity-provider token and returns the
// profile claims it carries.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebase.IdentityClaims, error)
}

type AuthUseCase struct {
	userRepo repository.UserRepository
	verifier IdentityVerifier
	secret   []byte
	issuer   string
	expiry   time.Duration
}

func NewAuthUseCase(userRepo repository.UserRepository, verifier IdentityVerifier, secret, issuer string, expiry time.Duration) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		verifier: verifier,
		secret:   []byte(secret),
		issuer:   issuer,
		expiry:   expiry,
	}
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Exchange trades a verified identity-provider token for an application
// token. The profile carried by the provider token is upserted, so a user's
// name and avatar refresh on every sign-in.
func (uc *AuthUseCase) Exchange(ctx context.Context, idToken string) (*AuthResult, error) {
	claims, err := uc.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid identity token", err)
	}

	user := &entity.User{
		ID:       claims.UID,
		Name:     claims.Name,
		Email:    claims.Email,
		Phone:    claims.Phone,
		Avatar:   claims.Avatar,
		Provider: claims.Provider,
	}

	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.mintToken(user)
	if err != nil {
		return nil, errors.Internal("Failed to sign token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Resolve validates an application token and returns the user id it was
// minted for. Every protected surface, REST and streaming alike, goes
// through here.
func (uc *AuthUseCase) Resolve(ctx context.Context, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return uc.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}

	return sub, nil
}

// Me returns the profile of the authenticated user.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AuthUseCase) mintToken(user *entity.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"avatar":   user.Avatar,
		"provider": user.Provider,
		"iss":      uc.issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(uc.expiry).Unix(),
	})

	return token.SignedString(uc.secret)
}
