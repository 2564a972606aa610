package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	HashPassword(plain string) (string, error)
	CheckPassword(hash, plain string) bool

	IssueAccessToken(userID int) (string, error)
	IssueRefreshToken(userID int) (string, error)
	// ParseToken returns the user id carried in the audience claim.
	// Failures collapse to ErrTokenExpired or ErrTokenInvalid.
	ParseToken(tokenStr string) (int, error)

	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type authService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(secret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Tokens identify the user through the audience claim: aud = decimal user id.
func (s *authService) claims(userID int, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Audience:  jwt.ClaimStrings{strconv.Itoa(userID)},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
}

func (s *authService) IssueAccessToken(userID int) (string, error) {
	claims := s.claims(userID, s.accessTTL)
	claims.ID = uuid.New().String()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) IssueRefreshToken(userID int) (string, error) {
	claims := s.claims(userID, s.refreshTTL)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) ParseToken(tokenStr string) (int, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid || len(claims.Audience) == 0 {
		return 0, ErrTokenInvalid
	}
	id, err := strconv.Atoi(claims.Audience[0])
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return id, nil
}

func (s *authService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *authService) RefreshTTL() time.Duration { return s.refreshTTL }
