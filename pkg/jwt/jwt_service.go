package jwt

import (
	"errors"
	"fmt"
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

const DefaultSessionTTL = 8 * time.Hour

type (
	JWTService interface {
		GenerateSessionToken(claims SessionClaims) (string, time.Time, error)
		ValidateSessionToken(token string) (*jwt.Token, error)
		ParseSessionToken(token string) (SessionClaims, error)
	}

	SessionClaims struct {
		SessionID string `json:"sid"`
		UserID    string `json:"user_id"`
		Role      string `json:"role"`
	}

	jwtSessionClaim struct {
		SessionClaims
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	return utils.GetConfig("JWT_SECRET")
}

func NewJWTService() JWTService {
	return NewJWTServiceWithSecret(getSecretKey(), DefaultSessionTTL)
}

func NewJWTServiceWithSecret(secret string, ttl time.Duration) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    "TURMERIC-TRACE",
		ttl:       ttl,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateSessionToken(c SessionClaims) (string, time.Time, error) {
	if j.secretKey == "" {
		return "", time.Time{}, errors.New("JWT_SECRET is not configured")
	}

	now := j.now()
	expiresAt := now.Add(j.ttl)
	claims := jwtSessionClaim{
		c,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   c.UserID,
			ID:        c.SessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateSessionToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtSessionClaim{}, j.parseToken)
}

func (j *jwtService) ParseSessionToken(token string) (SessionClaims, error) {
	if token == "" {
		return SessionClaims{}, domain.ErrTokenNotFound
	}

	t_Token, err := j.ValidateSessionToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, domain.ErrTokenExpired
		}
		return SessionClaims{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return SessionClaims{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtSessionClaim)
	if !ok || claims.Issuer != j.issuer || claims.SessionID == "" {
		return SessionClaims{}, domain.ErrTokenInvalid
	}
	return claims.SessionClaims, nil
}
