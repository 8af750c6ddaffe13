package signedurl

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload behind a download link: which resource it
// unlocks and until when.
type Claims struct {
	Resource string `json:"resource"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies HMAC-signed, time-limited download URLs for
// shareable resources (resume PDF and similar). Links are stateless: the
// token carries everything the download handler needs.
type Issuer struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
}

func NewIssuer(secret, baseURL string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		secret:  []byte(secret),
		baseURL: baseURL,
		ttl:     ttl,
	}
}

// ResourceLink returns a full download URL for the named resource.
func (i *Issuer) ResourceLink(resource string) (string, error) {
	token, err := i.Sign(resource)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/v1/resources/download?token=%s", i.baseURL, url.QueryEscape(token)), nil
}

// Sign mints the bare token for one resource.
func (i *Issuer) Sign(resource string) (string, error) {
	now := time.Now()
	claims := Claims{
		Resource: resource,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign resource token: %w", err)
	}
	return token, nil
}

// Verify checks a presented token and returns the resource it unlocks.
func (i *Issuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid resource token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid resource token claims")
	}
	return claims.Resource, nil
}
