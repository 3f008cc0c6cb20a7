package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ownerIDKey contextKey = "ownerDoctorID"

const ownerTokenIssuer = "medmatch"

// ErrOwnerTokenDisabled is returned when no signing secret is configured.
var ErrOwnerTokenDisabled = errors.New("owner tokens are disabled")

// OwnerTokens issues and verifies HMAC-signed JWTs whose subject is the id of
// the doctor profile the bearer owns.
type OwnerTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewOwnerTokens creates an issuer. A zero ttl means tokens do not expire.
func NewOwnerTokens(secret string, ttl time.Duration) *OwnerTokens {
	return &OwnerTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for doctorID.
func (o *OwnerTokens) Issue(doctorID string) (string, error) {
	if o == nil || len(o.secret) == 0 {
		return "", ErrOwnerTokenDisabled
	}
	now := o.now()
	claims := jwt.RegisteredClaims{
		Subject:  doctorID,
		Issuer:   ownerTokenIssuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if o.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(o.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(o.secret)
}

// Verify parses tokenString and returns the owned doctor id.
func (o *OwnerTokens) Verify(tokenString string) (string, error) {
	if o == nil || len(o.secret) == 0 {
		return "", ErrOwnerTokenDisabled
	}
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return o.secret, nil
	}, jwt.WithIssuer(ownerTokenIssuer), jwt.WithTimeFunc(o.now))
	if err != nil {
		return "", err
	}
	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}

// RequireOwner rejects requests without a valid owner bearer token and stores
// the owned doctor id on the request context.
func RequireOwner(tokens *OwnerTokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			doctorID, err := tokens.Verify(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), doctorID)))
		})
	}
}

// WithOwnerID attaches an owned doctor id to ctx.
func WithOwnerID(ctx context.Context, doctorID string) context.Context {
	return context.WithValue(ctx, ownerIDKey, doctorID)
}

// OwnerIDFromContext returns the doctor id set by RequireOwner.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerIDKey).(string)
	return id, ok && id != ""
}
