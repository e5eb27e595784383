package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookie    = "booking_session"
	ContextSessionID = "sessionID"
)

const defaultSessionTTL = 30 * 24 * time.Hour

var errInvalidSession = errors.New("invalid session token")

// SessionSigner issues and checks the signed cookie that identifies a
// booking session. It carries no user identity.
type SessionSigner struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewSessionSigner(secret string, ttl time.Duration, secure bool) *SessionSigner {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionSigner{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

func (s *SessionSigner) Sign(sessionID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse returns the session id and when the token was issued.
func (s *SessionSigner) Parse(token string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", time.Time{}, errInvalidSession
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", time.Time{}, errInvalidSession
	}

	var issued time.Time
	if claims.IssuedAt != nil {
		issued = claims.IssuedAt.Time
	}
	return claims.Subject, issued, nil
}

// SessionMiddleware attaches the booking session id to the request,
// starting a new session when the cookie is missing or invalid. Tokens
// past half their lifetime are reissued.
func SessionMiddleware(signer *SessionSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			id     string
			issued time.Time
			err    error
		)

		if raw, cerr := c.Cookie(SessionCookie); cerr == nil && raw != "" {
			id, issued, err = signer.Parse(raw)
		} else {
			err = errInvalidSession
		}

		if err != nil {
			id = uuid.NewString()
			issued = time.Time{}
		}

		if issued.IsZero() || signer.now().Sub(issued) > signer.ttl/2 {
			token, serr := signer.Sign(id)
			if serr != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "session_error",
					"message":    "could not start session",
				})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, token, int(signer.ttl.Seconds()), "/", "", signer.secure, true)
		}

		c.Set(ContextSessionID, id)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
