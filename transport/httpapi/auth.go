package httpapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	contextKeyToken = "user"
	contextKeyActor = "actor"
)

var (
	// ErrUnauthenticated means the bearer token is missing or does not verify.
	ErrUnauthenticated = errors.New("missing or invalid bearer token")

	// ErrUnknownRole means the token carries a role other than user or admin.
	ErrUnknownRole = errors.New("token role must be user or admin")
)

// Claims are the JWT claims the API understands.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for subject with role, valid for ttl.
func IssueToken(secret []byte, subject uuid.UUID, role string, ttl time.Duration) (string, error) {
	if role != RoleUser && role != RoleAdmin {
		return "", ErrUnknownRole
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func jwtMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    secret,
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    contextKeyToken,
		NewClaimsFunc: func(echo.Context) jwt.Claims { return new(Claims) },
		ErrorHandler: func(_ echo.Context, err error) error {
			return errors.Join(ErrUnauthenticated, err)
		},
	})
}

// actorMiddleware turns the verified token into a core.Actor.
func actorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get(contextKeyToken).(*jwt.Token)
		if !ok || token == nil {
			return ErrUnauthenticated
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return ErrUnauthenticated
		}

		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return errors.Join(ErrUnauthenticated, err)
		}

		if claims.Role != RoleUser && claims.Role != RoleAdmin {
			return errors.Join(ErrUnauthenticated, ErrUnknownRole)
		}

		c.Set(contextKeyActor, core.Actor{ID: id.String(), Admin: claims.Role == RoleAdmin})

		return next(c)
	}
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !actorOf(c).Admin {
			return core.ErrActorNotPermitted
		}

		return next(c)
	}
}

func actorOf(c echo.Context) core.Actor {
	actor, _ := c.Get(contextKeyActor).(core.Actor)
	return actor
}
