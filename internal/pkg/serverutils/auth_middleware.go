package serverutils

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"workspace-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityKey = "identity"

// Identity is the verified caller. A service identity may act on any
// workspace; a workspace identity only on its own.
type Identity struct {
	Service     bool
	WorkspaceId uuid.UUID
}

// Allows reports whether the caller may act on the given workspace.
func (i Identity) Allows(workspaceId uuid.UUID) bool {
	return i.Service || i.WorkspaceId == workspaceId
}

// Scope is the workspace a listing must be confined to, nil for service callers.
func (i Identity) Scope() *uuid.UUID {
	if i.Service {
		return nil
	}
	id := i.WorkspaceId
	return &id
}

type workspaceClaims struct {
	WorkspaceId string `json:"workspace_id"`
	jwt.RegisteredClaims
}

// NewAuthMiddleware accepts the shared service token or an HS256 token
// carrying a workspace_id claim. An empty jwtSecret disables the latter.
func NewAuthMiddleware(serviceToken, jwtSecret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return apperror.Unauthorized("missing bearer token")
		}
		token := strings.TrimSpace(authHeader[7:])

		if serviceToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(serviceToken)) == 1 {
			ctx.Locals(identityKey, Identity{Service: true})
			return ctx.Next()
		}

		if jwtSecret == "" {
			return apperror.Unauthorized("invalid token")
		}
		workspaceId, err := parseWorkspaceToken(token, jwtSecret)
		if err != nil {
			return apperror.Unauthorized("invalid token")
		}
		ctx.Locals(identityKey, Identity{WorkspaceId: workspaceId})
		return ctx.Next()
	}
}

func parseWorkspaceToken(tokenStr, secret string) (uuid.UUID, error) {
	var claims workspaceClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}
	return uuid.Parse(claims.WorkspaceId)
}

// IdentityOf returns the identity stored by the auth middleware.
func IdentityOf(ctx *fiber.Ctx) (Identity, error) {
	identity, ok := ctx.Locals(identityKey).(Identity)
	if !ok {
		return Identity{}, apperror.Unauthorized("no identity")
	}
	return identity, nil
}

// AuthorizeWorkspace fails unless the caller may act on workspaceId.
func AuthorizeWorkspace(ctx *fiber.Ctx, workspaceId uuid.UUID) error {
	identity, err := IdentityOf(ctx)
	if err != nil {
		return err
	}
	if !identity.Allows(workspaceId) {
		return apperror.Unauthorized("token is not valid for this workspace")
	}
	return nil
}
