package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/pkg/jwt"
)

// Locals keys para la identidad verificada en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y deja id, username y role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return tokenError(c, err)
		}
		setIdentity(c, id)
		return c.Next()
	}
}

// RequireRole autoriza la petición si el rol del token está entre allowed.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if status, resp, ok := checkRole(GetRole(c), allowed...); !ok {
			return c.Status(status).JSON(resp)
		}
		return c.Next()
	}
}

// checkRole es la decisión de autorización compartida por REST y websocket.
func checkRole(role string, allowed ...entity.Role) (int, dto.ErrorResponse, bool) {
	if role == "" {
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"}, false
	}
	if !entity.Role(role).Allows(allowed...) {
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado: rol sin permisos"}, false
	}
	return 0, dto.ErrorResponse{}, true
}

// RequireAdmin atajo para rutas solo de administrador.
func RequireAdmin() fiber.Handler {
	return RequireRole(entity.RoleAdministrador)
}

func tokenError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwt.ErrExpired) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "sesión expirada"})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
}

func setIdentity(c *fiber.Ctx, id jwt.Identity) {
	c.Locals(LocalUserID, id.UserID)
	c.Locals(LocalUsername, id.Username)
	c.Locals(LocalRole, id.Role)
}

// GetUserID devuelve el id del usuario autenticado (0 si no hay).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetUsername devuelve el username del usuario autenticado.
func GetUsername(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUsername).(string)
	return v
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// GetActor arma la identidad verificada para los casos de uso.
func GetActor(c *fiber.Ctx) entity.Actor {
	return entity.Actor{UserID: GetUserID(c), Username: GetUsername(c), Role: entity.Role(GetRole(c))}
}
