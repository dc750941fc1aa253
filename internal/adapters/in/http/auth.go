package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// AuthMiddleware validates the Bearer token and resolves the acting user.
// The token carries a "user_id" claim with the user's UUID and a "role"
// claim with the role name; both are required.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get("Authorization")
			if authHeader == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing Authorization header",
				})
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid token claims",
				})
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid token claims: " + err.Error(),
				})
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

// actorFromClaims builds the acting user from the token's claims.
func actorFromClaims(claims jwt.MapClaims) (order.Actor, error) {
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return order.Actor{}, errors.New("user_id claim is missing")
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return order.Actor{}, errors.New("role claim is missing")
	}

	userID, err := kernel.UUIDFromString(userIDStr)
	if err != nil {
		return order.Actor{}, err
	}
	role, err := order.ParseRole(roleStr)
	if err != nil {
		return order.Actor{}, err
	}

	return order.NewActor(userID, role)
}

// actorFrom returns the authenticated actor stored by AuthMiddleware.
func actorFrom(ctx echo.Context) (order.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(order.Actor)
	return actor, ok
}
