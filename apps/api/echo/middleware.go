package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classquest/classquest/core/user"
)

// roleMiddleware lets through users currently holding one of roles.
// The role is read from the store, not from the token.
func roleMiddleware(svc user.Service, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			for _, role := range roles {
				if usr.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

// classroomMemberMiddleware lets through the course rep and the enrolled students of the
// classroom named by the :classroom path param.
func classroomMemberMiddleware(svc user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			ok, err := svc.IsMember(ctx.Request().Context(), ctx.Param("classroom"), usr.ID)
			if err != nil {
				return errors.Wrap(err, "checking classroom membership")
			}
			if !ok {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
