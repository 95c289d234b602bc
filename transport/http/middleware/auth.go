package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"clts/config"
	"clts/infras/otel"
	"clts/permissions"
	"clts/shared/constant"
	"clts/shared/failure"
	"clts/transport/http/response"
)

// Auth guards the API with a shared key. Session management and user
// authentication happen upstream; by the time a request reaches this service
// the caller has already been identified.
type Auth interface {
	APIKey(next http.Handler) http.Handler
	Identity(next http.Handler) http.Handler
	RBAC(next http.Handler) http.Handler
}

type authImpl struct {
	otel       otel.Otel
	cfg        *config.Config
	permission *permissions.PermissionData
}

func NewAuthMiddleware(otel otel.Otel, cfg *config.Config, permission *permissions.PermissionData) Auth {
	return &authImpl{
		otel:       otel,
		cfg:        cfg,
		permission: permission,
	}
}

func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if m.cfg.App.APIKey == "" {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "apikey.middleware")
		defer scope.End()

		provided := request.Header.Get(constant.RequestHeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.cfg.App.APIKey)) != 1 {
			err := failure.Unauthorized("Invalid or missing API key")
			response.WithError(writer, err)

			scope.TraceError(err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// Identity copies the caller identity forwarded by the gateway into the
// request context. Missing headers leave the context untouched.
func (m *authImpl) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		if userID := request.Header.Get(constant.RequestHeaderUserID); userID != "" {
			ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)
		}

		if email := request.Header.Get(constant.RequestHeaderUserEmail); email != "" {
			ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)
		}

		if role := request.Header.Get(constant.RequestHeaderUserRole); role != "" {
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the caller role against the embedded endpoint policy.
// Requires prior identity resolution via Identity middleware.
func (m *authImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		rctx := chi.RouteContext(ctx)
		path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
		endpoint := m.permission.Find(path, request.Method)

		if endpoint.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !slices.Contains(endpoint.Roles, userRole) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": endpoint.Roles,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
