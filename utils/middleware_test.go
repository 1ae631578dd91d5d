package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildRoleTestApp mounts a probe handler behind the verifier and the given
// role middleware.
func buildRoleTestApp(middleware iris.Handler) *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	app := iris.New()
	verifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	verifierMiddleware := verifier.Verify(func() interface{} { return new(AccessToken) })

	app.Get("/probe", verifierMiddleware, middleware, func(ctx iris.Context) {
		ctx.JSON(iris.Map{"ok": true})
	})
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func signRoleTestToken(t *testing.T, id uint, role string) string {
	t.Helper()
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, err := signer.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return string(token)
}

func probe(app *iris.Application, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp.Code
}

func TestAdminOnlyMiddleware(t *testing.T) {
	app := buildRoleTestApp(AdminOnlyMiddleware)

	for _, role := range []string{"staff", "manager"} {
		if code := probe(app, signRoleTestToken(t, 1, role)); code != http.StatusForbidden {
			t.Fatalf("role %s: expected 403, got %d", role, code)
		}
	}
	for _, role := range []string{"admin", "super_admin"} {
		if code := probe(app, signRoleTestToken(t, 1, role)); code != http.StatusOK {
			t.Fatalf("role %s: expected 200, got %d", role, code)
		}
	}
	if code := probe(app, ""); code == http.StatusOK {
		t.Fatal("expected rejection without token")
	}
}

func TestSuperAdminOnlyMiddleware(t *testing.T) {
	app := buildRoleTestApp(SuperAdminOnlyMiddleware)

	if code := probe(app, signRoleTestToken(t, 1, "admin")); code != http.StatusForbidden {
		t.Fatalf("admin: expected 403, got %d", code)
	}
	if code := probe(app, signRoleTestToken(t, 1, "super_admin")); code != http.StatusOK {
		t.Fatalf("super_admin: expected 200, got %d", code)
	}
}
