package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/bg-companion-api/internal/application"
	"github.com/oksasatya/bg-companion-api/internal/interface/middleware"
	"github.com/oksasatya/bg-companion-api/internal/testutil/memstore"
	"github.com/oksasatya/bg-companion-api/pkg/helpers"
	"github.com/oksasatya/bg-companion-api/pkg/validation"
)

type testEnv struct {
	engine *gin.Engine
	jwt    *helpers.JWTManager
	users  *memstore.Users
	comps  *memstore.Comps
}

func newTestEnv(t *testing.T, catalog application.CardCatalog) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := helpers.NewNopLogger()
	jwt := helpers.NewJWTManager("handler-test-secret", 0)
	users := memstore.NewUsers()
	comps := memstore.NewComps()

	auth := NewAuthHandler(
		application.NewAuthService(users, helpers.NewBcryptHasher(bcrypt.MinCost), jwt, nil, logger),
		helpers.NewCookie("localhost", true),
		jwt.ExpiresAt,
		logger,
	)
	comp := NewCompHandler(application.NewCompService(comps, nil, logger), logger)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/healthcheck", Health)
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)

	p := r.Group("/", middleware.Session(jwt))
	p.GET("/auth/me", auth.Me)
	p.POST("/auth/logout", auth.Logout)
	p.POST("/comps/create", comp.Create)
	p.GET("/comps/my-comps", comp.Mine)
	p.GET("/comps/search", comp.Search)
	p.GET("/comps/:id", comp.Get)
	p.PUT("/comps/:id", comp.Update)
	p.DELETE("/comps/:id", comp.Delete)

	if catalog != nil {
		cards := NewCardHandler(application.NewCardService(catalog), logger)
		p.GET("/blizzard/cards/common", cards.Minions)
		p.GET("/blizzard/cards/hero", cards.Heroes)
		p.GET("/blizzard/cards/spell", cards.Spells)
	}

	return &testEnv{engine: r, jwt: jwt, users: users, comps: comps}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns its session cookie.
func (e *testEnv) register(t *testing.T, username, email string) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/register", gin.H{"username": username, "email": email, "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ck := sessionCookie(rec)
	require.NotNil(t, ck)
	return ck
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == helpers.SessionCookieName {
			return ck
		}
	}
	return nil
}

type envelope struct {
	Status    int             `json:"status"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Meta      map[string]any  `json:"meta"`
	Error     *struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}
