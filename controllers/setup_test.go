package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PhanMy23520965/LaLuneBakery/middleware"
	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/repositories"
	"github.com/PhanMy23520965/LaLuneBakery/services"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthService struct {
	accounts     map[string]*models.Account
	registerErr  error
	verifyErr    error
	resetErr     error
	forgotErr    error
	lastBaseURL  string
	lastRegister models.RegisterRequest
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{accounts: map[string]*models.Account{
		"anh@example.com":   {ID: "acc-1", FullName: "Ngọc Anh", LoginKey: "anh@example.com", Role: models.RoleCustomer, IsVerified: true},
		"admin@example.com": {ID: "acc-admin", FullName: "Quản lý", LoginKey: "admin@example.com", Role: models.RoleAdmin, IsVerified: true},
	}}
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest, baseURL string) (*models.Account, error) {
	f.lastBaseURL = baseURL
	f.lastRegister = req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.Account{ID: "new", LoginKey: req.LoginKey, FullName: req.FullName}, nil
}

func (f *fakeAuthService) VerifyEmail(ctx context.Context, token string) (*models.Account, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.accounts["anh@example.com"], nil
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Account, error) {
	a, ok := f.accounts[req.LoginKey]
	if !ok || req.Password != "secret1" {
		return nil, services.ErrAuthentication
	}
	return a, nil
}

func (f *fakeAuthService) RequestPasswordReset(ctx context.Context, loginKey, baseURL string) error {
	f.lastBaseURL = baseURL
	if _, ok := f.accounts[loginKey]; !ok {
		return services.ErrNoSuchAccount
	}
	return f.forgotErr
}

func (f *fakeAuthService) CheckResetToken(ctx context.Context, token string) (*models.Account, error) {
	if token != "good" {
		return nil, services.ErrExpiredOrInvalidToken
	}
	return f.accounts["anh@example.com"], nil
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	if token != "good" {
		return services.ErrExpiredOrInvalidToken
	}
	if req.Password != req.Confirm {
		return services.ErrValidation
	}
	return nil
}

func (f *fakeAuthService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, services.ErrNotFound
}

func (f *fakeAuthService) UpdateProfile(ctx context.Context, accountID string, req models.UpdateProfileRequest) (*models.Account, error) {
	a, err := f.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if req.FullName != "" {
		a.FullName = req.FullName
	}
	a.Address = req.Address
	return a, nil
}

type fakeCartService struct {
	carts map[string]models.Cart
	err   error
}

func newFakeCartService() *fakeCartService {
	return &fakeCartService{carts: map[string]models.Cart{}}
}

func (f *fakeCartService) View(ctx context.Context, accountID string) (models.Cart, error) {
	return f.carts[accountID], f.err
}

func (f *fakeCartService) Add(ctx context.Context, accountID string, req models.AddToCartRequest) (models.Cart, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := f.carts[accountID]
	c.AddItem(models.CartLine{ProductName: req.ProductName, Price: req.Price, Image: req.Image})
	f.carts[accountID] = c
	return c, nil
}

func (f *fakeCartService) Adjust(ctx context.Context, accountID string, req models.UpdateCartRequest) (models.Cart, error) {
	c := f.carts[accountID]
	c.AdjustQuantity(req.ProductName, req.Action)
	f.carts[accountID] = c
	return c, f.err
}

func (f *fakeCartService) Remove(ctx context.Context, accountID, productName string) (models.Cart, error) {
	c := f.carts[accountID]
	c.RemoveItem(productName)
	f.carts[accountID] = c
	return c, f.err
}

func (f *fakeCartService) Checkout(ctx context.Context, accountID string) (models.Cart, int64, error) {
	c := f.carts[accountID]
	if c.Total() == 0 {
		return c, 0, services.ErrEmptyCart
	}
	return c, c.Total(), nil
}

type testServer struct {
	router   *gin.Engine
	auth     *fakeAuthService
	cart     *fakeCartService
	products *fakeProductService
	accounts *fakeAccountService
	redis    *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zap.NewNop()
	sessions := middleware.NewSessionManager(repositories.NewSessionRepository(client), middleware.SessionOptions{
		Secret: "test-secret",
		TTL:    time.Hour,
	}, logger)

	ts := &testServer{
		auth:     newFakeAuthService(),
		cart:     newFakeCartService(),
		products: newFakeProductService(),
		accounts: &fakeAccountService{},
		redis:    mr,
	}

	authCtrl := NewAuthController(ts.auth, sessions, logger)
	profileCtrl := NewProfileController(ts.auth, sessions, logger)
	cartCtrl := NewCartController(ts.cart, sessions, logger)
	productCtrl := NewProductController(ts.products, sessions, logger)
	accountCtrl := NewAccountController(ts.accounts, logger)

	r := gin.New()
	r.Use(sessions.Sessions())
	r.GET("/", productCtrl.GetProducts)
	r.GET("/products", productCtrl.GetProducts)
	r.GET("/products/:id", productCtrl.GetProductByID)
	r.POST("/register", authCtrl.Register)
	r.GET("/verify/:token", authCtrl.VerifyEmail)
	r.GET("/login", authCtrl.LoginPage)
	r.POST("/login", authCtrl.Login)
	r.POST("/logout", authCtrl.Logout)
	r.POST("/forgot-password", authCtrl.ForgotPassword)
	r.GET("/reset/:token", authCtrl.CheckResetToken)
	r.POST("/reset/:token", authCtrl.ResetPassword)

	authed := r.Group("/", middleware.RequireAuth())
	authed.GET("/me", profileCtrl.Me)
	authed.PATCH("/profile", profileCtrl.UpdateProfile)
	authed.GET("/cart", cartCtrl.GetCart)
	authed.POST("/add-to-cart", cartCtrl.AddToCart)
	authed.POST("/update-cart", cartCtrl.UpdateCart)
	authed.POST("/remove-from-cart", cartCtrl.RemoveFromCart)
	authed.GET("/checkout", cartCtrl.Checkout)

	admin := r.Group("/admin", middleware.RequireAdmin())
	admin.POST("/products", productCtrl.CreateProduct)
	admin.PATCH("/products/:id", productCtrl.UpdateProduct)
	admin.DELETE("/products/:id", productCtrl.DeleteProduct)
	admin.POST("/seed", productCtrl.SeedProducts)
	admin.GET("/accounts", accountCtrl.GetAllAccounts)
	admin.DELETE("/accounts/:id", accountCtrl.DeleteAccount)

	ts.router = r
	return ts
}

type requestOption func(*http.Request)

func withCookie(c *http.Cookie) requestOption {
	return func(r *http.Request) {
		if c != nil {
			r.AddCookie(c)
		}
	}
}

func withHeader(k, v string) requestOption {
	return func(r *http.Request) { r.Header.Set(k, v) }
}

func (ts *testServer) do(method, path string, form url.Values, opts ...requestOption) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func (ts *testServer) login(t *testing.T, key string, opts ...requestOption) *http.Cookie {
	t.Helper()
	w := ts.do(http.MethodPost, "/login", url.Values{"email": {key}, "password": {"secret1"}}, opts...)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	return cookie
}

type flashResponse struct {
	Flash *models.Flash `json:"flash"`
}

func (ts *testServer) flashAt(t *testing.T, path string, cookie *http.Cookie) *models.Flash {
	t.Helper()
	w := ts.do(http.MethodGet, path, nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp flashResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Flash
}
