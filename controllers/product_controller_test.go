package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductService struct {
	products   []models.Product
	lastSearch string
	lastCreate models.CreateProductRequest
}

func newFakeProductService() *fakeProductService {
	return &fakeProductService{products: []models.Product{
		{ID: "p-1", Name: "Tiramisu Ý", Price: 55000},
		{ID: "p-2", Name: "Red Velvet", Price: 60000},
	}}
}

func (f *fakeProductService) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	f.lastSearch = keyword
	out := []models.Product{}
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(keyword)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, services.ErrNotFound
}

func (f *fakeProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	f.lastCreate = req
	p := models.Product{ID: "p-new", Name: req.Name, Price: req.Price}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeProductService) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	return p, nil
}

func (f *fakeProductService) Delete(ctx context.Context, id string) error {
	if _, err := f.Get(ctx, id); err != nil {
		return err
	}
	return nil
}

func (f *fakeProductService) Seed(ctx context.Context) ([]models.Product, error) {
	return f.products, nil
}

type fakeAccountService struct {
	deleted []string
}

func (f *fakeAccountService) GetAllAccounts(ctx context.Context, page, limit int) (*models.PaginationResponse, error) {
	return &models.PaginationResponse{
		Success: true,
		Data:    []models.Account{},
		Meta:    models.MetaData{Page: page, Limit: limit},
	}, nil
}

func (f *fakeAccountService) DeleteAccount(ctx context.Context, id string) error {
	if id != "acc-1" {
		return services.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestGetProducts_Search(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/?search=velvet", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "velvet", ts.products.lastSearch)
	var resp struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Red Velvet", resp.Data[0].Name)

	w = ts.do(http.MethodGet, "/products", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestGetProductByID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/products/p-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/products/not-an-id", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAdminProducts_AccessControl(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/admin/seed", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	customer := ts.login(t, "anh@example.com")
	w = ts.do(http.MethodPost, "/admin/seed", nil, withCookie(customer))
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := ts.login(t, "admin@example.com")
	w = ts.do(http.MethodPost, "/admin/seed", nil, withCookie(admin))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateProduct_Multipart(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin@example.com")

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", "Bánh Flan"))
	require.NoError(t, mw.WriteField("price", "20000"))
	part, err := mw.CreateFormFile("image", "flan.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(admin)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Bánh Flan", ts.products.lastCreate.Name)
	require.NotNil(t, ts.products.lastCreate.ImageFile)
	assert.Equal(t, "flan.png", ts.products.lastCreate.ImageFile.Filename)
}

func TestCreateProduct_RejectsNonPositivePrice(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin@example.com")

	w := ts.do(http.MethodPost, "/admin/products", url.Values{"name": {"Free cake"}, "price": {"0"}}, withCookie(admin))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin@example.com")

	w := ts.do(http.MethodPatch, "/admin/products/p-2", url.Values{"price": {"65000"}}, withCookie(admin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price":65000`)

	w = ts.do(http.MethodPatch, "/admin/products/missing", url.Values{"price": {"1"}}, withCookie(admin))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodDelete, "/admin/products/p-1", nil, withCookie(admin))
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.do(http.MethodDelete, "/admin/products/missing", nil, withCookie(admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminAccounts(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin@example.com")

	w := ts.do(http.MethodGet, "/admin/accounts?page=2&limit=5", nil, withCookie(admin))
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.PaginationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 5, resp.Meta.Limit)

	w = ts.do(http.MethodDelete, "/admin/accounts/acc-1", nil, withCookie(admin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"acc-1"}, ts.accounts.deleted)

	w = ts.do(http.MethodDelete, "/admin/accounts/nope", nil, withCookie(admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
