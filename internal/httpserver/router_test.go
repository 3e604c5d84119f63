package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fiesta-storefront/internal/config"
	"fiesta-storefront/internal/domain"
	bundlesvc "fiesta-storefront/internal/service/bundle"
	categorysvc "fiesta-storefront/internal/service/category"
	productsvc "fiesta-storefront/internal/service/product"
	settingssvc "fiesta-storefront/internal/service/settings"
	usersvc "fiesta-storefront/internal/service/user"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubProductSvc struct {
	page     *domain.ProductsPage
	product  *domain.Product
	link     *domain.ContactLink
	err      error
	gotQuery domain.ProductQuery
	gotSlug  string
	gotLink  [3]string
}

func (s *stubProductSvc) List(_ context.Context, q domain.ProductQuery) (*domain.ProductsPage, error) {
	s.gotQuery = q
	return s.page, s.err
}

func (s *stubProductSvc) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	s.gotSlug = slug
	return s.product, s.err
}

func (s *stubProductSvc) Create(_ context.Context, _ productsvc.CreateInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Update(_ context.Context, _ string, _ productsvc.UpdateInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Delete(_ context.Context, _ string) error { return s.err }

func (s *stubProductSvc) ContactLink(_ context.Context, id, channel, phone string) (*domain.ContactLink, error) {
	s.gotLink = [3]string{id, channel, phone}
	return s.link, s.err
}

type stubCategorySvc struct {
	items []domain.Category
	err   error
}

func (s *stubCategorySvc) List(_ context.Context) ([]domain.Category, error) { return s.items, s.err }
func (s *stubCategorySvc) GetByID(_ context.Context, _ string) (*domain.Category, error) {
	return nil, domain.ErrNotFound
}
func (s *stubCategorySvc) Create(_ context.Context, _ categorysvc.CreateInput) (*domain.Category, error) {
	return nil, s.err
}
func (s *stubCategorySvc) Update(_ context.Context, _ string, _ categorysvc.UpdateInput) (*domain.Category, error) {
	return nil, s.err
}
func (s *stubCategorySvc) Delete(_ context.Context, _ string) error { return s.err }

type stubBundleSvc struct {
	items []domain.Bundle
	err   error
}

func (s *stubBundleSvc) List(_ context.Context) ([]domain.Bundle, error) { return s.items, s.err }
func (s *stubBundleSvc) GetByID(_ context.Context, _ string) (*domain.Bundle, error) {
	return nil, domain.ErrNotFound
}
func (s *stubBundleSvc) Create(_ context.Context, _ bundlesvc.CreateInput) (*domain.Bundle, error) {
	return nil, s.err
}
func (s *stubBundleSvc) Update(_ context.Context, _ string, _ bundlesvc.UpdateInput) (*domain.Bundle, error) {
	return nil, s.err
}
func (s *stubBundleSvc) Delete(_ context.Context, _ string) error { return s.err }

type stubSettingsSvc struct {
	settings domain.SiteSettings
	err      error
}

func (s *stubSettingsSvc) Get(_ context.Context) (*domain.SiteSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := s.settings
	return &cp, nil
}

func (s *stubSettingsSvc) Update(_ context.Context, _ settingssvc.UpdateInput) (*domain.SiteSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := s.settings
	return &cp, nil
}

type stubUserSvc struct {
	user      *domain.User
	token     string
	loginErr  error
	lookupErr error
}

func (s *stubUserSvc) Register(_ context.Context, _ usersvc.RegisterInput) (*domain.User, string, error) {
	return s.user, s.token, s.loginErr
}

func (s *stubUserSvc) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	return s.user, s.token, s.loginErr
}

func (s *stubUserSvc) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.user, nil
}

func (s *stubUserSvc) UpdateProfile(_ context.Context, _ string, _ usersvc.ProfileInput) (*domain.User, error) {
	return s.user, nil
}

func testDeps() Deps {
	return Deps{
		ProductSvc:  &stubProductSvc{},
		CategorySvc: &stubCategorySvc{},
		BundleSvc:   &stubBundleSvc{},
		SettingsSvc: &stubSettingsSvc{},
		UserSvc:     &stubUserSvc{user: &domain.User{ID: "u1", Email: "a@b.com", Role: "ADMIN"}, token: "tok"},
	}
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(config.Config{APIBasePath: "/api", CORSOrigins: []string{"*"}}, logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestLoginHandler_OK(t *testing.T) {
	deps := testDeps()
	router := testRouter(t, deps)

	body := `{"email":"a@b.com","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		AccessToken string      `json:"access_token"`
		User        domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.AccessToken != "tok" || got.User.ID != "u1" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{loginErr: usersvc.ErrInvalidCredentials}
	router := testRouter(t, deps)

	body := `{"email":"a@b.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Credenciales incorrectas") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestProductBySlug_NotFound(t *testing.T) {
	deps := testDeps()
	deps.ProductSvc = &stubProductSvc{err: domain.ErrNotFound}
	router := testRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/products/by-slug/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Producto no encontrado") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestProductContactLink_OK(t *testing.T) {
	svc := &stubProductSvc{link: &domain.ContactLink{
		URL:   "https://wa.me/1234567890?text=Hola",
		Label: "Consultar por WhatsApp",
	}}
	deps := testDeps()
	deps.ProductSvc = svc
	router := testRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/products/contact-link/p1?channel=whatsapp", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}
	var link domain.ContactLink
	if err := json.Unmarshal(rec.Body.Bytes(), &link); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if link.URL != svc.link.URL || link.Label != svc.link.Label {
		t.Fatalf("unexpected link %+v", link)
	}
	if svc.gotLink != [3]string{"p1", "whatsapp", ""} {
		t.Fatalf("unexpected args %v", svc.gotLink)
	}
}

func TestListProducts_QueryPassthrough(t *testing.T) {
	svc := &stubProductSvc{page: &domain.ProductsPage{Data: []domain.Product{}}}
	deps := testDeps()
	deps.ProductSvc = svc
	router := testRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/products?page=2&limit=12&search=castillo&status=DISPONIBLE", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotQuery.Page != 2 || svc.gotQuery.Limit != 12 {
		t.Fatalf("paging lost: %+v", svc.gotQuery)
	}
	if svc.gotQuery.Search != "castillo" || svc.gotQuery.Status != "DISPONIBLE" {
		t.Fatalf("filters lost: %+v", svc.gotQuery)
	}
}

func TestCreateProduct_RequiresAuth(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{lookupErr: usersvc.ErrInvalidToken}
	router := testRouter(t, deps)

	body := `{"title":"Castillo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer bad-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
}

func TestCreateProduct_Authed(t *testing.T) {
	deps := testDeps()
	deps.ProductSvc = &stubProductSvc{product: &domain.Product{ID: "p1", Title: "Castillo"}}
	router := testRouter(t, deps)

	body := `{"title":"Castillo","price":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMeHandler(t *testing.T) {
	router := testRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var u domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.ID != "u1" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestBundlesRoute(t *testing.T) {
	deps := testDeps()
	deps.BundleSvc = &stubBundleSvc{items: []domain.Bundle{{ID: "b1", Title: "Combo"}}}
	router := testRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/packages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Combo"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestSettingsPublicGetPrivatePut(t *testing.T) {
	deps := testDeps()
	deps.SettingsSvc = &stubSettingsSvc{settings: domain.SiteSettings{ContactPhone: "+111"}}
	router := testRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET settings: expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"contactPhone":"+222"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("PUT settings without token: expected 401, got %d", rec.Code)
	}
}

func TestValidationErrorsMapTo400(t *testing.T) {
	deps := testDeps()
	deps.ProductSvc = &stubProductSvc{err: domain.NewValidationError("title required")}
	router := testRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
