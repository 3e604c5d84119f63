package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fiesta-storefront/internal/domain"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestListProductsOmitsAbsentParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"meta":{"total":0,"page":1,"limit":20,"totalPages":0}}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.ListProducts(context.Background(), domain.ProductQuery{
		Page:   2,
		Search: "trampoline",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "page=2&search=trampoline" {
		t.Fatalf("unexpected query string: %q", gotQuery)
	}
}

func TestListProductsFullFilterSet(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		w.Write([]byte(`{"data":[],"meta":{}}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.ListProducts(context.Background(), domain.ProductQuery{
		Page:       1,
		Limit:      20,
		Status:     domain.StatusAvailable,
		CategoryID: "cat1",
		Search:     "mesa",
		SortBy:     domain.SortByCreatedAt,
		SortOrder:  "desc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "categoryId=cat1&limit=20&page=1&search=mesa&sortBy=createdAt&sortOrder=desc&status=DISPONIBLE"
	if got != want {
		t.Fatalf("query mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestGetProductBySlugNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Producto no encontrado"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.GetProductBySlug(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var herr *domain.HTTPError
	if !errors.As(err, &herr) || herr.Status != 404 {
		t.Fatalf("expected HTTPError with status 404, got %v", err)
	}
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.GetProductBySlug(context.Background(), "any")
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("500 must not match ErrNotFound")
	}
	var herr *domain.HTTPError
	if !errors.As(err, &herr) || herr.Status != 500 || herr.Message != "boom" {
		t.Fatalf("expected HTTPError{500, boom}, got %v", err)
	}
}

func TestBackendMessagePassesThroughVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Credenciales incorrectas"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	if err == nil || err.Error() != "Credenciales incorrectas" {
		t.Fatalf("expected verbatim backend message, got %v", err)
	}
}

func TestErrorWithoutMessageGetsStatusFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.ListCategories(context.Background())
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected per-status fallback message, got %v", err)
	}
}

func TestMessageArrayIsJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":["title is required","price must be positive"]}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.ListCategories(context.Background())
	if err == nil || err.Error() != "title is required, price must be positive" {
		t.Fatalf("expected joined messages, got %v", err)
	}
}

func TestNetworkFailureWrapsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := New(srv.URL)
	_, err := client.ListCategories(context.Background())
	if err == nil {
		t.Fatalf("expected a network error")
	}
	var herr *domain.HTTPError
	if errors.As(err, &herr) {
		t.Fatalf("transport failure must not surface as HTTPError: %v", err)
	}
}

func TestBearerTokenSentWhenPresent(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"id":"p1"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, WithTokenSource(staticToken("tok-123")))
	_, err := client.CreateProduct(context.Background(), ProductInput{Title: "Mesa", Price: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected Content-Type: %q", gotContentType)
	}
}

func TestCreateProductValidatesBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.CreateProduct(context.Background(), ProductInput{Price: -5})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if called {
		t.Fatalf("validation failure must not reach the network")
	}
}

func TestUploadProductImageSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file field: %v", err)
		} else {
			file.Close()
			if header.Filename != "fiesta.png" {
				t.Errorf("unexpected filename %q", header.Filename)
			}
		}
		w.Write([]byte(`{"url":"/uploads/fiesta.png"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	res, err := client.UploadProductImage(context.Background(), "fiesta.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.URL != "/uploads/fiesta.png" {
		t.Fatalf("unexpected url %q", res.URL)
	}
}

func TestPriceDecodesStringAndNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"p1","price":"1500.50"},{"id":"p2","price":200}],"meta":{"total":2,"page":1,"limit":20,"totalPages":1}}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	page, err := client.ListProducts(context.Background(), domain.ProductQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Data[0].Price != 1500.50 || page.Data[1].Price != 200 {
		t.Fatalf("price decoding failed: %+v", page.Data)
	}
}

func TestBundlesUsePackagesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	if _, err := client.ListBundles(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/packages" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}
