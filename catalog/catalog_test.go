package catalog_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-client/apperrors"
	"storefront-client/catalog"
	"storefront-client/models"
)

func newCatalogClient(t *testing.T, handler http.Handler) *catalog.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return catalog.NewClient(srv.URL, srv.Client(), zap.NewNop())
}

func TestProductList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /Product", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"message":"","data":[
			{"id":1,"name":"Keyboard","productCode":"KB-1","price":49.9,"category":"Electronics","imageUrl":"","quantity":10},
			{"id":2,"name":"Mouse","productCode":"MS-1","price":19.9,"category":"Electronics","imageUrl":"","quantity":5}
		]}`)
	})
	products := catalog.NewProductService(newCatalogClient(t, mux))

	got, err := products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Keyboard", got[0].Name)
	assert.Equal(t, 49.9, got[0].Price)
}

func TestProductGetNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /Product/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"message":"Product not found"}`)
	})
	products := catalog.NewProductService(newCatalogClient(t, mux))

	_, err := products.Get(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "Product not found")
}

func TestProductCreateSendsJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /Product", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req models.CreateProductRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Keyboard", req.Name)
		fmt.Fprintf(w, `{"success":true,"data":{"id":7,"name":%q,"productCode":%q,"price":%v,"quantity":%d}}`,
			req.Name, req.ProductCode, req.Price, req.Quantity)
	})
	products := catalog.NewProductService(newCatalogClient(t, mux))

	created, err := products.Create(context.Background(), models.CreateProductRequest{
		Name: "Keyboard", ProductCode: "KB-1", Price: 49.9, Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
}

func TestCategoryCRUDPaths(t *testing.T) {
	var deleted bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /Category", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":[{"id":1,"name":"Books","description":"paper"}]}`)
	})
	mux.HandleFunc("PUT /Category/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"id":1,"name":"Novels","description":"paper"}}`)
	})
	mux.HandleFunc("DELETE /Category/1", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		fmt.Fprint(w, `{"success":true}`)
	})
	categories := catalog.NewCategoryService(newCatalogClient(t, mux))
	ctx := context.Background()

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Books", list[0].Name)

	updated, err := categories.Update(ctx, models.UpdateCategoryRequest{ID: 1, Name: "Novels", Description: "paper"})
	require.NoError(t, err)
	assert.Equal(t, "Novels", updated.Name)

	require.NoError(t, categories.Delete(ctx, 1))
	assert.True(t, deleted)
}
