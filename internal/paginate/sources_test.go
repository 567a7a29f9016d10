package paginate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentdesk/applywizard/internal/directory"
)

func catalogServer(t *testing.T, total int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/products":
			fmt.Fprint(w, `{"products":[`)
			for i := skip; i < skip+limit && i < total; i++ {
				if i > skip {
					fmt.Fprint(w, ",")
				}
				fmt.Fprintf(w, `{"id":%d,"title":"Product %d","category":"beauty","price":1}`, i+1, i+1)
			}
			fmt.Fprintf(w, `],"total":%d,"skip":%d,"limit":%d}`, total, skip, limit)
		case "/users":
			fmt.Fprint(w, `{"users":[`)
			for i := skip; i < skip+limit && i < total; i++ {
				if i > skip {
					fmt.Fprint(w, ",")
				}
				fmt.Fprintf(w, `{"id":%d,"firstName":"User","lastName":"%d","company":{"name":"Acme"}}`, i+1, i+1)
			}
			fmt.Fprintf(w, `],"total":%d,"skip":%d,"limit":%d}`, total, skip, limit)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestProducts_PagesThroughCatalog(t *testing.T) {
	srv := catalogServer(t, 12)
	defer srv.Close()

	loader := New(Products(directory.NewClient(srv.URL)), WithName("products"), WithPageSize(5))
	ctx := context.Background()

	require.NoError(t, loader.Load(ctx))
	require.NoError(t, loader.RequestMore(ctx))
	require.NoError(t, loader.RequestMore(ctx))

	state := loader.State()
	require.Len(t, state.Items, 12)
	assert.Equal(t, 12, state.Total)
	assert.False(t, state.HasMore)
	assert.Equal(t, "Product 12", state.Items[11].Title)
}

func TestUsers_MapsCompany(t *testing.T) {
	srv := catalogServer(t, 3)
	defer srv.Close()

	loader := New(Users(directory.NewClient(srv.URL)), WithName("users"))
	require.NoError(t, loader.Load(context.Background()))

	state := loader.State()
	require.Len(t, state.Items, 3)
	assert.Equal(t, "Acme", state.Items[0].CompanyName)
	assert.False(t, state.HasMore)
}
