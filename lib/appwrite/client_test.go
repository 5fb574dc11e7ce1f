package appwrite

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{Endpoint: srv.URL + "/v1/", Project: "proj", Key: "secret"})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient(Config{Project: "p", Key: "k"})
	assert.Error(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c, err := NewClient(Config{Endpoint: "https://cloud.appwrite.io/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cloud.appwrite.io/v1", c.Endpoint())
}

func TestListDocuments_Request(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/databases/db1/collections/appointments/documents", r.URL.Path)
		assert.Equal(t, "proj", r.Header.Get("X-Appwrite-Project"))
		assert.Equal(t, "secret", r.Header.Get("X-Appwrite-Key"))
		assert.Empty(t, r.URL.RawQuery)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total":3,"limit":25,"documents":[{"$id":"a"},{"$id":"b"},{"$id":"c"}]}`))
	})

	list, err := c.ListDocuments(context.Background(), "db1", "appointments", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, list.Total)
	require.NotNil(t, list.Limit)
	assert.Equal(t, 25, *list.Limit)
	assert.Len(t, list.Documents, 3)
	assert.JSONEq(t, `"a"`, string(list.Documents[0]["$id"]))
}

func TestListDocuments_WithoutLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":0,"documents":[]}`))
	})

	list, err := c.ListDocuments(context.Background(), "db", "coll", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.Nil(t, list.Limit)
}

func TestListDocuments_Queries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{`{"method":"limit","values":[1]}`}, r.URL.Query()["queries[]"])
		w.Write([]byte(`{"total":1,"documents":[]}`))
	})

	_, err := c.ListDocuments(context.Background(), "db", "coll", []string{`{"method":"limit","values":[1]}`})
	require.NoError(t, err)
}

func TestListDocuments_ResponseError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"unauthorized","code":401,"type":"general_unauthorized_scope"}`))
	})

	_, err := c.ListDocuments(context.Background(), "db", "coll", nil)
	require.Error(t, err)

	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusUnauthorized, re.Status)
	assert.Equal(t, "unauthorized", re.Data.(map[string]any)["message"])
	assert.Equal(t, "appwrite: status 401: unauthorized", re.Error())
}

func TestListDocuments_NonJSONError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	})

	_, err := c.ListDocuments(context.Background(), "db", "coll", nil)

	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadGateway, re.Status)
	assert.Nil(t, re.Data)
	assert.Equal(t, "upstream down", string(re.Body))
	assert.Equal(t, "appwrite: status 502", re.Error())
}

func TestListDocuments_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c, err := NewClient(Config{Endpoint: endpoint, Project: "p", Key: "k"})
	require.NoError(t, err)

	_, err = c.ListDocuments(context.Background(), "db", "coll", nil)
	require.Error(t, err)

	var re *ResponseError
	assert.False(t, errors.As(err, &re))
}

func TestListDocuments_InvalidBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := c.ListDocuments(context.Background(), "db", "coll", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}
