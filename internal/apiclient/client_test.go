package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type victim struct {
	Name        string `json:"name"`
	DangerLevel int    `json:"dangerLevel"`
}

func TestClientDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/victims/Target Alpha", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode(victim{Name: "Target Alpha", DangerLevel: 8})
	}))
	defer srv.Close()

	client := New(srv.URL+"/", 0, nil)
	var out victim
	err := client.Get(context.Background(), "/victims/"+PathEscape("Target Alpha"), url.Values{"page": {"2"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 8, out.DangerLevel)
}

func TestClientSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, float64(4), in["dangerLevel"])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name":"Target Beta","dangerLevel":4}`))
	}))
	defer srv.Close()

	var out victim
	err := New(srv.URL, 0, nil).Patch(context.Background(), "victims/Target%20Beta", map[string]any{"dangerLevel": 4}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Target Beta", out.Name)
}

func TestClientErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		code    string
		message string
	}{
		{"envelope", http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"Victim not found","details":{}}}`, "NOT_FOUND", "Victim not found"},
		{"flat message", http.StatusBadRequest, `{"message":"bad things"}`, "", "bad things"},
		{"plain text", http.StatusBadGateway, "upstream down\n", "", "upstream down"},
		{"empty", http.StatusInternalServerError, "", "", "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			err := New(srv.URL, 0, nil).Delete(context.Background(), "/victims/x")
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.code, apiErr.Code)
			assert.Equal(t, tc.message, apiErr.Message)
			assert.Equal(t, tc.status, StatusOf(err))
		})
	}
}
