package workspace_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbspend360/dbspend360/internal/workspace"
	"github.com/dbspend360/dbspend360/pkg/types"
)

func TestGetCluster(t *testing.T) {
	t.Run("decodes a cluster snapshot", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/2.1/clusters/get", r.URL.Path)
			assert.Equal(t, "0601-cluster", r.URL.Query().Get("cluster_id"))
			assert.Equal(t, "Bearer dapi-test", r.Header.Get("Authorization"))

			json.NewEncoder(w).Encode(map[string]any{
				"cluster_id":          "0601-cluster",
				"cluster_name":        "etl-prod",
				"state":               "RUNNING",
				"creator_user_name":   "data-eng@example.com",
				"spark_version":       "14.3.x-scala2.12",
				"driver_node_type_id": "i3.xlarge",
				"node_type_id":        "i3.xlarge",
				"autoscale": map[string]int{
					"min_workers": 2,
					"max_workers": 8,
				},
				"autotermination_minutes": 30,
				"data_security_mode":      "SINGLE_USER",
				"custom_tags":             map[string]string{"team": "data-eng"},
			})
		}))
		defer ts.Close()

		client := workspace.New(ts.URL, "dapi-test")
		details, err := client.GetCluster(context.Background(), "0601-cluster")
		require.NoError(t, err)

		assert.Equal(t, "0601-cluster", details.ClusterID)
		assert.Equal(t, "etl-prod", details.ClusterName)
		assert.Equal(t, "RUNNING", details.State)
		assert.Equal(t, "data-eng@example.com", details.OwnedBy)
		assert.Equal(t, "i3.xlarge", details.WorkerNodeType)
		require.NotNil(t, details.AutoScale)
		assert.Equal(t, 2, details.AutoScale.MinWorkers)
		assert.Equal(t, 8, details.AutoScale.MaxWorkers)
		assert.Equal(t, 30, details.AutoTerminationMinutes)
		assert.Equal(t, "data-eng", details.CustomTags["team"])
	})

	t.Run("fixed-size cluster has no autoscale", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"cluster_id":  "0601-cluster",
				"num_workers": 4,
			})
		}))
		defer ts.Close()

		details, err := workspace.New(ts.URL, "dapi-test").GetCluster(context.Background(), "0601-cluster")
		require.NoError(t, err)

		assert.Nil(t, details.AutoScale)
		assert.Equal(t, 4, details.NumWorkers)
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		_, err := workspace.New(ts.URL, "dapi-test").GetCluster(context.Background(), "missing")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("400 for an unknown id maps to not found", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer ts.Close()

		_, err := workspace.New(ts.URL, "dapi-test").GetCluster(context.Background(), "missing")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("server error maps to upstream unavailable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		_, err := workspace.New(ts.URL, "dapi-test").GetCluster(context.Background(), "0601-cluster")
		assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
	})

	t.Run("unreachable host maps to upstream unavailable", func(t *testing.T) {
		client := workspace.New("http://127.0.0.1:1", "dapi-test")
		_, err := client.GetCluster(context.Background(), "0601-cluster")
		assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
	})
}

func TestQueryServing(t *testing.T) {
	t.Run("returns the first choice's content", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/serving-endpoints/databricks-claude-sonnet-4/invocations", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var req struct {
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
				MaxTokens   int     `json:"max_tokens"`
				Temperature float64 `json:"temperature"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Messages, 1)
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, 300, req.MaxTokens)
			assert.Equal(t, 0.1, req.Temperature)

			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"content": "  Compute dominates this run.  "}},
				},
			})
		}))
		defer ts.Close()

		client := workspace.New(ts.URL, "dapi-test")
		out, err := client.QueryServing(context.Background(), "databricks-claude-sonnet-4", "analyze", 300)
		require.NoError(t, err)
		assert.Equal(t, "Compute dominates this run.", out)
	})

	t.Run("empty choices maps to upstream unavailable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		defer ts.Close()

		_, err := workspace.New(ts.URL, "dapi-test").QueryServing(context.Background(), "m", "p", 100)
		assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
	})

	t.Run("non-200 maps to upstream unavailable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer ts.Close()

		_, err := workspace.New(ts.URL, "dapi-test").QueryServing(context.Background(), "m", "p", 100)
		assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
	})
}

func TestHost(t *testing.T) {
	client := workspace.New("https://example.cloud.databricks.com/", "dapi-test")
	assert.Equal(t, "https://example.cloud.databricks.com", client.Host())
}
