// Package workspace is a thin client for the Databricks workspace REST API:
// cluster configuration snapshots, the workspace host for outbound links,
// and serving-endpoint queries for insight generation. The workspace is an
// external collaborator; failures surface as the typed upstream error.
package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dbspend360/dbspend360/pkg/types"
)

// Client calls the Databricks workspace REST API.
type Client struct {
	host       string
	token      string
	httpClient *http.Client
}

// New creates a workspace client for the given host and access token.
func New(host, token string) *Client {
	return &Client{
		host:  strings.TrimRight(host, "/"),
		token: token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Host returns the workspace host URL, used by the client to build outbound
// deep links.
func (c *Client) Host() string {
	return c.host
}

// clusterResponse mirrors the fields of the clusters/get API we report on.
type clusterResponse struct {
	ClusterID       string `json:"cluster_id"`
	ClusterName     string `json:"cluster_name"`
	State           string `json:"state"`
	CreatorUserName string `json:"creator_user_name"`
	SparkVersion    string `json:"spark_version"`
	DriverNodeType  string `json:"driver_node_type_id"`
	NodeType        string `json:"node_type_id"`
	NumWorkers      int    `json:"num_workers"`
	Autoscale       *struct {
		MinWorkers int `json:"min_workers"`
		MaxWorkers int `json:"max_workers"`
	} `json:"autoscale"`
	AutoTerminationMinutes int               `json:"autotermination_minutes"`
	DataSecurityMode       string            `json:"data_security_mode"`
	CustomTags             map[string]string `json:"custom_tags"`
}

// GetCluster fetches the current configuration snapshot for a cluster.
// Returns types.ErrNotFound when the workspace does not know the cluster and
// types.ErrUpstreamUnavailable on transport or server failures.
func (c *Client) GetCluster(ctx context.Context, clusterID string) (*types.ClusterDetails, error) {
	endpoint := fmt.Sprintf("%s/api/2.1/clusters/get?cluster_id=%s", c.host, url.QueryEscape(clusterID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build cluster request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		// The clusters API reports unknown ids as INVALID_PARAMETER_VALUE
		// with a 400, older workspaces with a 404.
		return nil, fmt.Errorf("%w: cluster %s", types.ErrNotFound, clusterID)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: clusters API status %d: %s", types.ErrUpstreamUnavailable, resp.StatusCode, body)
	}

	var cr clusterResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("decode cluster response: %w", err)
	}

	details := &types.ClusterDetails{
		ClusterID:              cr.ClusterID,
		ClusterName:            cr.ClusterName,
		State:                  cr.State,
		OwnedBy:                cr.CreatorUserName,
		DriverNodeType:         cr.DriverNodeType,
		WorkerNodeType:         cr.NodeType,
		NumWorkers:             cr.NumWorkers,
		AutoTerminationMinutes: cr.AutoTerminationMinutes,
		SparkVersion:           cr.SparkVersion,
		DataSecurityMode:       cr.DataSecurityMode,
		CustomTags:             cr.CustomTags,
	}
	if cr.Autoscale != nil {
		details.AutoScale = &types.AutoScale{
			MinWorkers: cr.Autoscale.MinWorkers,
			MaxWorkers: cr.Autoscale.MaxWorkers,
		}
	}

	return details, nil
}

type servingMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type servingRequest struct {
	Messages    []servingMessage `json:"messages"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
}

type servingResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// QueryServing sends a single-turn prompt to a model serving endpoint and
// returns the response text.
func (c *Client) QueryServing(ctx context.Context, endpoint, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(servingRequest{
		Messages:    []servingMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("encode serving request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/serving-endpoints/%s/invocations", c.host, url.PathEscape(endpoint))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build serving request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: serving endpoint status %d: %s", types.ErrUpstreamUnavailable, resp.StatusCode, respBody)
	}

	var sr servingResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decode serving response: %w", err)
	}

	if len(sr.Choices) == 0 {
		return "", fmt.Errorf("%w: serving endpoint returned no choices", types.ErrUpstreamUnavailable)
	}

	return strings.TrimSpace(sr.Choices[0].Message.Content), nil
}
