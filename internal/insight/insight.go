// Package insight generates cost and cluster-configuration analysis text by
// prompting an LLM serving endpoint. The endpoint is an opaque external
// service; this package only builds prompts and relays its text.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbspend360/dbspend360/pkg/types"
)

// ServingClient is the slice of the workspace client the service needs.
type ServingClient interface {
	QueryServing(ctx context.Context, endpoint, prompt string, maxTokens int) (string, error)
}

// Service generates analysis text for job runs and clusters.
type Service struct {
	client ServingClient
	model  string
}

// NewService creates an insight service against a serving endpoint name.
func NewService(client ServingClient, model string) *Service {
	return &Service{
		client: client,
		model:  model,
	}
}

const costMaxTokens = 300

// AnalyzeCost asks the model for optimization insights on one run's cost
// breakdown.
func (s *Service) AnalyzeCost(ctx context.Context, b types.CostBreakdown) (string, error) {
	computePct := 0.0
	platformPct := 0.0
	if b.TotalCost > 0 {
		computePct = b.ComputeCost / b.TotalCost * 100
		platformPct = b.PlatformCost / b.TotalCost * 100
	}

	var sb strings.Builder
	sb.WriteString("You are a Databricks cost optimization expert. Analyze the following job cost breakdown and provide actionable insights:\n\n")
	sb.WriteString("Job Details:\n")
	fmt.Fprintf(&sb, "- Job ID: %s\n", b.JobID)
	fmt.Fprintf(&sb, "- Run ID: %s\n", b.RunID)
	fmt.Fprintf(&sb, "- Cluster ID: %s\n", valueOr(b.ClusterID, "N/A"))
	fmt.Fprintf(&sb, "- Usage Date: %s\n\n", b.UsageDate)
	sb.WriteString("Cost Breakdown:\n")
	fmt.Fprintf(&sb, "- Total Cost: $%.2f\n", b.TotalCost)
	fmt.Fprintf(&sb, "- Compute Cost: $%.2f (%.1f%%)\n", b.ComputeCost, computePct)
	fmt.Fprintf(&sb, "- Databricks Cost: $%.2f (%.1f%%)\n\n", b.PlatformCost, platformPct)
	sb.WriteString("Please provide:\n")
	sb.WriteString("1. A brief analysis of the cost distribution\n")
	sb.WriteString("2. Key insights about whether this run is compute-heavy or platform-heavy\n")
	sb.WriteString("3. Specific optimization recommendations\n")
	sb.WriteString("4. Cost efficiency assessment (High/Medium/Low concern level)\n\n")
	sb.WriteString("Keep the response concise (3-4 bullet points) and actionable for data engineers.")

	text, err := s.client.QueryServing(ctx, s.model, sb.String(), costMaxTokens)
	if err != nil {
		return "", fmt.Errorf("cost analysis: %w", err)
	}
	return text, nil
}

const clusterMaxTokens = 400

// AnalyzeCluster asks the model to review a cluster's configuration for
// cost efficiency.
func (s *Service) AnalyzeCluster(ctx context.Context, d types.ClusterDetails) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are a Databricks cluster configuration expert. Review the following cluster configuration for cost efficiency:\n\n")
	sb.WriteString("Cluster Configuration:\n")
	fmt.Fprintf(&sb, "- Cluster ID: %s\n", d.ClusterID)
	fmt.Fprintf(&sb, "- Name: %s\n", valueOr(d.ClusterName, "N/A"))
	fmt.Fprintf(&sb, "- Owned By: %s\n", valueOr(d.OwnedBy, "N/A"))
	fmt.Fprintf(&sb, "- Driver Node Type: %s\n", valueOr(d.DriverNodeType, "N/A"))
	fmt.Fprintf(&sb, "- Worker Node Type: %s\n", valueOr(d.WorkerNodeType, "N/A"))
	if d.AutoScale != nil {
		fmt.Fprintf(&sb, "- Autoscale: %d-%d workers\n", d.AutoScale.MinWorkers, d.AutoScale.MaxWorkers)
	} else {
		fmt.Fprintf(&sb, "- Workers: %d (fixed)\n", d.NumWorkers)
	}
	fmt.Fprintf(&sb, "- Auto-Termination: %d minutes\n", d.AutoTerminationMinutes)
	fmt.Fprintf(&sb, "- DBR Version: %s\n", valueOr(d.SparkVersion, "N/A"))
	fmt.Fprintf(&sb, "- Data Security Mode: %s\n\n", valueOr(d.DataSecurityMode, "N/A"))
	sb.WriteString("Please provide:\n")
	sb.WriteString("1. Configuration issues that drive unnecessary cost\n")
	sb.WriteString("2. Right-sizing recommendations for node types and worker counts\n")
	sb.WriteString("3. Auto-termination and autoscaling guidance\n\n")
	sb.WriteString("Keep the response concise (3-4 bullet points) and actionable.")

	text, err := s.client.QueryServing(ctx, s.model, sb.String(), clusterMaxTokens)
	if err != nil {
		return "", fmt.Errorf("cluster analysis: %w", err)
	}
	return text, nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
