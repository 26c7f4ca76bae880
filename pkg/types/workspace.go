package types

// AutoScale holds a cluster's worker autoscale bounds.
type AutoScale struct {
	MinWorkers int `json:"min_workers"`
	MaxWorkers int `json:"max_workers"`
}

// ClusterDetails is a read-only snapshot of a cluster's configuration as
// reported by the workspace API at query time. It is not versioned here.
type ClusterDetails struct {
	ClusterID              string            `json:"cluster_id"`
	ClusterName            string            `json:"cluster_name,omitempty"`
	State                  string            `json:"state,omitempty"`
	OwnedBy                string            `json:"owned_by,omitempty"`
	DriverNodeType         string            `json:"driver_node_type,omitempty"`
	WorkerNodeType         string            `json:"worker_node_type,omitempty"`
	NumWorkers             int               `json:"num_workers"`
	AutoScale              *AutoScale        `json:"autoscale,omitempty"`
	AutoTerminationMinutes int               `json:"auto_termination_minutes"`
	SparkVersion           string            `json:"spark_version,omitempty"`
	DataSecurityMode       string            `json:"data_security_mode,omitempty"`
	CustomTags             map[string]string `json:"custom_tags,omitempty"`
}
