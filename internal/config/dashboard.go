package config

func GetDashboardInstanceURL() string {
	return GetEnvOrDefault("DATABRICKS_INSTANCE_URL", "")
}

func GetDashboardWorkspaceID() string {
	return GetEnvOrDefault("DATABRICKS_WORKSPACE_ID", "")
}

func GetDashboardID() string {
	return GetEnvOrDefault("DATABRICKS_DASHBOARD_ID", "")
}

// GetEmbedTokenSecret returns the HMAC secret used to sign dashboard embed tokens.
func GetEmbedTokenSecret() []byte {
	return []byte(GetEnvOrDefault("DASHBOARD_EMBED_SECRET", ""))
}
