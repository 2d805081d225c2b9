package config

func GetGenieInstanceURL() string {
	return GetEnvOrDefault("DATABRICKS_GENIE_INSTANCE_URL", "")
}

func GetGenieSpaceID() string {
	return GetEnvOrDefault("DATABRICKS_GENIE_SPACE_ID", "")
}

func GetGenieToken() string {
	return GetEnvOrDefault("DATABRICKS_GENIE_TOKEN", "")
}

func GetGenieAPIBase() string {
	return GetEnvOrDefault("DATABRICKS_GENIE_API_BASE", "/api/2.0/genie")
}
