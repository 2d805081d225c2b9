package config

func GetServingEndpointURL() string {
	return GetEnvOrDefault("DATABRICKS_SERVING_ENDPOINT_URL", "")
}

func GetServingToken() string {
	return GetEnvOrDefault("DATABRICKS_SERVING_TOKEN", "")
}

func GetServingModel() string {
	return GetEnvOrDefault("DATABRICKS_SERVING_MODEL", "databricks-claude-sonnet-4")
}
