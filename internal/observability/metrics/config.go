package metrics

// Config identifies the service in exported metrics.
type Config struct {
	ServiceName string
	Environment string
}
