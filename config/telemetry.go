package config

type TelemetryConfig struct {
	Metric struct {
		Enabled bool      `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		Buckets []float64 `yaml:"buckets" mapstructure:"BUCKETS" json:"buckets"`
	} `yaml:"metric" mapstructure:"METRIC" json:"metric"`
	Trace struct {
		Enabled     bool   `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		EndpointUrl string `yaml:"endpointUrl" mapstructure:"ENDPOINT_URL" json:"endpointUrl"`
		// 0 或 >= 1 代表全部取樣
		SampleRatio float64 `yaml:"sampleRatio" mapstructure:"SAMPLE_RATIO" json:"sampleRatio"`
		// 額外接受 GCP X-Cloud-Trace-Context header
		CloudTrace bool `yaml:"cloudTrace" mapstructure:"CLOUD_TRACE" json:"cloudTrace"`
	} `yaml:"trace" mapstructure:"TRACE" json:"trace"`
}
