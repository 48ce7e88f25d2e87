package config

// SampleConfig returns a commented configuration file with every option
func SampleConfig() string {
	return `# lrview configuration
version: "1.0"

service:
  # base URL of the LR(1) analysis service
  endpoint: "http://localhost:8000"
  timeout: 60s
  user_agent: "lrview"

output:
  default_format: "text"   # text|json|markdown|csv
  color_mode: "auto"       # auto|always|never
  verbose: false
  theme: "default"         # default|high-contrast|minimal
  no_emoji: false

viewer:
  # diagrams saved from the viewer land here
  download_dir: "."
  mouse: true

watch:
  debounce: 300ms

logging:
  # log file location while the interactive UI is running
  dir: "~/.cache/lrview"
`
}

// MinimalSampleConfig returns the smallest useful configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
service:
  endpoint: "http://localhost:8000"
`
}
