package config

type InternalConfig struct {
	App     App
	Records Records
	JWT     JWT
}

type App struct {
	Env                       string
	Port                      string
	Version                   string
	Address                   string
	Timezone                  string
	EndpointPrefix            string
	MaxRequests               int
	MaxTimeRequestsPerSeconds int
	ShutdownTimeoutInSeconds  int
	RequestTimeoutInSeconds   int
}

// Records configures the backing patient-records API: where it lives, how
// writes are retried and how long health and record lookups are cached.
type Records struct {
	BaseUrl                     string
	APIToken                    string
	MaxRetries                  int
	HealthPollIntervalInSeconds int
	HealthCacheTTLInSeconds     int
	RecordCacheTTLInSeconds     int
	EventQueue                  string
}

type JWT struct {
	Secret        string
	ExpTimeInHour int
}
