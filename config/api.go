package config

import (
	"time"

	"github.com/spf13/viper"
)

const defaultTimeout = 30 * time.Second

// API holds the org endpoint and credentials.
type API struct {
	// BaseURL is the API origin, e.g. https://api.example.com/v2.
	BaseURL string `validate:"omitempty,url"`
	// OrgCode selects the org all requests are scoped to.
	OrgCode string
	// ClientKey is sent as the Org-Client-Key header.
	ClientKey string
	// SessionToken is an optional bearer token for authenticated requests.
	SessionToken string
	Timeout      time.Duration
}

func getAPIConfig(v *viper.Viper) *API {
	return &API{
		BaseURL:      v.GetString("api.base_url"),
		OrgCode:      v.GetString("api.org_code"),
		ClientKey:    v.GetString("api.client_key"),
		SessionToken: v.GetString("api.session_token"),
		Timeout:      getDurationOrDefault(v, "api.timeout", defaultTimeout),
	}
}
