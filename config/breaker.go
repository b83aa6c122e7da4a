package config

import (
	"time"

	"github.com/spf13/viper"
)

// Breaker holds circuit breaker thresholds for the transport client.
type Breaker struct {
	Enabled     bool
	MaxRequests uint32
	MaxFailures uint32
	Interval    time.Duration
	Timeout     time.Duration
}

func defaultBreaker() *Breaker {
	return &Breaker{
		Enabled:     true,
		MaxRequests: 3,
		MaxFailures: 5,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
	}
}

func getBreakerConfig(v *viper.Viper) *Breaker {
	d := defaultBreaker()
	return &Breaker{
		Enabled:     getBoolOrDefault(v, "breaker.enabled", d.Enabled),
		MaxRequests: getUint32OrDefault(v, "breaker.max_requests", d.MaxRequests),
		MaxFailures: getUint32OrDefault(v, "breaker.max_failures", d.MaxFailures),
		Interval:    getDurationOrDefault(v, "breaker.interval", d.Interval),
		Timeout:     getDurationOrDefault(v, "breaker.timeout", d.Timeout),
	}
}
