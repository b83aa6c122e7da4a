package config

import (
	"github.com/spf13/viper"
)

const defaultPageSize = 10

// Paging holds defaults for list pagination.
type Paging struct {
	// DefaultPageSize applies when a paginator is created without an
	// explicit page size. The server caps list limits at 100.
	DefaultPageSize int `validate:"min=1,max=100"`
}

func getPagingConfig(v *viper.Viper) *Paging {
	return &Paging{
		DefaultPageSize: getIntOrDefault(v, "paging.default_page_size", defaultPageSize),
	}
}
