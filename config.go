package ogtext

import (
	"sync"

	"github.com/riverfjs/ogtext-go/internal/types"
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
// Changes to it affect every call that does not pass WithConfig.
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}

// NewConfig returns a fresh copy of the default render configuration.
func NewConfig() *RenderConfig {
	return types.DefaultRenderConfig()
}
