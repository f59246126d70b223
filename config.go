package apacai

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/casualjim/apacai/pkg/slogx"
	"github.com/casualjim/apacai/transport"
)

type environment struct {
	config  transport.Config
	factory transport.Factory
}

var (
	current  atomic.Pointer[environment]
	initOnce sync.Once
)

func env() *environment {
	initOnce.Do(func() {
		if current.Load() != nil {
			return
		}
		cfg, err := transport.ConfigFromEnv()
		if err != nil {
			slog.Warn("failed to read configuration from the environment, using defaults", slogx.Error(err))
			cfg = transport.Config{MaxRetries: -1}.WithDefaults()
		}
		current.CompareAndSwap(nil, &environment{config: cfg, factory: transport.HTTPFactory()})
	})
	return current.Load()
}

// Configure sets the process configuration. Call it once at start-up, before
// objects issue requests. Without it the configuration is read from APACAI_*
// environment variables on first use.
func Configure(cfg transport.Config) {
	e := *env()
	e.config = cfg.WithDefaults()
	current.Store(&e)
}

// Configuration returns the process configuration.
func Configuration() transport.Config {
	return env().config
}

// SetRequestorFactory replaces the factory used to build requestors and returns a
// function that restores the previous one.
func SetRequestorFactory(f transport.Factory) (restore func()) {
	prev := env()
	e := *prev
	e.factory = f
	current.Store(&e)
	return func() {
		current.Store(prev)
	}
}

// requestorConfig overlays the object's identity on the process configuration.
func (o *Object) requestorConfig(cfg transport.Config) transport.Config {
	if o.apiKey != "" {
		cfg.APIKey = o.apiKey
		cfg.APIKeyPath = ""
	}
	base := o.apiBase
	if base == "" {
		if v, ok := variantFor(o.kind); ok {
			base = v.APIBase
		}
	}
	if base != "" {
		cfg.APIBase = base
	}
	cfg.APIType = o.apiType.Or(cfg.APIType)
	if o.apiVersion != "" {
		cfg.APIVersion = o.apiVersion
	}
	if o.organization != "" {
		cfg.Organization = o.organization
	}
	return cfg.WithDefaults()
}
