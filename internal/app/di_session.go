package app

import (
	"fmt"

	"github.com/allisson/fxwallet/internal/gateway"
	sessionRepository "github.com/allisson/fxwallet/internal/session/repository"
	sessionService "github.com/allisson/fxwallet/internal/session/service"
	sessionUseCase "github.com/allisson/fxwallet/internal/session/usecase"
)

// TokenSealer returns the sealer protecting persisted tokens.
func (c *Container) TokenSealer() (sessionService.TokenSealer, error) {
	var err error
	c.tokenSealerInit.Do(func() {
		c.tokenSealer, err = c.initTokenSealer()
		if err != nil {
			c.initErrors["tokenSealer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenSealer"]; exists {
		return nil, storedErr
	}
	return c.tokenSealer, nil
}

// KeyValueStore returns the raw session backend selected by SESSION_STORE.
func (c *Container) KeyValueStore() (sessionRepository.KeyValueStore, error) {
	var err error
	c.keyValueStoreInit.Do(func() {
		c.keyValueStore, err = c.initKeyValueStore()
		if err != nil {
			c.initErrors["keyValueStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyValueStore"]; exists {
		return nil, storedErr
	}
	return c.keyValueStore, nil
}

// SessionStore returns the typed session store for the configured profile.
func (c *Container) SessionStore() (*sessionRepository.SessionStore, error) {
	var err error
	c.sessionStoreInit.Do(func() {
		c.sessionStore, err = c.initSessionStore()
		if err != nil {
			c.initErrors["sessionStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionStore"]; exists {
		return nil, storedErr
	}
	return c.sessionStore, nil
}

// AuthClient returns the client for the authenticate and refresh endpoints.
func (c *Container) AuthClient() (*gateway.AuthClient, error) {
	var err error
	c.authClientInit.Do(func() {
		c.authClient, err = c.initAuthClient()
		if err != nil {
			c.initErrors["authClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authClient"]; exists {
		return nil, storedErr
	}
	return c.authClient, nil
}

// SessionUseCase returns the token lifecycle manager.
func (c *Container) SessionUseCase() (sessionUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

func (c *Container) initTokenSealer() (sessionService.TokenSealer, error) {
	sealer, err := sessionService.NewTokenSealer(c.ctx, c.config.SessionKMSKeyURI, c.config.SessionEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token sealer: %w", err)
	}
	if c.config.SessionKMSKeyURI == "" && c.config.SessionEncryptionKey == "" && c.config.SessionStore != "memory" {
		c.Logger().Warn("session tokens are persisted without encryption",
			"session_store", c.config.SessionStore)
	}
	return sealer, nil
}

func (c *Container) initKeyValueStore() (sessionRepository.KeyValueStore, error) {
	switch c.config.SessionStore {
	case "memory":
		return sessionRepository.NewMemoryKVRepository(), nil
	case "file":
		return sessionRepository.NewFileKVRepository(c.config.SessionFilePath), nil
	case "postgres", "mysql":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for session store: %w", err)
		}
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for session store: %w", err)
		}
		if c.config.SessionStore == "mysql" {
			return sessionRepository.NewMySQLKVRepository(db, txManager), nil
		}
		return sessionRepository.NewPostgreSQLKVRepository(db, txManager), nil
	default:
		return nil, fmt.Errorf("unsupported session store: %s", c.config.SessionStore)
	}
}

func (c *Container) initSessionStore() (*sessionRepository.SessionStore, error) {
	kv, err := c.KeyValueStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key value store for session store: %w", err)
	}

	sealer, err := c.TokenSealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get token sealer for session store: %w", err)
	}

	return sessionRepository.NewSessionStore(
		kv,
		sealer,
		c.config.SessionProfile,
		c.Clock(),
		c.config.TokenExpiryLeeway,
	), nil
}

func (c *Container) gatewayConfig() gateway.Config {
	return gateway.Config{
		BaseURL:                 c.config.APIBaseURL,
		CallerID:                c.config.APICallerID,
		Timeout:                 c.config.APITimeout,
		RateLimitRequestsPerSec: c.config.APIRateLimitRequestsPerSec,
		RateLimitBurst:          c.config.APIRateLimitBurst,
	}
}

func (c *Container) initAuthClient() (*gateway.AuthClient, error) {
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth client: %w", err)
	}
	return gateway.NewAuthClient(c.gatewayConfig(), nil, c.Logger(), businessMetrics), nil
}

func (c *Container) initSessionUseCase() (sessionUseCase.SessionUseCase, error) {
	authClient, err := c.AuthClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client for session use case: %w", err)
	}

	store, err := c.SessionStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get session store for session use case: %w", err)
	}

	baseUseCase := sessionUseCase.NewSessionUseCase(
		authClient,
		store,
		c.Clock(),
		sessionUseCase.Config{
			PollInterval: c.config.TokenPollInterval,
			ExpiryLeeway: c.config.TokenExpiryLeeway,
		},
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return sessionUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
