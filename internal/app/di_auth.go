package app

import (
	"fmt"

	authHTTP "github.com/allisson/employees/internal/auth/http"
	authService "github.com/allisson/employees/internal/auth/service"
	authUseCase "github.com/allisson/employees/internal/auth/usecase"
)

// TokenService returns the JWT token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = c.initTokenService()
	})
	return c.tokenService
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService(c.config.PasswordHashPolicy)
	})
	return c.passwordService
}

// SessionUseCase returns the session use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
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

// SessionHandler returns the HTTP handler for session lifecycle operations.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	var err error
	c.sessionHandlerInit.Do(func() {
		c.sessionHandler, err = c.initSessionHandler()
		if err != nil {
			c.initErrors["sessionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionHandler"]; exists {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

// initTokenService creates the JWT token service from the signing configuration.
func (c *Container) initTokenService() authService.TokenService {
	return authService.NewJWTService(authService.JWTConfig{
		AccessSecret:      c.config.AccessTokenSecret,
		RefreshSecret:     c.config.RefreshTokenSecret,
		AccessExpiration:  c.config.AccessTokenExpiration,
		RefreshExpiration: c.config.RefreshTokenExpiration,
		Issuer:            c.config.TokenIssuer,
	})
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	employeeRepo, err := c.EmployeeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get employee repository for session use case: %w", err)
	}

	baseUseCase := authUseCase.NewSessionUseCase(
		employeeRepo,
		c.TokenService(),
		c.PasswordService(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSessionHandler creates the session HTTP handler.
func (c *Container) initSessionHandler() (*authHTTP.SessionHandler, error) {
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for session handler: %w", err)
	}

	cookie := authHTTP.CookieConfig{
		Name:   c.config.RefreshCookieName,
		Domain: c.config.CookieDomain,
		Secure: c.config.CookieSecure,
	}

	return authHTTP.NewSessionHandler(
		sessionUseCase,
		cookie,
		c.config.AccessTokenExpiration,
		c.Logger(),
	), nil
}
