package app

import (
	"fmt"

	accessHTTP "github.com/bitmarket/contentgate/internal/access/http"
	accessUseCase "github.com/bitmarket/contentgate/internal/access/usecase"
	authHTTP "github.com/bitmarket/contentgate/internal/auth/http"
	authRepository "github.com/bitmarket/contentgate/internal/auth/repository"
	authService "github.com/bitmarket/contentgate/internal/auth/service"
	authUseCase "github.com/bitmarket/contentgate/internal/auth/usecase"
	catalogRepository "github.com/bitmarket/contentgate/internal/catalog/repository"
	licenseRepository "github.com/bitmarket/contentgate/internal/license/repository"
	licenseUseCase "github.com/bitmarket/contentgate/internal/license/usecase"
)

// TokenService returns the token service for session authentication.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// SessionRepository returns the session repository based on database driver.
func (c *Container) SessionRepository() (authUseCase.SessionRepository, error) {
	c.sessionRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["sessionRepo"] = fmt.Errorf("failed to get database for session repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.sessionRepo = authRepository.NewMySQLSessionRepository(db)
		case "postgres":
			c.sessionRepo = authRepository.NewPostgreSQLSessionRepository(db)
		default:
			c.initErrors["sessionRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["sessionRepo"]; exists {
		return nil, storedErr
	}
	return c.sessionRepo, nil
}

// AuthUseCase returns the session validation use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	c.authUCInit.Do(func() {
		sessionRepo, err := c.SessionRepository()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		c.authUC = authUseCase.NewAuthUseCase(sessionRepo, c.TokenService(), c.Logger())
	})
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUC, nil
}

// AuthMiddleware returns the gin middleware enforcing session authentication.
func (c *Container) AuthMiddleware() (*authHTTP.AuthMiddleware, error) {
	c.authMiddlewareInit.Do(func() {
		authUC, err := c.AuthUseCase()
		if err != nil {
			c.initErrors["authMiddleware"] = err
			return
		}
		c.authMiddleware = authHTTP.NewAuthMiddleware(authUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["authMiddleware"]; exists {
		return nil, storedErr
	}
	return c.authMiddleware, nil
}

// ContentFileRepository returns the catalog repository based on database driver.
func (c *Container) ContentFileRepository() (accessUseCase.ContentFileRepository, error) {
	c.contentFileRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["contentFileRepo"] = fmt.Errorf("failed to get database for content file repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.contentFileRepo = catalogRepository.NewMySQLContentFileRepository(db)
		case "postgres":
			c.contentFileRepo = catalogRepository.NewPostgreSQLContentFileRepository(db)
		default:
			c.initErrors["contentFileRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["contentFileRepo"]; exists {
		return nil, storedErr
	}
	return c.contentFileRepo, nil
}

// LicenseRepository returns the license repository based on database driver.
func (c *Container) LicenseRepository() (licenseUseCase.LicenseRepository, error) {
	c.licenseRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["licenseRepo"] = fmt.Errorf("failed to get database for license repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.licenseRepo = licenseRepository.NewMySQLLicenseRepository(db)
		case "postgres":
			c.licenseRepo = licenseRepository.NewPostgreSQLLicenseRepository(db)
		default:
			c.initErrors["licenseRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["licenseRepo"]; exists {
		return nil, storedErr
	}
	return c.licenseRepo, nil
}

// LicenseUseCase returns the license gate use case.
func (c *Container) LicenseUseCase() (licenseUseCase.LicenseUseCase, error) {
	c.licenseUCInit.Do(func() {
		licenseRepo, err := c.LicenseRepository()
		if err != nil {
			c.initErrors["licenseUseCase"] = err
			return
		}
		licenseUC, err := licenseUseCase.NewLicenseUseCase(licenseRepo)
		if err != nil {
			c.initErrors["licenseUseCase"] = fmt.Errorf("failed to create license use case: %w", err)
			return
		}
		c.licenseUC = licenseUC
	})
	if storedErr, exists := c.initErrors["licenseUseCase"]; exists {
		return nil, storedErr
	}
	return c.licenseUC, nil
}

// AccessUseCase returns the access orchestrator, wrapped with business metrics.
func (c *Container) AccessUseCase() (accessUseCase.AccessUseCase, error) {
	c.accessUCInit.Do(func() {
		contentFileRepo, err := c.ContentFileRepository()
		if err != nil {
			c.initErrors["accessUseCase"] = err
			return
		}
		licenseUC, err := c.LicenseUseCase()
		if err != nil {
			c.initErrors["accessUseCase"] = err
			return
		}
		limiter, err := c.DownloadLimiter()
		if err != nil {
			c.initErrors["accessUseCase"] = err
			return
		}
		signer, err := c.URLSigner()
		if err != nil {
			c.initErrors["accessUseCase"] = err
			return
		}

		uc, err := accessUseCase.NewAccessUseCase(
			contentFileRepo,
			licenseUC,
			limiter,
			signer,
			accessUseCase.Config{
				PublicBaseURL:       c.config.PublicBaseURL,
				DocumentExpiry:      c.config.DocumentURLExpiry,
				VideoExpiry:         c.config.VideoURLExpiry,
				MaxFileSize:         c.config.MaxFileSizeBytes,
				AllowedContentTypes: c.config.ContentTypeList(),
				FilenameMaxLength:   c.config.FilenameMaxLength,
			},
			c.Logger(),
		)
		if err != nil {
			c.initErrors["accessUseCase"] = fmt.Errorf("failed to create access use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["accessUseCase"] = err
			return
		}

		c.accessUC = accessUseCase.NewMetricsAccessUseCase(uc, businessMetrics)
	})
	if storedErr, exists := c.initErrors["accessUseCase"]; exists {
		return nil, storedErr
	}
	return c.accessUC, nil
}

// AccessHandler returns the HTTP handler for minting access grants.
func (c *Container) AccessHandler() (*accessHTTP.AccessHandler, error) {
	c.accessHandlerInit.Do(func() {
		accessUC, err := c.AccessUseCase()
		if err != nil {
			c.initErrors["accessHandler"] = err
			return
		}
		c.accessHandler = accessHTTP.NewAccessHandler(accessUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["accessHandler"]; exists {
		return nil, storedErr
	}
	return c.accessHandler, nil
}

// RedirectHandler returns the HTTP handler for the signed redirect endpoints.
func (c *Container) RedirectHandler() (*accessHTTP.RedirectHandler, error) {
	c.redirectHandlerInit.Do(func() {
		signer, err := c.URLSigner()
		if err != nil {
			c.initErrors["redirectHandler"] = err
			return
		}
		c.redirectHandler = accessHTTP.NewRedirectHandler(signer, c.Logger())
	})
	if storedErr, exists := c.initErrors["redirectHandler"]; exists {
		return nil, storedErr
	}
	return c.redirectHandler, nil
}
