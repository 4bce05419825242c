package services

import (
	portsprov "github.com/devfx/currency_converter_api/internal/core/ports/providers"
	portsrepo "github.com/devfx/currency_converter_api/internal/core/ports/repositories"
	portssvc "github.com/devfx/currency_converter_api/internal/core/ports/services"
)

// Repositories bundles the repository implementations the services need.
type Repositories struct {
	UserRepo       portsrepo.UserRepositoryFacade
	ConversionRepo portsrepo.ConversionRepositoryFacade
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(repos Repositories, rateProvider portsprov.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Exchange = NewExchangeService(rateProvider, repos.ConversionRepo, repos.UserRepo)

	return container
}
