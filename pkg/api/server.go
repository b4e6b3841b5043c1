package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/revenue/pkg/api/routes"
	"github.com/travigo/revenue/pkg/cachedreports"
	"github.com/travigo/revenue/pkg/registry"
)

func NewApp(serviceRegistry *registry.Registry, cache *cachedreports.Cache) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.ServicesRouter(group.Group("/services"), &routes.Services{
		Registry: serviceRegistry,
		Cache:    cache,
	})

	return webApp
}

func SetupServer(listen string, serviceRegistry *registry.Registry, cache *cachedreports.Cache) error {
	return NewApp(serviceRegistry, cache).Listen(listen)
}
