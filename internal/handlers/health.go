package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cardvault/internal/repositories"
)

func HealthCheck(c *fiber.Ctx) error {
	dbStatus := "connected"
	if repositories.DB == nil {
		dbStatus = "unavailable"
	} else if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	redisStatus := "connected"
	if repositories.CacheService == nil || repositories.CacheService.HealthCheck(c.Context()) != nil {
		redisStatus = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"services": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
