package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/studynotes/internal/config"
	"github.com/localnerve/studynotes/internal/services"
	"github.com/localnerve/studynotes/internal/utils"
	"gorm.io/gorm"
)

// LocationsHandler handles the library location routes
type LocationsHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// List handles GET /locations. The default response carries the page
// data; ?format=json returns the bare rows with lat/lon guaranteed
// numeric-or-null.
// @Summary List stored library locations
// @Tags Locations
// @Produce json
// @Param format query string false "json for the bare coerced rows"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /locations [get]
func (h *LocationsHandler) List(c *fiber.Ctx) error {
	locations, err := services.ListLocations(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "locations.list")
	}

	if strings.EqualFold(c.Query("format"), "json") {
		return c.JSON(locations)
	}

	return c.JSON(fiber.Map{
		"locations": locations,
		"suburb":    "",
	})
}

// Full handles GET /api/locations_full: detailed records for the map
// popups, file-first with a database fallback.
// @Summary Detailed library locations
// @Description Prefers the external JSON file; falls back to database rows with null auxiliary fields
// @Tags Locations
// @Produce json
// @Success 200 {array} importer.Record
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /api/locations_full [get]
func (h *LocationsHandler) Full(c *fiber.Ctx) error {
	records, degraded, err := services.FullLocations(h.DB, h.Cfg)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "locations.full")
	}
	if degraded {
		c.Set("X-Data-Source", "database")
	}
	return c.JSON(records)
}
