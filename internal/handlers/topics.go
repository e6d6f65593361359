package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/studynotes/internal/services"
	"github.com/localnerve/studynotes/internal/types"
	"github.com/localnerve/studynotes/internal/utils"
	"gorm.io/gorm"
)

// TopicsHandler handles the read-only topic browsing routes
type TopicsHandler struct {
	DB *gorm.DB
}

// List handles GET /topics
// @Summary List topics with canonical titles
// @Description Canonicalizes synonym titles, dedups case-insensitively, fills default descriptions
// @Tags Topics
// @Produce json
// @Success 200 {array} services.TopicView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /topics [get]
func (h *TopicsHandler) List(c *fiber.Ctx) error {
	topics, err := services.ListTopics(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "topics.list")
	}
	return c.JSON(topics)
}

// Detail handles GET /topic/:id
// @Summary One topic with its sections and revision sheets
// @Tags Topics
// @Produce json
// @Param id path int true "Topic id"
// @Success 200 {object} services.TopicDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /topic/{id} [get]
func (h *TopicsHandler) Detail(c *fiber.Ctx) error {
	topicID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusNotFound,
			Message: "Topic not found",
			Type:    "topics.id",
		}
	}

	detail, err := services.GetTopic(h.DB, topicID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Topic not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "topics.detail")
	}

	return c.JSON(detail)
}
