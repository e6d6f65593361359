package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/studynotes/internal/services"
	"github.com/localnerve/studynotes/internal/types"
	"github.com/localnerve/studynotes/internal/utils"
	"gorm.io/gorm"
)

// NotesHandler handles the notes routes; all of them sit behind the
// session middleware.
type NotesHandler struct {
	DB *gorm.DB
}

// List handles GET /notes
// @Summary List the current user's notes, newest first
// @Tags Notes
// @Produce json
// @Success 200 {array} models.Note
// @Failure 302
// @Router /notes [get]
func (h *NotesHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint64)

	notes, err := services.ListNotes(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "notes.list")
	}

	return c.JSON(notes)
}

// Create handles POST /notes. A successful or no-op submission always
// ends in a redirect back to the list (PRG), so a refresh never
// resubmits. Empty content inserts nothing.
// @Summary Create a note
// @Tags Notes
// @Accept json,x-www-form-urlencoded
// @Param content formData string false "Note content"
// @Success 302
// @Router /notes [post]
func (h *NotesHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint64)

	var body struct {
		Content string `json:"content" form:"content"`
	}
	// An unparsable body is treated like empty content
	_ = c.BodyParser(&body)

	if _, err := services.CreateNote(h.DB, userID, body.Content); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "notes.create")
	}

	return c.Redirect("/notes", fiber.StatusFound)
}

// Delete handles POST /delete_note/:id. Deleting a note that belongs
// to another user is a silent no-op.
// @Summary Delete an owned note
// @Tags Notes
// @Param id path int true "Note id"
// @Success 302
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /delete_note/{id} [post]
func (h *NotesHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint64)

	noteID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusNotFound,
			Message: "Note not found",
			Type:    "notes.id",
		}
	}

	if err := services.DeleteNote(h.DB, userID, noteID); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "notes.delete")
	}

	return c.Redirect("/notes", fiber.StatusFound)
}
