// handlers/clan_routes.go
package handlers

import (
	"errors"

	"card-reward-system/middleware"
	"card-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

// clanErrStatus maps clan service errors to HTTP statuses so every route
// reports them the same way.
func clanErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNameEmpty),
		errors.Is(err, services.ErrNameTooLong):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrClanNotFound),
		errors.Is(err, services.ErrNotInClan):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNotCreator):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNameTaken),
		errors.Is(err, services.ErrCreatorConflict),
		errors.Is(err, services.ErrMembershipConflict),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrClanFull),
		errors.Is(err, services.ErrCreatorCannotLeave),
		errors.Is(err, services.ErrNotClanMember),
		errors.Is(err, services.ErrRaceLost):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func SetupClanRoutes(app *fiber.App, clanService *services.ClanService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/clans", func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}

		clan, err := clanService.Create(body.Name, middleware.UserID(c))
		if err != nil {
			return c.Status(clanErrStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(clan)
	})

	secured.Post("/clans/join", func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}

		outcome, err := clanService.Join(middleware.UserID(c), body.Name)
		if err != nil {
			return c.Status(clanErrStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		// Pending outcomes carry the notification the Gateway delivers to
		// the clan creator.
		return c.JSON(outcome)
	})

	secured.Post("/clans/leave", func(c *fiber.Ctx) error {
		if err := clanService.Leave(middleware.UserID(c)); err != nil {
			return c.Status(clanErrStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"left": true})
	})

	secured.Post("/clans/accept", func(c *fiber.Ctx) error {
		var body struct {
			CandidateID int64 `json:"candidate_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}

		clan, err := clanService.Accept(middleware.UserID(c), body.CandidateID)
		if err != nil {
			return c.Status(clanErrStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(clan)
	})

	secured.Post("/clans/reject", func(c *fiber.Ctx) error {
		var body struct {
			CandidateID int64 `json:"candidate_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}

		if err := clanService.Reject(middleware.UserID(c), body.CandidateID); err != nil {
			return c.Status(clanErrStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"rejected": true})
	})

	secured.Post("/clans/request-mode", func(c *fiber.Ctx) error {
		var body struct {
			Enabled bool `json:"enabled"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}

		userID := middleware.UserID(c)
		clan, err := clanService.GetUserClan(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if clan == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrNotInClan.Error()})
		}

		if err := clanService.SetRequestMode(clan.ID, userID, body.Enabled); err != nil {
			return c.Status(clanErrStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"request_mode": body.Enabled})
	})

	secured.Post("/clans/transfer", func(c *fiber.Ctx) error {
		var body struct {
			NewCreatorID int64 `json:"new_creator_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}

		userID := middleware.UserID(c)
		clan, err := clanService.GetUserClan(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if clan == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrNotInClan.Error()})
		}

		if err := clanService.TransferLeadership(clan.ID, userID, body.NewCreatorID); err != nil {
			return c.Status(clanErrStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"new_creator_id": body.NewCreatorID})
	})

	secured.Delete("/clans", func(c *fiber.Ctx) error {
		userID := middleware.UserID(c)
		clan, err := clanService.GetUserClan(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if clan == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrNotInClan.Error()})
		}

		if err := clanService.Delete(clan.ID, userID); err != nil {
			return c.Status(clanErrStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"deleted": true})
	})

	secured.Get("/clans/mine", func(c *fiber.Ctx) error {
		clan, err := clanService.GetUserClan(middleware.UserID(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if clan == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrNotInClan.Error()})
		}
		return c.JSON(clan)
	})
}
