package meta

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/owl-eval/backend/internal/app/appconfig"
	"github.com/owl-eval/backend/internal/model/cache"
	"github.com/owl-eval/backend/internal/model/types"
	"github.com/owl-eval/backend/internal/pkg/cachectrl"
	"github.com/owl-eval/backend/internal/pkg/middlewares"
	"github.com/owl-eval/backend/internal/server/svr"
	"github.com/owl-eval/backend/internal/service"
	"github.com/owl-eval/backend/internal/util/rekuest"
)

type AdminController struct {
	fx.In

	Config             *appconfig.Config
	ParticipantService *service.Participant
	PerformanceService *service.Performance
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Use(middlewares.AdminKey(c.Config.AdminKey))

	admin.Post("/purge", c.PurgeCache)

	admin.Get("/participants", c.GetParticipants)
	admin.Post("/participants/:participantId/status/:status", c.UpdateParticipantStatus)

	admin.Get("/refresh/performance/:experimentId", c.RefreshExperimentPerformance)
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request types.PurgeCacheRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}
	return cache.Delete(request.Name, request.Key)
}

func (c *AdminController) GetParticipants(ctx *fiber.Ctx) error {
	experimentId := ctx.Query("experimentId")
	if err := rekuest.ValidVar(ctx, experimentId, "required,max=64"); err != nil {
		return err
	}

	participants, err := c.ParticipantService.GetParticipantsByExperimentId(ctx.UserContext(), experimentId)
	if err != nil {
		return err
	}

	// demographic data: keep it out of shared caches
	cachectrl.OptOut(ctx)
	return ctx.JSON(participants)
}

func (c *AdminController) RefreshExperimentPerformance(ctx *fiber.Ctx) error {
	experimentId := ctx.Params("experimentId")
	return c.PerformanceService.RefreshExperimentPerformance(ctx.UserContext(), experimentId)
}

// UpdateParticipantStatus marks a participant e.g. returned or approved,
// which changes whether their evaluations count towards reports.
func (c *AdminController) UpdateParticipantStatus(ctx *fiber.Ctx) error {
	participantId := ctx.Params("participantId")
	status := strings.ToLower(ctx.Params("status"))
	if err := rekuest.ValidVar(ctx, status, "caseinsensitiveoneof=active approved returned timed_out"); err != nil {
		return err
	}

	if err := c.ParticipantService.UpdateParticipantStatus(ctx.UserContext(), participantId, status); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}
