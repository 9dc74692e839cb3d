package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"github.com/owl-eval/backend/internal/model/types"
	"github.com/owl-eval/backend/internal/pkg/owerr"
	"github.com/owl-eval/backend/internal/pkg/partid"
	"github.com/owl-eval/backend/internal/server/svr"
	"github.com/owl-eval/backend/internal/service"
	"github.com/owl-eval/backend/internal/util/rekuest"
)

type Participant struct {
	fx.In

	ParticipantService *service.Participant
}

func RegisterParticipant(v1 *svr.V1, c Participant) {
	v1.Get("/participants/me", c.GetMe)
	v1.Post("/participants", c.CreateParticipant)
}

// @Summary      Get Current Participant Session
// @Tags         Participant
// @Produce      json
// @Success      200  {object}  model.Participant
// @Failure      400  {object}  owerr.OwlError  "No session or unknown participant"
// @Router       /api/v1/participants/me [GET]
func (c *Participant) GetMe(ctx *fiber.Ctx) error {
	participantId := partid.Extract(ctx)
	if participantId == "" {
		return owerr.ErrNotFound.Msg("no participant session")
	}

	participant, err := c.ParticipantService.GetParticipantById(ctx.UserContext(), participantId)
	if err != nil {
		return err
	}
	return ctx.JSON(participant)
}

// @Summary      Create a Participant Session
// @Description  Registers a participant for an experiment. Panel-recruited participants supply their panel identity and demographics; without one an anonymous session is minted.
// @Tags         Participant
// @Accept       json
// @Produce      json
// @Param        participant  body      types.ParticipantCreateRequest  true  "Participant"
// @Success      200          {object}  model.Participant
// @Router       /api/v1/participants [POST]
func (c *Participant) CreateParticipant(ctx *fiber.Ctx) error {
	var request types.ParticipantCreateRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	participant, err := c.ParticipantService.CreateParticipant(ctx.UserContext(), &request)
	if err != nil {
		return errors.Wrap(err, "failed to create participant")
	}

	partid.Inject(ctx, participant.ID)
	return ctx.JSON(participant)
}
