package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/model/types"
	"github.com/owl-eval/backend/internal/pkg/flog"
	"github.com/owl-eval/backend/internal/server/svr"
	"github.com/owl-eval/backend/internal/service"
	"github.com/owl-eval/backend/internal/util/rekuest"
)

type Submission struct {
	fx.In

	SubmissionService *service.Submission
}

func RegisterSubmission(v1 *svr.V1, c Submission) {
	v1.Post("/submissions/comparison", c.SubmitComparison)
	v1.Post("/submissions/single-video", c.SubmitSingleVideo)
}

// @Summary      Submit a Comparison Evaluation
// @Description  Accepts a pairwise comparison submission (draft or final) and queues it for persistence.
// @Tags         Submission
// @Accept       json
// @Produce      json
// @Param        submission  body  types.ComparisonSubmissionRequest  true  "Submission"
// @Success      202
// @Failure      400  {object}  owerr.OwlError  "Invalid or missing submission fields"
// @Router       /api/v1/submissions/comparison [POST]
func (c *Submission) SubmitComparison(ctx *fiber.Ctx) error {
	ctx.Locals(constant.ShouldLogRequestBodyKey, true)

	var request types.ComparisonSubmissionRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	participantId, err := c.SubmissionService.PreprocessAndQueueComparisonSubmission(ctx, &request)
	if err != nil {
		return err
	}

	flog.InfoFrom(ctx).
		Str("taskId", request.TaskID).
		Str("participantId", participantId).
		Msg("queued comparison submission")

	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"participantId": participantId,
	})
}

// @Summary      Submit a Single-Video Evaluation
// @Description  Accepts a single-video rating submission (draft or final) and queues it for persistence.
// @Tags         Submission
// @Accept       json
// @Produce      json
// @Param        submission  body  types.SingleVideoSubmissionRequest  true  "Submission"
// @Success      202
// @Failure      400  {object}  owerr.OwlError  "Invalid or missing submission fields"
// @Router       /api/v1/submissions/single-video [POST]
func (c *Submission) SubmitSingleVideo(ctx *fiber.Ctx) error {
	ctx.Locals(constant.ShouldLogRequestBodyKey, true)

	var request types.SingleVideoSubmissionRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	participantId, err := c.SubmissionService.PreprocessAndQueueSingleVideoSubmission(ctx, &request)
	if err != nil {
		return err
	}

	flog.InfoFrom(ctx).
		Str("taskId", request.TaskID).
		Str("participantId", participantId).
		Msg("queued single-video submission")

	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"participantId": participantId,
	})
}
