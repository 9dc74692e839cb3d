package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/server/svr"
	"github.com/owl-eval/backend/internal/service"
	"github.com/owl-eval/backend/internal/util/rekuest"
)

type Experiment struct {
	fx.In

	ExperimentService *service.Experiment
	TaskService       *service.Task
}

func RegisterExperiment(v1 *svr.V1, c Experiment) {
	v1.Get("/experiments", c.GetExperiments)
	v1.Get("/experiments/:experimentId", c.GetExperimentById)
	v1.Get("/experiments/:experimentId/tasks", c.GetExperimentTasks)
}

// @Summary      Get All Experiments
// @Tags         Experiment
// @Produce      json
// @Param        mode   query    string  false  "Filter by evaluation mode"  Enums(comparison, single_video)
// @Param        group  query    string  false  "Filter by experiment group label"
// @Success      200    {array}  model.Experiment
// @Router       /api/v1/experiments [GET]
func (c *Experiment) GetExperiments(ctx *fiber.Ctx) error {
	mode := ctx.Query("mode")
	if mode != "" {
		if err := rekuest.ValidVar(ctx, mode, "evalmode"); err != nil {
			return err
		}
	}

	var experiments []*model.Experiment
	var err error
	if group := ctx.Query("group"); group != "" {
		if err := rekuest.ValidVar(ctx, group, "max=64"); err != nil {
			return err
		}
		experiments, err = c.ExperimentService.GetExperimentsByGroupLabel(ctx.UserContext(), group)
	} else {
		experiments, err = c.ExperimentService.GetExperiments(ctx.UserContext())
	}
	if err != nil {
		return err
	}
	if mode != "" {
		experiments = lo.Filter(experiments, func(e *model.Experiment, _ int) bool {
			return e.EvaluationMode == mode
		})
	}
	return ctx.JSON(experiments)
}

// @Summary      Get an Experiment by ID or Slug
// @Tags         Experiment
// @Produce      json
// @Param        experimentId  path      string  true  "Experiment ID or slug"
// @Success      200           {object}  model.Experiment
// @Failure      400           {object}  owerr.OwlError  "Experiment not found"
// @Router       /api/v1/experiments/{experimentId} [GET]
func (c *Experiment) GetExperimentById(ctx *fiber.Ctx) error {
	experimentId := ctx.Params("experimentId")

	experiment, err := c.ExperimentService.GetExperimentByIdOrSlug(ctx.UserContext(), experimentId)
	if err != nil {
		return err
	}
	return ctx.JSON(experiment)
}

// @Summary      Get the Tasks of an Experiment
// @Description  Returns the task queue the player has to walk through, shaped by the experiment's evaluation mode.
// @Tags         Experiment
// @Produce      json
// @Param        experimentId  path  string  true  "Experiment ID"
// @Success      200
// @Failure      400  {object}  owerr.OwlError  "Experiment not found"
// @Router       /api/v1/experiments/{experimentId}/tasks [GET]
func (c *Experiment) GetExperimentTasks(ctx *fiber.Ctx) error {
	experimentId := ctx.Params("experimentId")

	experiment, err := c.ExperimentService.GetExperimentByIdOrSlug(ctx.UserContext(), experimentId)
	if err != nil {
		return err
	}

	if experiment.EvaluationMode == constant.EvaluationModeSingleVideo {
		tasks, err := c.TaskService.GetSingleVideoTasksByExperimentId(ctx.UserContext(), experiment.ID)
		if err != nil {
			return err
		}
		return ctx.JSON(fiber.Map{
			"evaluationMode": experiment.EvaluationMode,
			"tasks":          tasks,
		})
	}

	tasks, err := c.TaskService.GetComparisonTasksByExperimentId(ctx.UserContext(), experiment.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"evaluationMode": experiment.EvaluationMode,
		"tasks":          tasks,
	})
}
