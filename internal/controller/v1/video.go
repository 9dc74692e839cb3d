package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/owl-eval/backend/internal/server/svr"
	"github.com/owl-eval/backend/internal/service"
	"github.com/owl-eval/backend/internal/util/rekuest"
)

type Video struct {
	fx.In

	VideoService *service.Video
}

func RegisterVideo(v1 *svr.V1, c Video) {
	v1.Get("/videos", c.GetVideos)
	v1.Get("/videos/:videoId", c.GetVideoById)
}

// @Summary      Get All Videos
// @Tags         Video
// @Produce      json
// @Success      200  {array}  model.Video
// @Router       /api/v1/videos [GET]
func (c *Video) GetVideos(ctx *fiber.Ctx) error {
	modelName := ctx.Query("model")
	if modelName != "" {
		videos, err := c.VideoService.GetVideosByModelName(ctx.UserContext(), modelName)
		if err != nil {
			return err
		}
		return ctx.JSON(videos)
	}

	videos, err := c.VideoService.GetVideos(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(videos)
}

// @Summary      Get a Video by ID
// @Tags         Video
// @Produce      json
// @Param        videoId  path      string  true  "Video ID"
// @Success      200      {object}  model.Video
// @Failure      404      {object}  owerr.OwlError
// @Router       /api/v1/videos/{videoId} [GET]
func (c *Video) GetVideoById(ctx *fiber.Ctx) error {
	videoId := ctx.Params("videoId")
	if err := rekuest.ValidVar(ctx, videoId, "required,max=64"); err != nil {
		return err
	}

	video, err := c.VideoService.GetVideoById(ctx.UserContext(), videoId)
	if err != nil {
		return err
	}
	return ctx.JSON(video)
}
