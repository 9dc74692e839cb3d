package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"gopkg.in/guregu/null.v3"

	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/model/cache"
	"github.com/owl-eval/backend/internal/model/types"
	"github.com/owl-eval/backend/internal/pkg/cachectrl"
	"github.com/owl-eval/backend/internal/server/svr"
	"github.com/owl-eval/backend/internal/service"
	"github.com/owl-eval/backend/internal/util/rekuest"
)

type Performance struct {
	fx.In

	PerformanceService *service.Performance
}

func RegisterPerformance(v1 *svr.V1, c Performance) {
	v1.Get("/performance", c.GetPerformance)
}

// @Summary      Get Model Performance Records
// @Description  Aggregates completed evaluations into per-model, per-dimension performance records. Demographic filters restrict which participants' evaluations count.
// @Tags         Performance
// @Produce      json
// @Param        experimentId     query     string  false  "Restrict to a single experiment; an unknown ID yields an empty array"
// @Param        experimentGroup  query     string  false  "Restrict to experiments sharing a group label"
// @Param        ageMin           query     int     false  "Inclusive minimum participant age"
// @Param        ageMax           query     int     false  "Inclusive maximum participant age"
// @Param        sex              query     string  false  "Exact match, or 'all'"  default(all)
// @Param        country          query     string  false  "Exact match, or 'all'"  default(all)
// @Param        includeAnonymous query     bool    false  "Count anonymous-session evaluations"
// @Param        includeArchived  query     bool    false  "Include archived experiments"
// @Success      200              {array}   model.PerformanceRecord
// @Failure      400              {object}  owerr.OwlError  "Invalid request parameters"
// @Router       /api/v1/performance [GET]
func (c *Performance) GetPerformance(ctx *fiber.Ctx) error {
	var request types.PerformanceRequest
	if err := rekuest.ValidQuery(ctx, &request); err != nil {
		return err
	}

	query := queryContextFromRequest(&request)
	records, err := c.PerformanceService.GetPerformanceRecords(ctx.UserContext(), query)
	if err != nil {
		return err
	}

	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get("[performanceRecords#query:"+query.Key()+"]", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptInCustom(ctx, lastModifiedTime, time.Minute*10)

	return ctx.JSON(records)
}

func queryContextFromRequest(request *types.PerformanceRequest) *model.PerformanceQueryContext {
	query := &model.PerformanceQueryContext{
		SelectedExperimentID: null.NewString(request.ExperimentID, request.ExperimentID != ""),
		ExperimentGroup:      null.NewString(request.ExperimentGroup, request.ExperimentGroup != ""),
		Sex:                  null.NewString(request.Sex, request.Sex != ""),
		Country:              null.NewString(request.Country, request.Country != ""),
		IncludeAnonymous:     request.IncludeAnonymous,
		IncludeArchived:      request.IncludeArchived,
	}
	if request.AgeMin != nil {
		query.AgeMin = null.IntFrom(int64(*request.AgeMin))
	}
	if request.AgeMax != nil {
		query.AgeMax = null.IntFrom(int64(*request.AgeMax))
	}
	return query
}
