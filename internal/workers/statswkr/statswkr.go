package statswkr

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/owl-eval/backend/internal/app/appconfig"
	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/service"
)

// statswkr periodically recomputes the unfiltered performance reports so that
// dashboard reads stay warm instead of paying the calculation on a cache miss.

type WorkerDeps struct {
	fx.In

	PerformanceService *service.Performance
	ExperimentService  *service.Experiment
}

type Worker struct {
	// count counts batches the worker has completed so far
	count int

	// sep describes the separation time in-between different jobs
	sep time.Duration

	// interval describes the interval in-between different batches of job running
	interval time.Duration

	// timeout bounds a single batch
	timeout time.Duration

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Msg("stats worker is disabled")
		return
	}
	(&Worker{
		sep:        conf.WorkerSeparation,
		interval:   conf.WorkerInterval,
		timeout:    conf.WorkerTimeout,
		WorkerDeps: deps,
	}).do()
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			log.Info().
				Int("count", w.count).
				Msg("stats worker batch started")

			w.batch(ctx)

			log.Info().Int("count", w.count).Msg("stats worker batch finished")

			w.count++
			time.Sleep(w.interval)
		}
	}()

	return cancel
}

func (w *Worker) batch(ctx context.Context) {
	batchCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	// warm the default (global, unfiltered) report first: it is the query
	// every dashboard lands on
	err := observeCalcDuration("PerformanceService", func() error {
		_, err := w.PerformanceService.GetPerformanceRecords(batchCtx, &model.PerformanceQueryContext{})
		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("stats worker failed to warm global performance report")
	}
	time.Sleep(w.sep)

	experiments, err := w.ExperimentService.GetExperiments(batchCtx)
	if err != nil {
		log.Error().Err(err).Msg("stats worker failed to list experiments")
		return
	}

	for _, experiment := range experiments {
		if experiment.Archived {
			continue
		}
		experimentId := experiment.ID
		log.Info().Str("experimentId", experimentId).Msg("stats worker calculating")
		err := observeCalcDuration("PerformanceService", func() error {
			return w.PerformanceService.RefreshExperimentPerformance(batchCtx, experimentId)
		})
		if err != nil {
			log.Error().Err(err).Str("experimentId", experimentId).Msg("stats worker failed to refresh experiment")
			continue
		}
		log.Debug().Str("experimentId", experimentId).Msg("stats worker finished")
		time.Sleep(w.sep)
	}
}

func (w *Worker) Count() int {
	return w.count
}
