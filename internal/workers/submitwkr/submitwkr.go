package submitwkr

import (
	"context"
	"encoding/json"
	"runtime"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gopkg.in/guregu/null.v3"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/model/types"
	"github.com/owl-eval/backend/internal/pkg/observability"
	"github.com/owl-eval/backend/internal/pkg/owerr"
	"github.com/owl-eval/backend/internal/pkg/partid"
	"github.com/owl-eval/backend/internal/repo"
)

type WorkerDeps struct {
	fx.In

	NatsJS          nats.JetStreamContext
	TaskRepo        *repo.Task
	SubmissionRepo  *repo.Submission
	ParticipantRepo *repo.Participant
}

type Worker struct {
	// count is the number of spawned consumers
	count int

	WorkerDeps
}

func Start(deps WorkerDeps) {
	ch := make(chan error)
	// handle & dump errors from workers
	go func() {
		for {
			err := <-ch
			if err != nil {
				log.Error().Err(err).Msg("submission worker error")
			}
		}
	}()

	submitWorkers := &Worker{
		count:      0,
		WorkerDeps: deps,
	}
	for i := 0; i < runtime.NumCPU(); i++ {
		go func() {
			err := submitWorkers.Consumer(context.Background(), ch)
			if err != nil {
				ch <- err
			}
		}()
		submitWorkers.count += 1
	}
}

func (w *Worker) Consumer(ctx context.Context, ch chan error) error {
	msgChan := make(chan *nats.Msg, 16)

	_, err := w.NatsJS.ChanQueueSubscribe("SUBMISSION.*", "owl-submissions", msgChan, nats.AckWait(time.Second*10), nats.MaxAckPending(128))
	if err != nil {
		log.Err(err).Msg("failed to subscribe to SUBMISSION.*")
		return err
	}

	for {
		select {
		case msg := <-msgChan:
			func() {
				taskCtx, cancelTask := context.WithDeadline(ctx, time.Now().Add(time.Second*10))
				inprogressInformer := time.AfterFunc(time.Second*5, func() {
					err = msg.InProgress()
					if err != nil {
						log.Error().Err(err).Msg("failed to set msg InProgress")
					}
				})
				defer func() {
					inprogressInformer.Stop()
					cancelTask()
					if err := msg.Ack(); err != nil {
						log.Error().Err(err).Msg("failed to ack")
					}
				}()

				start := time.Now()
				if meta, err := msg.Metadata(); err == nil {
					observability.SubmissionConsumeMessagingLatency.
						WithLabelValues().
						Observe(start.Sub(meta.Timestamp).Seconds())
				}

				submissionTask := &types.SubmissionTask{}
				if err := json.Unmarshal(msg.Data, submissionTask); err != nil {
					ch <- err
					return
				}

				err = w.consumeSubmission(taskCtx, submissionTask)
				if err != nil {
					log.Error().
						Err(err).
						Str("taskId", submissionTask.TaskID).
						Str("submissionTask", spew.Sdump(submissionTask)).
						Msg("failed to consume submission task")
					ch <- err
					return
				}

				observability.SubmissionConsumeDuration.
					WithLabelValues().
					Observe(time.Since(start).Seconds())

				log.Info().
					Str("taskId", submissionTask.TaskID).
					Str("participantId", submissionTask.ParticipantID).
					Msg("submission task processed successfully")
			}()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Worker) consumeSubmission(ctx context.Context, task *types.SubmissionTask) error {
	switch task.Mode {
	case constant.EvaluationModeComparison:
		return w.consumeComparison(ctx, task)
	case constant.EvaluationModeSingleVideo:
		return w.consumeSingleVideo(ctx, task)
	default:
		return errors.Errorf("unknown submission mode: %s", task.Mode)
	}
}

func (w *Worker) consumeComparison(ctx context.Context, task *types.SubmissionTask) error {
	if task.Comparison == nil {
		return errors.New("comparison submission task carries no payload")
	}

	comparisonTask, err := w.TaskRepo.GetComparisonTaskById(ctx, task.TaskID)
	if err != nil {
		return errors.Wrap(err, "failed to resolve comparison task")
	}
	if err := w.ensureParticipant(ctx, task.ParticipantID, comparisonTask.ExperimentID); err != nil {
		return err
	}

	req := task.Comparison
	return w.SubmissionRepo.SaveComparisonSubmission(ctx, &model.ComparisonSubmission{
		ID:                    newSubmissionId(),
		TaskID:                task.TaskID,
		ParticipantID:         task.ParticipantID,
		ChosenModel:           null.NewString(req.ChosenModel, req.ChosenModel != ""),
		DetailedRatings:       req.DetailedRatings,
		Status:                submissionStatus(req.Draft),
		CompletionTimeSeconds: null.NewFloat(req.CompletionTimeSeconds, req.CompletionTimeSeconds > 0),
		CreatedAt:             taskCreatedAt(task),
	})
}

func (w *Worker) consumeSingleVideo(ctx context.Context, task *types.SubmissionTask) error {
	if task.SingleVideo == nil {
		return errors.New("single video submission task carries no payload")
	}

	singleVideoTask, err := w.TaskRepo.GetSingleVideoTaskById(ctx, task.TaskID)
	if err != nil {
		return errors.Wrap(err, "failed to resolve single video task")
	}
	if err := w.ensureParticipant(ctx, task.ParticipantID, singleVideoTask.ExperimentID); err != nil {
		return err
	}

	req := task.SingleVideo
	return w.SubmissionRepo.SaveSingleVideoSubmission(ctx, &model.SingleVideoSubmission{
		ID:                    newSubmissionId(),
		TaskID:                task.TaskID,
		ParticipantID:         task.ParticipantID,
		DimensionScores:       req.DimensionScores,
		Status:                submissionStatus(req.Draft),
		CompletionTimeSeconds: null.NewFloat(req.CompletionTimeSeconds, req.CompletionTimeSeconds > 0),
		CreatedAt:             taskCreatedAt(task),
	})
}

// ensureParticipant registers anonymous sessions minted at submit time that do
// not yet have a participant row.
func (w *Worker) ensureParticipant(ctx context.Context, participantId, experimentId string) error {
	_, err := w.ParticipantRepo.GetParticipantById(ctx, participantId)
	if err == nil {
		return nil
	}
	if !errors.Is(err, owerr.ErrNotFound) {
		return errors.Wrap(err, "failed to resolve participant")
	}
	if !partid.IsAnonymous(participantId) {
		return errors.Errorf("unknown non-anonymous participant: %s", participantId)
	}

	_, err = w.ParticipantRepo.CreateParticipant(ctx, &types.ParticipantCreateRequest{
		ExperimentID:       experimentId,
		PanelParticipantID: participantId,
	})
	return errors.Wrap(err, "failed to register anonymous participant")
}

func newSubmissionId() string {
	return strings.ToLower(ulid.Make().String())
}

func submissionStatus(draft bool) string {
	if draft {
		return constant.SubmissionStatusDraft
	}
	return constant.SubmissionStatusCompleted
}

func taskCreatedAt(task *types.SubmissionTask) time.Time {
	// CreatedAt is in microseconds
	if task.CreatedAt != 0 {
		return time.UnixMicro(task.CreatedAt)
	}
	return time.Now()
}
