package service

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/model/types"
	"github.com/owl-eval/backend/internal/pkg/flog"
	"github.com/owl-eval/backend/internal/pkg/owerr"
	"github.com/owl-eval/backend/internal/pkg/partid"
	"github.com/owl-eval/backend/internal/repo"
)

// Submission accepts evaluation submissions over HTTP and queues them onto
// JetStream; the submission worker owns the actual persistence.
type Submission struct {
	NatsJS          nats.JetStreamContext
	TaskService     *Task
	ParticipantRepo *repo.Participant
}

func NewSubmission(natsJs nats.JetStreamContext, taskService *Task, participantRepo *repo.Participant) *Submission {
	return &Submission{
		NatsJS:          natsJs,
		TaskService:     taskService,
		ParticipantRepo: participantRepo,
	}
}

// PreprocessAndQueueComparisonSubmission validates the task reference,
// resolves or mints the participant session, and queues the submission.
// Returns the participant ID the submission was attributed to.
func (s *Submission) PreprocessAndQueueComparisonSubmission(ctx *fiber.Ctx, req *types.ComparisonSubmissionRequest) (string, error) {
	if _, err := s.TaskService.GetComparisonTaskById(ctx.UserContext(), req.TaskID); err != nil {
		if errors.Is(err, owerr.ErrNotFound) {
			return "", owerr.ErrInvalidReq.Msg("unknown task: %s", req.TaskID)
		}
		return "", err
	}

	participantId, err := s.resolveParticipant(ctx)
	if err != nil {
		return "", err
	}

	task := &types.SubmissionTask{
		TaskID:        req.TaskID,
		ParticipantID: participantId,
		RequestID:     requestIdOf(ctx),
		Mode:          constant.EvaluationModeComparison,
		IP:            ctx.IP(),
		Comparison:    req,
		CreatedAt:     time.Now().UnixMicro(),
	}

	return participantId, s.publish(ctx, "SUBMISSION.COMPARISON", task)
}

func (s *Submission) PreprocessAndQueueSingleVideoSubmission(ctx *fiber.Ctx, req *types.SingleVideoSubmissionRequest) (string, error) {
	if _, err := s.TaskService.GetSingleVideoTaskById(ctx.UserContext(), req.TaskID); err != nil {
		if errors.Is(err, owerr.ErrNotFound) {
			return "", owerr.ErrInvalidReq.Msg("unknown task: %s", req.TaskID)
		}
		return "", err
	}

	participantId, err := s.resolveParticipant(ctx)
	if err != nil {
		return "", err
	}

	task := &types.SubmissionTask{
		TaskID:        req.TaskID,
		ParticipantID: participantId,
		RequestID:     requestIdOf(ctx),
		Mode:          constant.EvaluationModeSingleVideo,
		IP:            ctx.IP(),
		SingleVideo:   req,
		CreatedAt:     time.Now().UnixMicro(),
	}

	return participantId, s.publish(ctx, "SUBMISSION.SINGLE_VIDEO", task)
}

// resolveParticipant extracts the participant session from the request, or
// mints an anonymous one and injects it into the response.
func (s *Submission) resolveParticipant(ctx *fiber.Ctx) (string, error) {
	participantId := partid.Extract(ctx)
	if participantId != "" {
		if _, err := s.ParticipantRepo.GetParticipantById(ctx.UserContext(), participantId); err == nil {
			return participantId, nil
		} else if !errors.Is(err, owerr.ErrNotFound) {
			return "", err
		}
		// stale session cookie: fall through and mint a fresh one
		flog.WarnFrom(ctx).
			Str("participantId", participantId).
			Msg("submission referenced an unknown participant; reissuing session")
	}

	participantId = partid.NewAnonymous()
	partid.Inject(ctx, participantId)
	return participantId, nil
}

func (s *Submission) publish(ctx *fiber.Ctx, subject string, task *types.SubmissionTask) error {
	taskJson, err := json.Marshal(task)
	if err != nil {
		return err
	}

	// keyed by request so broker-level retries of one request do not enqueue twice
	msgId := constant.SubmissionDedupPrefix + task.RequestID
	if task.RequestID == "" {
		msgId = constant.SubmissionDedupPrefix + task.TaskID + constant.CacheSep + task.ParticipantID + constant.CacheSep + fmt.Sprint(task.CreatedAt)
	}
	pub, err := s.NatsJS.PublishAsync(subject, taskJson, nats.MsgId(msgId))
	if err != nil {
		return err
	}

	select {
	case err := <-pub.Err():
		return err
	case <-pub.Ok():
		return nil
	case <-ctx.Context().Done():
		return ctx.Context().Err()
	case <-time.After(time.Millisecond * 500):
		return fmt.Errorf("timeout waiting for NATS response")
	}
}

func requestIdOf(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals(constant.ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}
