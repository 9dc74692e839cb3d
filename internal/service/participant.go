package service

import (
	"context"

	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/model/types"
	"github.com/owl-eval/backend/internal/repo"
)

type Participant struct {
	ParticipantRepo *repo.Participant
}

func NewParticipant(participantRepo *repo.Participant) *Participant {
	return &Participant{
		ParticipantRepo: participantRepo,
	}
}

func (s *Participant) GetParticipantById(ctx context.Context, participantId string) (*model.Participant, error) {
	return s.ParticipantRepo.GetParticipantById(ctx, participantId)
}

func (s *Participant) CreateParticipant(ctx context.Context, req *types.ParticipantCreateRequest) (*model.Participant, error) {
	return s.ParticipantRepo.CreateParticipant(ctx, req)
}

func (s *Participant) GetParticipantsByExperimentId(ctx context.Context, experimentId string) ([]*model.Participant, error) {
	return s.ParticipantRepo.GetParticipantsByExperimentIds(ctx, []string{experimentId})
}

func (s *Participant) UpdateParticipantStatus(ctx context.Context, participantId, status string) error {
	return s.ParticipantRepo.UpdateParticipantStatus(ctx, participantId, status)
}
