package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/model/types"
	"github.com/owl-eval/backend/internal/pkg/partid"
	"github.com/owl-eval/backend/internal/repo/selector"
)

type Participant struct {
	db  *bun.DB
	sel selector.S[model.Participant]
}

func NewParticipant(db *bun.DB) *Participant {
	return &Participant{
		db:  db,
		sel: selector.New[model.Participant](db),
	}
}

func (r *Participant) GetParticipantById(ctx context.Context, participantId string) (*model.Participant, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Demographics").Where("p.id = ?", participantId)
	})
}

// GetParticipantsByExperimentIds returns every participant of the given
// experiments with their demographics preloaded, regardless of status. Status
// and demographic gating happen in the service layer.
func (r *Participant) GetParticipantsByExperimentIds(ctx context.Context, experimentIds []string) ([]*model.Participant, error) {
	if len(experimentIds) == 0 {
		return []*model.Participant{}, nil
	}
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Demographics").Where("p.experiment_id IN (?)", bun.In(experimentIds))
	})
}

// CreateParticipant inserts the participant and, when demographic fields were
// supplied, its demographics row in one transaction.
func (r *Participant) CreateParticipant(ctx context.Context, req *types.ParticipantCreateRequest) (*model.Participant, error) {
	id := req.PanelParticipantID
	if id == "" {
		id = partid.NewAnonymous()
	}

	participant := &model.Participant{
		ID:           id,
		ExperimentID: req.ExperimentID,
		Status:       constant.ParticipantStatusActive,
		IsAnonymous:  partid.IsAnonymous(id),
		CreatedAt:    time.Now(),
	}

	if req.Age != nil || req.Sex != "" || req.CountryOfResidence != "" {
		participant.Demographics = &model.ParticipantDemographics{
			ParticipantID:      id,
			Sex:                null.NewString(req.Sex, req.Sex != ""),
			CountryOfResidence: null.NewString(req.CountryOfResidence, req.CountryOfResidence != ""),
		}
		if req.Age != nil {
			participant.Demographics.Age = null.IntFrom(int64(*req.Age))
		}
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().
			Model(participant).
			On("CONFLICT (id) DO UPDATE").
			Set("status = EXCLUDED.status").
			Exec(ctx); err != nil {
			return err
		}
		if participant.Demographics != nil {
			if _, err := tx.NewInsert().
				Model(participant.Demographics).
				On("CONFLICT (participant_id) DO UPDATE").
				Set("age = EXCLUDED.age, sex = EXCLUDED.sex, country_of_residence = EXCLUDED.country_of_residence").
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return participant, nil
}

func (r *Participant) UpdateParticipantStatus(ctx context.Context, participantId, status string) error {
	_, err := r.db.NewUpdate().
		Model((*model.Participant)(nil)).
		Set("status = ?", status).
		Where("id = ?", participantId).
		Exec(ctx)
	return err
}
