package services

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"tripiki/internal/aggregates"
	"tripiki/internal/models/response_models"
	"tripiki/internal/repositories"
	"tripiki/pkg/utils"
)

// JourneyServiceInterface is the operation surface for collaborative journey
// editing. Every mutation is atomic with respect to the whole aggregate: the
// service loads a snapshot, applies the pure transition, and commits it with a
// conditional save, retrying the whole cycle when another participant won the
// version race.
type JourneyServiceInterface interface {
	CreateJourney(ctx context.Context, name string, start, end int64, themePath string, tags []aggregates.TagSpec, creatorID string) (string, error)
	AddParticipant(ctx context.Context, journeyID, userID string) error
	RemoveParticipant(ctx context.Context, journeyID, userID string) error
	SetTags(ctx context.Context, journeyID string, tags []aggregates.TagSpec, actingUserID string) error
	AddPikmi(ctx context.Context, journeyID string, place aggregates.PlaceSpec, actingUserID string) (string, error)
	LikePikmi(ctx context.Context, journeyID, pikmiID, userID string) error
	UnlikePikmi(ctx context.Context, journeyID, pikmiID, userID string) error
	ScheduleDay(ctx context.Context, journeyID string, dayIndex int, places []aggregates.PlaceSpec, actingUserID string) ([]string, error)
	GetJourney(ctx context.Context, journeyID string) (*response_models.JourneyDetailResponse, error)
	GetListOfJourneyByUserId(ctx context.Context, page int, pageSize int, userID string) ([]response_models.JourneyResponse, error)
}

// saveAttempts bounds the load/apply/save cycles per request. Contention past
// the budget surfaces as ErrConflict for the caller to retry whole.
const saveAttempts = 5

type JourneyService struct {
	store       repositories.JourneyStore
	accountRepo repositories.AccountRepository
	logger      *zap.SugaredLogger
}

func NewJourneyService(store repositories.JourneyStore, accountRepo repositories.AccountRepository, logger *zap.SugaredLogger) JourneyServiceInterface {
	return &JourneyService{
		store:       store,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func casBackoff() retry.Backoff {
	b := retry.NewFibonacci(10 * time.Millisecond)
	b = retry.WithJitter(5*time.Millisecond, b)
	return retry.WithMaxRetries(saveAttempts-1, b)
}

// mutate runs one load / transition / conditional-save cycle, retrying with
// jittered backoff while another writer keeps winning the version check or the
// store is briefly unreachable. Validation failures abort on the first pass.
func (j *JourneyService) mutate(ctx context.Context, journeyID string, apply func(aggregates.Journey) (aggregates.Journey, error)) error {
	attempt := 0
	err := retry.Do(ctx, casBackoff(), func(ctx context.Context) error {
		attempt++
		journey, version, err := j.store.Load(ctx, journeyID)
		if err != nil {
			if errors.Is(err, aggregates.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}

		next, err := apply(journey)
		if err != nil {
			return err
		}

		if err := j.store.Save(ctx, next, version); err != nil {
			if errors.Is(err, aggregates.ErrConflict) || errors.Is(err, aggregates.ErrUnavailable) {
				j.logger.Debugw("journey save lost the version race, retrying",
					"journey_id", journeyID, "attempt", attempt)
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})

	if err != nil && attempt >= saveAttempts && errors.Is(err, aggregates.ErrConflict) {
		j.logger.Warnw("journey mutation gave up after sustained contention",
			"journey_id", journeyID, "attempts", attempt)
		return aggregates.ErrConflict
	}
	return err
}

func (j *JourneyService) CreateJourney(ctx context.Context, name string, start, end int64, themePath string, tags []aggregates.TagSpec, creatorID string) (string, error) {
	count, err := j.store.CountByParticipant(ctx, creatorID)
	if err != nil {
		return "", err
	}
	if err := aggregates.ValidateUserQuota(count); err != nil {
		return "", err
	}

	journey, err := aggregates.NewJourney(name, start, end, themePath, tags, creatorID)
	if err != nil {
		return "", err
	}

	err = retry.Do(ctx, casBackoff(), func(ctx context.Context) error {
		if err := j.store.Create(ctx, journey); err != nil {
			if errors.Is(err, aggregates.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	j.logger.Infow("journey created", "journey_id", journey.ID, "creator", creatorID, "days", len(journey.Pikis))
	return journey.ID, nil
}

func (j *JourneyService) AddParticipant(ctx context.Context, journeyID, userID string) error {
	return j.mutate(ctx, journeyID, func(journey aggregates.Journey) (aggregates.Journey, error) {
		return journey.AddParticipant(userID)
	})
}

func (j *JourneyService) RemoveParticipant(ctx context.Context, journeyID, userID string) error {
	return j.mutate(ctx, journeyID, func(journey aggregates.Journey) (aggregates.Journey, error) {
		return journey.RemoveParticipant(userID)
	})
}

func (j *JourneyService) SetTags(ctx context.Context, journeyID string, tags []aggregates.TagSpec, actingUserID string) error {
	return j.mutate(ctx, journeyID, func(journey aggregates.Journey) (aggregates.Journey, error) {
		return journey.SetTags(tags, actingUserID)
	})
}

func (j *JourneyService) AddPikmi(ctx context.Context, journeyID string, place aggregates.PlaceSpec, actingUserID string) (string, error) {
	var pikmiID string
	err := j.mutate(ctx, journeyID, func(journey aggregates.Journey) (aggregates.Journey, error) {
		next, id, err := journey.AddPikmi(place, actingUserID)
		if err != nil {
			return aggregates.Journey{}, err
		}
		pikmiID = id
		return next, nil
	})
	if err != nil {
		return "", err
	}
	return pikmiID, nil
}

func (j *JourneyService) LikePikmi(ctx context.Context, journeyID, pikmiID, userID string) error {
	return j.mutate(ctx, journeyID, func(journey aggregates.Journey) (aggregates.Journey, error) {
		return journey.LikePikmi(pikmiID, userID)
	})
}

func (j *JourneyService) UnlikePikmi(ctx context.Context, journeyID, pikmiID, userID string) error {
	return j.mutate(ctx, journeyID, func(journey aggregates.Journey) (aggregates.Journey, error) {
		return journey.UnlikePikmi(pikmiID, userID)
	})
}

func (j *JourneyService) ScheduleDay(ctx context.Context, journeyID string, dayIndex int, places []aggregates.PlaceSpec, actingUserID string) ([]string, error) {
	var pikiIDs []string
	err := j.mutate(ctx, journeyID, func(journey aggregates.Journey) (aggregates.Journey, error) {
		next, ids, err := journey.ScheduleDay(dayIndex, places, actingUserID)
		if err != nil {
			return aggregates.Journey{}, err
		}
		pikiIDs = ids
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return pikiIDs, nil
}

func (j *JourneyService) GetJourney(ctx context.Context, journeyID string) (*response_models.JourneyDetailResponse, error) {
	journey, _, err := j.store.Load(ctx, journeyID)
	if err != nil {
		return nil, err
	}
	return j.buildDetailResponse(ctx, journey), nil
}

func (j *JourneyService) GetListOfJourneyByUserId(ctx context.Context, page int, pageSize int, userID string) ([]response_models.JourneyResponse, error) {
	journeys, err := j.store.ListByParticipant(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	out := make([]response_models.JourneyResponse, 0, len(journeys))
	for _, journey := range journeys {
		out = append(out, response_models.JourneyResponse{
			ID:        journey.ID,
			Name:      journey.Name,
			StartDate: utils.FormatRFC3339KST(utils.FromUnixSecondsKST(journey.StartDate)),
			EndDate:   utils.FormatRFC3339KST(utils.FromUnixSecondsKST(journey.EndDate)),
			ThemePath: journey.ThemePath,
		})
	}
	return out, nil
}

// buildDetailResponse materializes participant display names through the
// account directory. A participant with no account row keeps the bare id.
func (j *JourneyService) buildDetailResponse(ctx context.Context, journey aggregates.Journey) *response_models.JourneyDetailResponse {
	names := map[string]string{}
	if accounts, err := j.accountRepo.FindByIds(ctx, journey.Participants); err == nil {
		for _, account := range accounts {
			names[account.ID.String()] = account.Name
		}
	} else {
		j.logger.Warnw("could not resolve participant names", "journey_id", journey.ID, "error", err)
	}

	participants := make([]response_models.ParticipantResponse, 0, len(journey.Participants))
	for _, userID := range journey.Participants {
		name, ok := names[userID]
		if !ok {
			name = userID
		}
		participants = append(participants, response_models.ParticipantResponse{ID: userID, Name: name})
	}

	tags := make([]response_models.TagResponse, 0, len(journey.Tags))
	for _, tag := range journey.Tags {
		tags = append(tags, response_models.TagResponse{
			Topic:       tag.Topic,
			Orientation: string(tag.Orientation),
			Voters:      tag.Voters,
		})
	}

	pikmis := make([]response_models.PikmiResponse, 0, len(journey.Pikmis))
	for _, pikmi := range journey.Pikmis {
		pikmis = append(pikmis, response_models.PikmiResponse{
			ID:        pikmi.ID,
			Name:      pikmi.Name,
			Address:   pikmi.Address,
			Category:  string(pikmi.Category),
			LikedBy:   pikmi.LikedBy,
			Longitude: pikmi.Longitude,
			Latitude:  pikmi.Latitude,
			Link:      pikmi.Link,
		})
	}

	pikis := make([][]response_models.PikiResponse, len(journey.Pikis))
	for i, day := range journey.Pikis {
		bucket := make([]response_models.PikiResponse, 0, len(day))
		for _, piki := range day {
			bucket = append(bucket, response_models.PikiResponse{
				ID:        piki.ID,
				Name:      piki.Name,
				Address:   piki.Address,
				Category:  string(piki.Category),
				Longitude: piki.Longitude,
				Latitude:  piki.Latitude,
				Link:      piki.Link,
			})
		}
		pikis[i] = bucket
	}

	return &response_models.JourneyDetailResponse{
		ID:           journey.ID,
		Name:         journey.Name,
		StartDate:    utils.FormatRFC3339KST(utils.FromUnixSecondsKST(journey.StartDate)),
		EndDate:      utils.FormatRFC3339KST(utils.FromUnixSecondsKST(journey.EndDate)),
		ThemePath:    journey.ThemePath,
		Participants: participants,
		Tags:         tags,
		Pikmis:       pikmis,
		Pikis:        pikis,
	}
}
