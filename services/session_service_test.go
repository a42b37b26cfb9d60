package services

import (
	"context"
	"errors"
	"testing"

	"github.com/opencourt/courtplay/models"
	"github.com/opencourt/courtplay/repositories"
)

// Validation happens before any repository call, so a zero-value service is
// enough to exercise every rejection path.
func TestCreateSessionValidation(t *testing.T) {
	valid := CreateSessionInput{
		Name:       "Tuesday Night",
		CourtCount: 3,
		TeamSize:   2,
		Policy:     models.PolicyKingOfCourt,
	}

	tests := []struct {
		name    string
		mutate  func(*CreateSessionInput)
		wantErr error
	}{
		{
			name:    "blank name",
			mutate:  func(in *CreateSessionInput) { in.Name = "  " },
			wantErr: ErrSessionNameRequired,
		},
		{
			name:    "zero courts",
			mutate:  func(in *CreateSessionInput) { in.CourtCount = 0 },
			wantErr: ErrSessionInvalidCourts,
		},
		{
			name:    "negative team size",
			mutate:  func(in *CreateSessionInput) { in.TeamSize = -1 },
			wantErr: ErrSessionInvalidTeamSize,
		},
		{
			name:    "unknown policy",
			mutate:  func(in *CreateSessionInput) { in.Policy = "ladder" },
			wantErr: ErrSessionInvalidPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &sessionService{}
			input := valid
			tt.mutate(&input)

			_, err := svc.CreateSession(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

type fakeSessionRepo struct {
	session *models.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, s *models.Session) error { return nil }

func (f *fakeSessionRepo) GetByID(_ context.Context, id int) (*models.Session, error) {
	if f.session == nil || f.session.ID != id {
		return nil, repositories.ErrSessionNotFound
	}
	out := *f.session
	return &out, nil
}

func (f *fakeSessionRepo) List(_ context.Context) ([]*models.Session, error) { return nil, nil }

func (f *fakeSessionRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.SessionStatus) error {
	if f.session == nil || f.session.ID != id {
		return repositories.ErrSessionNotFound
	}
	f.session.Status = status
	return nil
}

func (f *fakeSessionRepo) UpdateCurrentRound(_ context.Context, _ repositories.SQLExecutor, id, round int) error {
	if f.session == nil || f.session.ID != id {
		return repositories.ErrSessionNotFound
	}
	f.session.CurrentRound = round
	return nil
}

func (f *fakeSessionRepo) CheckInPlayer(_ context.Context, _, _ int) error { return nil }

func (f *fakeSessionRepo) ListCheckedInPlayerIDs(_ context.Context, _ int) ([]int, error) {
	return nil, nil
}

func TestResetTeamsGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects open session", func(t *testing.T) {
		svc := &sessionService{sessionRepo: &fakeSessionRepo{session: &models.Session{
			ID:     1,
			Status: models.SessionStatusOpen,
		}}}

		if err := svc.ResetTeams(ctx, 1); !errors.Is(err, ErrSessionNotActive) {
			t.Fatalf("err = %v, want ErrSessionNotActive", err)
		}
	})

	t.Run("rejects once rounds exist", func(t *testing.T) {
		svc := &sessionService{sessionRepo: &fakeSessionRepo{session: &models.Session{
			ID:           1,
			Status:       models.SessionStatusActive,
			CurrentRound: 2,
		}}}

		if err := svc.ResetTeams(ctx, 1); !errors.Is(err, ErrSessionHasRounds) {
			t.Fatalf("err = %v, want ErrSessionHasRounds", err)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		svc := &sessionService{sessionRepo: &fakeSessionRepo{}}

		if err := svc.ResetTeams(ctx, 9); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("err = %v, want ErrSessionNotFound", err)
		}
	})
}
