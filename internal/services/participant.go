package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/c21matthewm/mound-hounds-pickem/internal/errors"
	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
)

// ParticipantService handles participant profile business logic
type ParticipantService struct {
	log  logger.Logger
	repo repository.ProfileRepository
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(log logger.Logger, repo repository.ProfileRepository) *ParticipantService {
	return &ParticipantService{log: log, repo: repo}
}

// ListParticipants returns all registered participants with completed profiles
func (s *ParticipantService) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	return s.repo.ListParticipants(ctx)
}

// GetParticipant returns one participant by profile ID
func (s *ParticipantService) GetParticipant(ctx context.Context, profileID string) (*models.Participant, error) {
	p, err := s.repo.GetParticipant(ctx, profileID)
	if err == repository.ErrNotFound {
		return nil, ErrParticipantNotFound
	}
	return p, err
}

// Register creates a new participant profile with a fresh ID
func (s *ParticipantService) Register(ctx context.Context, teamName, role string) (*models.Participant, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, errors.Validation("team name cannot be empty")
	}
	if role == "" {
		role = "participant"
	}
	if role != "participant" && role != "admin" {
		return nil, errors.Validationf("invalid role: %s", role)
	}

	p := models.Participant{
		ProfileID:       uuid.NewString(),
		TeamName:        teamName,
		Role:            role,
		ProfileComplete: true,
	}
	if err := s.repo.CreateParticipant(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("Registered participant", "profile_id", p.ProfileID, "team_name", p.TeamName)
	return &p, nil
}

// UpdateTeamName renames a participant's team
func (s *ParticipantService) UpdateTeamName(ctx context.Context, profileID, teamName string) error {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return errors.Validation("team name cannot be empty")
	}

	p, err := s.GetParticipant(ctx, profileID)
	if err != nil {
		return err
	}
	p.TeamName = teamName
	return s.repo.UpdateParticipant(ctx, *p)
}
