package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"
)

// ProjectListResult is the service-level DTO for paginated projects.
type ProjectListResult struct {
	Items []model.Project `json:"data"`
	Total int             `json:"total"`
}

// ProjectService defines the use cases for saved humanization projects.
type ProjectService interface {
	// Save persists an original/humanized text pair as a project owned by
	// the user. The record creation and the credit debit are one logical
	// unit: neither happens without the other.
	Save(ctx context.Context, userID, title, original, humanized string) (*model.Project, int, error)

	// List returns the user's projects, newest first.
	List(ctx context.Context, userID string, limit, offset int) (*ProjectListResult, error)

	// Delete removes a project owned by the user.
	Delete(ctx context.Context, userID, id string) error
}

type projectService struct {
	repo repository.ProjectRepository
	cost int
}

// NewProjectService constructs a ProjectService charging cost credits per save.
func NewProjectService(repo repository.ProjectRepository, cost int) ProjectService {
	return &projectService{repo: repo, cost: cost}
}

func (s *projectService) Save(ctx context.Context, userID, title, original, humanized string) (*model.Project, int, error) {
	if strings.TrimSpace(title) == "" {
		// Derive a title from the first few words, as the editor does.
		words := strings.Fields(original)
		if len(words) > 3 {
			words = words[:3]
		}
		title = strings.Join(words, " ") + "..."
	}
	if original == "" || humanized == "" {
		return nil, 0, ErrTextRequired
	}

	now := time.Now().UTC()
	p := &model.Project{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         title,
		OriginalText:  original,
		HumanizedText: humanized,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	stored, balance, err := s.repo.CreateWithDebit(ctx, p, s.cost)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return nil, 0, ErrInsufficientCredits
		}
		return nil, 0, fmt.Errorf("save project: %w", err)
	}
	return stored, balance, nil
}

func (s *projectService) List(ctx context.Context, userID string, limit, offset int) (*ProjectListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ProjectListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *projectService) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrNotFound
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if p.UserID != userID {
		// Scoped to the owning user; a foreign id looks like a missing one.
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id, userID)
}
