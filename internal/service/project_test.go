package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"
	repoMocks "humanizerapi/internal/repository/mocks"
)

const projectCost = 1

func TestProjectService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("record and debit are one unit", func(t *testing.T) {
		repo := new(repoMocks.MockProjectRepository)
		svc := NewProjectService(repo, projectCost)

		repo.On("CreateWithDebit", ctx, mock.MatchedBy(func(p *model.Project) bool {
			return p.UserID == "user-1" &&
				p.Title == "My title" &&
				p.OriginalText == "the original text" &&
				p.HumanizedText == "the humanized text" &&
				p.ID != ""
		}), projectCost).Return(&model.Project{
			ID: "proj-1", UserID: "user-1", Title: "My title",
			OriginalText: "the original text", HumanizedText: "the humanized text",
		}, 99, nil)

		stored, balance, err := svc.Save(ctx, "user-1", "My title", "the original text", "the humanized text")

		require.NoError(t, err)
		assert.Equal(t, 99, balance)
		// Round-trip: the stored pair equals exactly what was passed in.
		assert.Equal(t, "the original text", stored.OriginalText)
		assert.Equal(t, "the humanized text", stored.HumanizedText)
		repo.AssertExpectations(t)
	})

	t.Run("insufficient credits creates nothing", func(t *testing.T) {
		repo := new(repoMocks.MockProjectRepository)
		svc := NewProjectService(repo, projectCost)

		repo.On("CreateWithDebit", ctx, mock.Anything, projectCost).
			Return(nil, 0, repository.ErrInsufficientCredits)

		_, _, err := svc.Save(ctx, "user-1", "t", "orig", "human")

		assert.ErrorIs(t, err, ErrInsufficientCredits)
	})

	t.Run("empty title derived from first words", func(t *testing.T) {
		repo := new(repoMocks.MockProjectRepository)
		svc := NewProjectService(repo, projectCost)

		repo.On("CreateWithDebit", ctx, mock.MatchedBy(func(p *model.Project) bool {
			return p.Title == "An essay about..."
		}), projectCost).Return(&model.Project{ID: "proj-1"}, 99, nil)

		_, _, err := svc.Save(ctx, "user-1", "  ", "An essay about modern art", "rewritten")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing texts rejected", func(t *testing.T) {
		repo := new(repoMocks.MockProjectRepository)
		svc := NewProjectService(repo, projectCost)

		_, _, err := svc.Save(ctx, "user-1", "t", "", "human")

		assert.ErrorIs(t, err, ErrTextRequired)
		repo.AssertNotCalled(t, "CreateWithDebit")
	})
}

func TestProjectService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockProjectRepository)
	svc := NewProjectService(repo, projectCost)

	repo.On("ListByUser", ctx, "user-1", repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Project]{
			Items: []model.Project{{ID: "p2"}, {ID: "p1"}},
			Total: 2,
		}, nil)

	// Zero limit and negative offset fall back to defaults.
	res, err := svc.List(ctx, "user-1", 0, -1)

	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Total)
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		repo := new(repoMocks.MockProjectRepository)
		svc := NewProjectService(repo, projectCost)

		repo.On("FindByID", ctx, "proj-1").Return(&model.Project{ID: "proj-1", UserID: "user-1"}, nil)
		repo.On("Delete", ctx, "proj-1", "user-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "user-1", "proj-1"))
		repo.AssertExpectations(t)
	})

	t.Run("foreign project looks missing", func(t *testing.T) {
		repo := new(repoMocks.MockProjectRepository)
		svc := NewProjectService(repo, projectCost)

		repo.On("FindByID", ctx, "proj-1").Return(&model.Project{ID: "proj-1", UserID: "someone-else"}, nil)

		err := svc.Delete(ctx, "user-1", "proj-1")

		assert.ErrorIs(t, err, ErrNotFound)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(repoMocks.MockProjectRepository)
		svc := NewProjectService(repo, projectCost)

		repo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "user-1", "missing"), ErrNotFound)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		repo := new(repoMocks.MockProjectRepository)
		svc := NewProjectService(repo, projectCost)

		repo.On("FindByID", ctx, "proj-1").Return(nil, errors.New("db fail"))

		assert.Error(t, svc.Delete(ctx, "user-1", "proj-1"))
	})
}
