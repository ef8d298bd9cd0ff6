//go:build integration
// +build integration

package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ldplus/collsync/internal/adapters/db"
	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/ports"
	"github.com/ldplus/collsync/test/helpers"
)

type RunRepositorySuite struct {
	suite.Suite
	testDB *helpers.TestDB
	repo   ports.RunRepository
	ctx    context.Context
}

func (s *RunRepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.repo = db.NewRunRepository(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *RunRepositorySuite) SetupTest() {
	// Clear data before each test
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
}

func (s *RunRepositorySuite) TestRecord() {
	run := domain.NewSyncRun(domain.TriggerWebhook, "gid://shopify/Collection/42")
	run.Added = 2
	run.Removed = 1
	run.Finish(domain.RunCompleted, nil)

	err := s.repo.Record(s.ctx, run)
	s.NoError(err)

	runs, err := s.repo.List(s.ctx, ports.RunListParams{})
	s.NoError(err)
	s.Len(runs, 1)
	s.Equal(run.RunID, runs[0].RunID)
	s.Equal(domain.TriggerWebhook, runs[0].Trigger)
	s.Equal(domain.RunCompleted, runs[0].Status)
	s.Equal(2, runs[0].Added)
	s.Equal(1, runs[0].Removed)
	s.Empty(runs[0].Error)
}

func (s *RunRepositorySuite) TestRecord_FailedRunKeepsError() {
	run := domain.NewSyncRun(domain.TriggerSweep, "gid://shopify/Collection/42")
	run.Finish(domain.RunFailed, errors.New("membership listing failed"))

	err := s.repo.Record(s.ctx, run)
	s.NoError(err)

	runs, err := s.repo.List(s.ctx, ports.RunListParams{Status: string(domain.RunFailed)})
	s.NoError(err)
	s.Len(runs, 1)
	s.Equal("membership listing failed", runs[0].Error)
}

func (s *RunRepositorySuite) TestRecord_DuplicateRunIDRejected() {
	run := domain.NewSyncRun(domain.TriggerResort, "gid://shopify/Collection/42")
	run.Finish(domain.RunCompleted, nil)

	s.NoError(s.repo.Record(s.ctx, run))
	s.Error(s.repo.Record(s.ctx, run))
}

func (s *RunRepositorySuite) TestList_Filters() {
	triggers := []domain.RunTrigger{
		domain.TriggerWebhook, domain.TriggerWebhook,
		domain.TriggerSweep, domain.TriggerResort,
	}
	statuses := []domain.RunStatus{
		domain.RunCompleted, domain.RunSkipped,
		domain.RunCompleted, domain.RunFailed,
	}

	for i := range triggers {
		run := domain.NewSyncRun(triggers[i], "gid://shopify/Collection/42")
		run.Finish(statuses[i], nil)
		s.NoError(s.repo.Record(s.ctx, run))
	}

	s.Run("by_trigger", func() {
		runs, err := s.repo.List(s.ctx, ports.RunListParams{Trigger: string(domain.TriggerWebhook)})
		s.NoError(err)
		s.Len(runs, 2)
		for _, run := range runs {
			s.Equal(domain.TriggerWebhook, run.Trigger)
		}
	})

	s.Run("by_status", func() {
		runs, err := s.repo.List(s.ctx, ports.RunListParams{Status: string(domain.RunCompleted)})
		s.NoError(err)
		s.Len(runs, 2)
	})

	s.Run("by_trigger_and_status", func() {
		runs, err := s.repo.List(s.ctx, ports.RunListParams{
			Trigger: string(domain.TriggerWebhook),
			Status:  string(domain.RunSkipped),
		})
		s.NoError(err)
		s.Len(runs, 1)
	})
}

func (s *RunRepositorySuite) TestList_OrderingAndLimit() {
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		run := &domain.SyncRun{
			RunID:        uuid.New(),
			Trigger:      domain.TriggerSweep,
			CollectionID: "gid://shopify/Collection/42",
			Status:       domain.RunCompleted,
			StartedAt:    base.Add(time.Duration(i) * time.Minute),
			FinishedAt:   base.Add(time.Duration(i)*time.Minute + time.Second),
		}
		s.NoError(s.repo.Record(s.ctx, run))
	}

	runs, err := s.repo.List(s.ctx, ports.RunListParams{Limit: 3})
	s.NoError(err)
	s.Len(runs, 3)

	// Newest first
	for i := 1; i < len(runs); i++ {
		s.True(runs[i-1].StartedAt.After(runs[i].StartedAt))
	}
}

func TestRunRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RunRepositorySuite))
}
