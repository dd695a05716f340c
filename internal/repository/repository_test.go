package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/mockmate/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedInterview(t *testing.T, repo *InterviewRepository, userID string, finalized bool, createdAt time.Time) *model.Interview {
	t.Helper()
	interview := &model.Interview{
		Role:       "Backend Engineer",
		Type:       "Technical",
		Level:      "Senior",
		Techstack:  []string{"Go", "Postgres"},
		Questions:  []string{"Q1", "Q2"},
		UserID:     userID,
		Finalized:  finalized,
		CoverImage: "/covers/adobe.png",
		CreatedAt:  createdAt,
	}
	require.NoError(t, repo.CreateInterview(context.Background(), interview))
	return interview
}

func TestInterviewRepositoryCreateAndFind(t *testing.T) {
	repo := NewInterviewRepository(newTestDB(t))
	ctx := context.Background()

	created := seedInterview(t, repo, "u1", true, time.Now().UTC())
	require.NotEmpty(t, created.ID)

	got, err := repo.FindInterviewByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []string{"Go", "Postgres"}, []string(got.Techstack))
	assert.Equal(t, []string{"Q1", "Q2"}, []string(got.Questions))
	assert.True(t, got.Finalized)

	missing, err := repo.FindInterviewByID(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInterviewRepositoryFindLatestInterviews(t *testing.T) {
	repo := NewInterviewRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	seedInterview(t, repo, "me", true, base.Add(5*time.Hour))
	older := seedInterview(t, repo, "other", true, base.Add(1*time.Hour))
	newer := seedInterview(t, repo, "other", true, base.Add(3*time.Hour))
	seedInterview(t, repo, "other", false, base.Add(4*time.Hour))
	third := seedInterview(t, repo, "someone", true, base.Add(2*time.Hour))

	latest, err := repo.FindLatestInterviews(ctx, "me", 20)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, newer.ID, latest[0].ID)
	assert.Equal(t, third.ID, latest[1].ID)
	assert.Equal(t, older.ID, latest[2].ID)
	for _, i := range latest {
		assert.NotEqual(t, "me", i.UserID)
		assert.True(t, i.Finalized)
	}

	limited, err := repo.FindLatestInterviews(ctx, "me", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestInterviewRepositoryFindInterviewsByUserID(t *testing.T) {
	repo := NewInterviewRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := seedInterview(t, repo, "u1", true, base)
	second := seedInterview(t, repo, "u1", false, base.Add(time.Hour))
	seedInterview(t, repo, "u2", true, base.Add(2*time.Hour))

	mine, err := repo.FindInterviewsByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	none, err := repo.FindInterviewsByUserID(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func newFeedback(interviewID, userID string, score int) *model.Feedback {
	categories := make([]model.CategoryScore, 0, len(model.FeedbackCategories))
	for _, name := range model.FeedbackCategories {
		categories = append(categories, model.CategoryScore{Name: name, Score: score, Comment: "ok"})
	}
	return &model.Feedback{
		InterviewID:         interviewID,
		UserID:              userID,
		TotalScore:          score,
		CategoryScores:      categories,
		Strengths:           []string{"clear"},
		AreasForImprovement: []string{"depth"},
		FinalAssessment:     "fine",
		CreatedAt:           time.Now().UTC(),
	}
}

func TestFeedbackRepositorySaveAllocatesAndReplaces(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	first := newFeedback("i1", "u1", 40)
	require.NoError(t, repo.SaveFeedback(ctx, first))
	require.NotEmpty(t, first.ID)

	replacement := newFeedback("i1", "u1", 72)
	replacement.ID = first.ID
	replacement.Strengths = []string{"structured answers", "examples"}
	replacement.FinalAssessment = "solid"
	require.NoError(t, repo.SaveFeedback(ctx, replacement))

	var count int64
	require.NoError(t, db.Model(&model.Feedback{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.FindFeedbackByInterviewAndUser(ctx, "i1", "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 72, got.TotalScore)
	assert.Equal(t, []string{"structured answers", "examples"}, []string(got.Strengths))
	assert.Equal(t, "solid", got.FinalAssessment)
	require.Len(t, got.CategoryScores, 5)
	assert.Equal(t, model.CategoryCommunication, got.CategoryScores[0].Name)
	assert.Equal(t, 72, got.CategoryScores[0].Score)
}

func TestFeedbackRepositorySaveWithChosenID(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))
	ctx := context.Background()

	fb := newFeedback("i1", "u1", 50)
	fb.ID = "chosen-id"
	require.NoError(t, repo.SaveFeedback(ctx, fb))

	got, err := repo.FindFeedbackByInterviewAndUser(ctx, "i1", "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "chosen-id", got.ID)
}

func TestFeedbackRepositorySaveRejectsForeignID(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	owned := newFeedback("i1", "alice", 80)
	require.NoError(t, repo.SaveFeedback(ctx, owned))

	for name, fb := range map[string]*model.Feedback{
		"other user":      newFeedback("i1", "mallory", 10),
		"other interview": newFeedback("i2", "alice", 10),
	} {
		t.Run(name, func(t *testing.T) {
			fb.ID = owned.ID
			err := repo.SaveFeedback(ctx, fb)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrStoreWrite)
			assert.ErrorIs(t, err, ErrFeedbackConflict)
		})
	}

	var count int64
	require.NoError(t, db.Model(&model.Feedback{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.FindFeedbackByInterviewAndUser(ctx, "i1", "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, owned.ID, got.ID)
	assert.Equal(t, 80, got.TotalScore)
}

func TestFeedbackRepositoryFindReturnsOneOfDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	first := newFeedback("i1", "u1", 40)
	second := newFeedback("i1", "u1", 60)
	require.NoError(t, repo.SaveFeedback(ctx, first))
	require.NoError(t, repo.SaveFeedback(ctx, second))
	require.NotEqual(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.Feedback{}).Where("interview_id = ? AND user_id = ?", "i1", "u1").Count(&count).Error)
	require.Equal(t, int64(2), count)

	got, err := repo.FindFeedbackByInterviewAndUser(ctx, "i1", "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Contains(t, []string{first.ID, second.ID}, got.ID)
	assert.Equal(t, "i1", got.InterviewID)
	assert.Equal(t, "u1", got.UserID)
}

func TestFeedbackRepositoryFindMissing(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveFeedback(ctx, newFeedback("i1", "u1", 50)))

	got, err := repo.FindFeedbackByInterviewAndUser(ctx, "i1", "u2")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.FindFeedbackByInterviewAndUser(ctx, "i2", "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositoryErrorsAreWrapped(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&model.Interview{}))
	repo := NewInterviewRepository(db)
	ctx := context.Background()

	_, err := repo.FindInterviewsByUserID(ctx, "u1")
	assert.ErrorIs(t, err, ErrStoreRead)

	err = repo.CreateInterview(ctx, &model.Interview{UserID: "u1"})
	assert.ErrorIs(t, err, ErrStoreWrite)
}
