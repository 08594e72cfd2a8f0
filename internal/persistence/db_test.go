package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/physlab/internal/quiz"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "physlab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndListAttempts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id1, err := db.RecordAttempt(ctx, Attempt{
		CourseID:   "phys-101",
		LessonPath: "physics/momentum/collisions",
		Score:      0.5,
		Results:    []quiz.Result{{QuestionID: "elastic-outcome", Correct: true, Points: 1}},
		CreatedAt:  base,
	})
	require.NoError(t, err)
	id2, err := db.RecordAttempt(ctx, Attempt{
		CourseID:   "phys-101",
		LessonPath: "physics/momentum/collisions",
		Score:      1,
		CreatedAt:  base.Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = db.RecordAttempt(ctx, Attempt{CourseID: "phys-101", LessonPath: "physics/waves/speed-of-light", Score: 0.25})
	require.NoError(t, err)

	attempts, err := db.Attempts(ctx, "physics/momentum/collisions")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, id2, attempts[0].ID, "newest first")
	assert.Equal(t, id1, attempts[1].ID)
	assert.Equal(t, base, attempts[1].CreatedAt)
	require.Len(t, attempts[1].Results, 1)
	assert.Equal(t, "elastic-outcome", attempts[1].Results[0].QuestionID)
	assert.Empty(t, attempts[0].Results)

	all, err := db.Attempts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBestScore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, ok, err := db.BestScore(ctx, "physics/electricity/fields")
	require.NoError(t, err)
	assert.False(t, ok)

	for _, s := range []float64{0.4, 0.9, 0.6} {
		_, err := db.RecordAttempt(ctx, Attempt{CourseID: "c", LessonPath: "physics/electricity/fields", Score: s})
		require.NoError(t, err)
	}
	best, ok, err := db.BestScore(ctx, "physics/electricity/fields")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.9, best)
}

func TestRecorderCallback(t *testing.T) {
	db := openTestDB(t)
	kc := quiz.KnowledgeCheck{CourseID: "phys-101", LessonPath: "physics/waves/speed-of-light"}

	done := Recorder(db, kc)
	done(0.75, []quiz.Result{{QuestionID: "moon-delay", Correct: true}})

	attempts, err := db.Attempts(context.Background(), kc.LessonPath)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "phys-101", attempts[0].CourseID)
	assert.Equal(t, 0.75, attempts[0].Score)
}

func TestOpenReusesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physlab.db")
	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.RecordAttempt(context.Background(), Attempt{CourseID: "c", LessonPath: "p", Score: 1})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	attempts, err := db.Attempts(context.Background(), "p")
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}
