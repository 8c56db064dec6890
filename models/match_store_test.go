package models_test

import (
	"testing"

	"Knockout/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.Match{}, &models.GoalEvent{}))
	require.NoError(t, db.AutoMigrate(&models.Match{}, &models.GoalEvent{}))
	return db
}

func TestFindByStagePairScoping(t *testing.T) {
	db := openTestDB(t)
	store := &models.MatchStore{DB: db}

	seeded := &models.Match{
		TournamentID: "t-1",
		Stage:        models.StageSF,
		Pair:         1,
		Status:       models.StatusScheduled,
		Mode:         models.ModeSimulate,
		HomeTeamID:   "team-a",
		AwayTeamID:   models.TBDTeamID,
	}
	require.NoError(t, store.Create(seeded))

	found, err := store.FindByStagePair(models.StageSF, 1, "t-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, seeded.ID, found.ID)

	// Unscoped lookups still see it.
	found, err = store.FindByStagePair(models.StageSF, 1, "")
	require.NoError(t, err)
	require.NotNil(t, found)

	// A different tournament does not.
	found, err = store.FindByStagePair(models.StageSF, 1, "t-2")
	require.NoError(t, err)
	assert.Nil(t, found)

	// A vacant slot is a nil, nil miss rather than an error.
	found, err = store.FindByStagePair(models.StageSF, 2, "t-1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindByStagePairMatchesLegacyRows(t *testing.T) {
	db := openTestDB(t)
	store := &models.MatchStore{DB: db}

	legacy := &models.Match{
		Stage:      models.StageSF,
		Pair:       1,
		Status:     models.StatusScheduled,
		Mode:       models.ModeSimulate,
		HomeTeamID: models.TBDTeamID,
		AwayTeamID: models.TBDTeamID,
	}
	require.NoError(t, store.Create(legacy))

	// Rows written before tournament scoping carry no tournament id and must
	// still be found by a scoped lookup.
	found, err := store.FindByStagePair(models.StageSF, 1, "t-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, legacy.ID, found.ID)
}

func TestCreateRejectsOccupiedSlot(t *testing.T) {
	db := openTestDB(t)
	store := &models.MatchStore{DB: db}

	first := &models.Match{
		TournamentID: "t-1",
		Stage:        models.StageF,
		Pair:         1,
		Status:       models.StatusScheduled,
		Mode:         models.ModeSimulate,
		HomeTeamID:   "team-a",
		AwayTeamID:   models.TBDTeamID,
	}
	require.NoError(t, store.Create(first))

	dup := &models.Match{
		TournamentID: "t-1",
		Stage:        models.StageF,
		Pair:         1,
		Status:       models.StatusScheduled,
		Mode:         models.ModeSimulate,
		HomeTeamID:   models.TBDTeamID,
		AwayTeamID:   "team-b",
	}
	assert.Error(t, store.Create(dup), "the bracket slot index must reject a second Final")

	// Same slot in another tournament is fine.
	other := &models.Match{
		TournamentID: "t-2",
		Stage:        models.StageF,
		Pair:         1,
		Status:       models.StatusScheduled,
		Mode:         models.ModeSimulate,
		HomeTeamID:   models.TBDTeamID,
		AwayTeamID:   models.TBDTeamID,
	}
	assert.NoError(t, store.Create(other))
}

func TestPatchSlotUpdatesOneSide(t *testing.T) {
	db := openTestDB(t)
	store := &models.MatchStore{DB: db}

	m := &models.Match{
		TournamentID: "t-1",
		Stage:        models.StageSF,
		Pair:         2,
		Status:       models.StatusScheduled,
		Mode:         models.ModeSimulate,
		HomeTeamID:   "team-a",
		AwayTeamID:   models.TBDTeamID,
	}
	require.NoError(t, store.Create(m))

	require.NoError(t, store.PatchSlot(m.ID, models.SideAway, "team-b", "t-1"))

	patched, err := store.FindByStagePair(models.StageSF, 2, "t-1")
	require.NoError(t, err)
	require.NotNil(t, patched)
	assert.Equal(t, "team-a", patched.HomeTeamID, "the other side must be untouched")
	assert.Equal(t, "team-b", patched.AwayTeamID)
	assert.Equal(t, models.StatusScheduled, patched.Status)
}

func TestPatchSlotBackfillsMissingTournamentID(t *testing.T) {
	db := openTestDB(t)
	store := &models.MatchStore{DB: db}

	legacy := &models.Match{
		Stage:      models.StageSF,
		Pair:       1,
		Status:     models.StatusScheduled,
		Mode:       models.ModeSimulate,
		HomeTeamID: models.TBDTeamID,
		AwayTeamID: models.TBDTeamID,
	}
	require.NoError(t, store.Create(legacy))

	require.NoError(t, store.PatchSlot(legacy.ID, models.SideHome, "team-a", "t-7"))

	patched, err := store.FindByStagePair(models.StageSF, 1, "t-7")
	require.NoError(t, err)
	require.NotNil(t, patched)
	assert.Equal(t, "team-a", patched.HomeTeamID)
	assert.Equal(t, "t-7", patched.TournamentID)

	// A later patch never rewrites an already-set tournament id.
	require.NoError(t, store.PatchSlot(legacy.ID, models.SideAway, "team-b", "t-8"))
	patched, err = store.FindByStagePair(models.StageSF, 1, "t-7")
	require.NoError(t, err)
	require.NotNil(t, patched)
	assert.Equal(t, "t-7", patched.TournamentID)
}
