package engine

import (
	"log"
	"time"

	"Knockout/models"
)

// MatchStore is the persistence boundary of the advancement state machine.
// models.MatchStore implements it over gorm; tests use an in-memory fake.
type MatchStore interface {
	// FindByStagePair returns the match in a bracket slot, or (nil, nil)
	// when none exists yet.
	FindByStagePair(stage string, pair int, tournamentID string) (*models.Match, error)
	// Create inserts a new match. It must fail rather than insert a
	// duplicate when the (stage, pair, tournament) slot is already taken.
	Create(m *models.Match) error
	// PatchSlot writes the winner into one side of an existing match and
	// refreshes its modification timestamp.
	PatchSlot(id string, slot string, teamID string, tournamentID string) error
}

// Destination addresses the bracket slot a winner advances into.
type Destination struct {
	Stage string
	Pair  int
	Slot  string
}

// NextSlotFor looks up the fixed bracket topology. The Final has no
// destination; the second return is false for it and for malformed pairs.
func NextSlotFor(stage string, pair int) (Destination, bool) {
	switch stage {
	case models.StageQF:
		switch pair {
		case 1:
			return Destination{models.StageSF, 1, models.SideHome}, true
		case 2:
			return Destination{models.StageSF, 1, models.SideAway}, true
		case 3:
			return Destination{models.StageSF, 2, models.SideHome}, true
		case 4:
			return Destination{models.StageSF, 2, models.SideAway}, true
		}
	case models.StageSF:
		switch pair {
		case 1:
			return Destination{models.StageF, 1, models.SideHome}, true
		case 2:
			return Destination{models.StageF, 1, models.SideAway}, true
		}
	}
	return Destination{}, false
}

// Advancer promotes winners through the bracket in reaction to match writes.
type Advancer struct {
	Store MatchStore
	Rand  Source
}

func NewAdvancer(store MatchStore, rng Source) *Advancer {
	if rng == nil {
		rng = NewSource()
	}
	return &Advancer{Store: store, Rand: rng}
}

// HandleWrite reacts to a single match write, given the record before and
// after it. It acts exactly on the transition into completed: re-delivery of
// an already-completed record is a no-op, which is what makes at-least-once
// delivery of the same transition safe.
func (a *Advancer) HandleWrite(before, after *models.Match) error {
	if after == nil || after.Status != models.StatusCompleted {
		return nil
	}
	if before != nil && before.Status == models.StatusCompleted {
		return nil
	}

	dest, ok := NextSlotFor(after.Stage, after.Pair)
	if !ok {
		// The Final, or a malformed pair. Terminal either way.
		return nil
	}

	winnerTeamID := after.HomeTeamID
	if WinnerOf(after, a.Rand) == models.SideAway {
		winnerTeamID = after.AwayTeamID
	}

	next, err := a.Store.FindByStagePair(dest.Stage, dest.Pair, after.TournamentID)
	if err != nil {
		log.Printf("[advance] lookup of %s-%d failed: %v", dest.Stage, dest.Pair, err)
		return err
	}

	if next != nil {
		return a.patch(next, dest, winnerTeamID, after.TournamentID)
	}

	now := time.Now()
	next = &models.Match{
		TournamentID: after.TournamentID,
		Stage:        dest.Stage,
		Pair:         dest.Pair,
		Status:       models.StatusScheduled,
		Mode:         models.ModeSimulate,
		HomeTeamID:   models.TBDTeamID,
		AwayTeamID:   models.TBDTeamID,
		HomeScore:    0,
		AwayScore:    0,
		Goals:        []models.GoalEvent{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if dest.Slot == models.SideHome {
		next.HomeTeamID = winnerTeamID
	} else {
		next.AwayTeamID = winnerTeamID
	}

	if err := a.Store.Create(next); err != nil {
		// The sibling fixture won the create race; fall back to patching
		// our slot on whatever it created.
		existing, ferr := a.Store.FindByStagePair(dest.Stage, dest.Pair, after.TournamentID)
		if ferr != nil || existing == nil {
			log.Printf("[advance] create of %s-%d failed: %v", dest.Stage, dest.Pair, err)
			return err
		}
		return a.patch(existing, dest, winnerTeamID, after.TournamentID)
	}

	log.Printf("[advance] created %s-%d with %s=%s", dest.Stage, dest.Pair, dest.Slot, winnerTeamID)
	return nil
}

func (a *Advancer) patch(next *models.Match, dest Destination, winnerTeamID, tournamentID string) error {
	if err := a.Store.PatchSlot(next.ID, dest.Slot, winnerTeamID, tournamentID); err != nil {
		log.Printf("[advance] patch of %s-%d failed: %v", dest.Stage, dest.Pair, err)
		return err
	}
	log.Printf("[advance] updated %s-%d set %s=%s", dest.Stage, dest.Pair, dest.Slot, winnerTeamID)
	return nil
}
