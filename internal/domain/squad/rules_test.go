package squad

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matchweek/fantasy-api/internal/domain/player"
)

func TestFormationSlots(t *testing.T) {
	for _, f := range AllFormations {
		slots := f.Slots()
		if len(slots) != 11 {
			t.Fatalf("%s has %d slots, want 11", f, len(slots))
		}
		if slots[0] != "GK" {
			t.Fatalf("%s first slot = %s, want GK", f, slots[0])
		}
		for _, s := range slots {
			if !f.HasSlot(s) {
				t.Fatalf("%s does not recognise its own slot %s", f, s)
			}
			if _, ok := SlotPosition(s); !ok {
				t.Fatalf("SlotPosition(%s) unknown", s)
			}
		}
	}
}

func TestFormationSlotOrder442(t *testing.T) {
	got := Formation442.Slots()
	want := []string{"GK", "DEF1", "DEF2", "DEF3", "DEF4", "MID1", "MID2", "MID3", "MID4", "FWD1", "FWD2"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFormationRejectsForeignSlots(t *testing.T) {
	if Formation451.HasSlot("FWD2") {
		t.Fatal("4-5-1 accepted FWD2")
	}
	if Formation442.HasSlot("DEF5") {
		t.Fatal("4-4-2 accepted DEF5")
	}
	if Formation442.HasSlot("GK2") {
		t.Fatal("4-4-2 accepted GK2")
	}
	if Formation("4-4-3").Valid() {
		t.Fatal("4-4-3 accepted as formation")
	}
}

func fullSquadPlayers(clubs int) map[string]player.Player {
	byID := make(map[string]player.Player)
	add := func(id string, pos player.Position) {
		club := fmt.Sprintf("club-%d", len(byID)%clubs)
		byID[id] = player.Player{ID: id, TeamID: club, FirstName: "A", LastName: id, Position: pos}
	}
	add("gk1", player.PositionGoalkeeper)
	for i := 1; i <= 5; i++ {
		add(fmt.Sprintf("def%d", i), player.PositionDefender)
		add(fmt.Sprintf("mid%d", i), player.PositionMidfielder)
	}
	for i := 1; i <= 3; i++ {
		add(fmt.Sprintf("fwd%d", i), player.PositionForward)
	}
	return byID
}

func TestValidateAssignmentsFullLineup(t *testing.T) {
	players := fullSquadPlayers(11)
	assignments := []SlotAssignment{
		{Slot: "GK", PlayerID: "gk1"},
		{Slot: "DEF1", PlayerID: "def1"},
		{Slot: "DEF2", PlayerID: "def2"},
		{Slot: "DEF3", PlayerID: "def3"},
		{Slot: "DEF4", PlayerID: "def4"},
		{Slot: "MID1", PlayerID: "mid1"},
		{Slot: "MID2", PlayerID: "mid2"},
		{Slot: "MID3", PlayerID: "mid3"},
		{Slot: "MID4", PlayerID: "mid4"},
		{Slot: "FWD1", PlayerID: "fwd1"},
		{Slot: "FWD2", PlayerID: "fwd2"},
	}

	if err := ValidateAssignments(Formation442, assignments, players, 3); err != nil {
		t.Fatalf("ValidateAssignments() = %v", err)
	}
}

func TestValidateAssignmentsPositionMismatch(t *testing.T) {
	players := fullSquadPlayers(11)
	assignments := []SlotAssignment{{Slot: "GK", PlayerID: "fwd1"}}

	err := ValidateAssignments(Formation442, assignments, players, 3)
	if !errors.Is(err, ErrSlotPositionMismatch) {
		t.Fatalf("err = %v, want ErrSlotPositionMismatch", err)
	}
}

func TestValidateAssignmentsDuplicatePlayer(t *testing.T) {
	players := fullSquadPlayers(11)
	assignments := []SlotAssignment{
		{Slot: "MID1", PlayerID: "mid1"},
		{Slot: "MID2", PlayerID: "mid1"},
	}

	err := ValidateAssignments(Formation442, assignments, players, 3)
	if !errors.Is(err, ErrDuplicatePlayerInSquad) {
		t.Fatalf("err = %v, want ErrDuplicatePlayerInSquad", err)
	}
}

func TestValidateAssignmentsTeamLimit(t *testing.T) {
	// One club for every player: the fourth assignment breaks limit 3.
	players := fullSquadPlayers(1)
	assignments := []SlotAssignment{
		{Slot: "DEF1", PlayerID: "def1"},
		{Slot: "DEF2", PlayerID: "def2"},
		{Slot: "DEF3", PlayerID: "def3"},
		{Slot: "DEF4", PlayerID: "def4"},
	}

	err := ValidateAssignments(Formation442, assignments, players, 3)
	if !errors.Is(err, ErrExceededTeamLimit) {
		t.Fatalf("err = %v, want ErrExceededTeamLimit", err)
	}

	// A raised limit admits the same lineup.
	if err := ValidateAssignments(Formation442, assignments, players, 4); err != nil {
		t.Fatalf("ValidateAssignments(limit=4) = %v", err)
	}
}

func TestValidateAssignmentsUnknownSlot(t *testing.T) {
	players := fullSquadPlayers(11)
	assignments := []SlotAssignment{{Slot: "MID5", PlayerID: "mid5"}}

	err := ValidateAssignments(Formation442, assignments, players, 3)
	if !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("err = %v, want ErrUnknownSlot", err)
	}

	// The same slot is legal in a five-midfielder scheme.
	if err := ValidateAssignments(Formation451, assignments, players, 3); err != nil {
		t.Fatalf("ValidateAssignments(4-5-1) = %v", err)
	}
}
