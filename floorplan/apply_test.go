package floorplan

import (
	"errors"
	"reflect"
	"testing"
)

func rangeTestBlocks() []Block {
	return []Block{
		{
			ID:        "blk-1",
			BlockName: "Main",
			Floors: []Floor{
				{
					ID:       "flr-1",
					Name:     "Ground",
					Level:    1,
					Sections: []Section{{Name: "East", RoomFrom: "90", RoomTo: "120"}},
					Rooms: []Room{
						{ID: "r-95", Number: "95", SectionName: "East", Type: "Storage", Status: StatusAvailable},
						{ID: "r-101", Number: "101", SectionName: "East", Type: "Storage", Status: StatusAvailable, Views: []string{"Garden View"}},
						{ID: "r-105", Number: "105", SectionName: "East", Type: "Storage", Status: StatusAvailable},
						{ID: "r-110", Number: "110", SectionName: "East", Type: "Storage", Status: StatusAvailable},
						{ID: "r-115", Number: "115", SectionName: "East", Type: "Storage", Status: StatusAvailable},
					},
				},
			},
		},
	}
}

func roomByID(t *testing.T, blocks []Block, id string) Room {
	t.Helper()
	for _, fr := range Flatten(blocks) {
		if fr.Room.ID == id {
			return fr.Room
		}
	}
	t.Fatalf("room %s not found", id)
	return Room{}
}

func TestExtractNumber(t *testing.T) {
	cases := []struct {
		token string
		want  int
	}{
		{"101", 101},
		{"R101", 101},
		{"room 205b", 205},
		{"abc", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := ExtractNumber(c.token); got != c.want {
			t.Errorf("ExtractNumber(%q) = %d, want %d", c.token, got, c.want)
		}
	}
}

func TestNormalizeRangeOrderInsensitive(t *testing.T) {
	lo, hi, err := NormalizeRange("110", "R101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lo != 101 || hi != 110 {
		t.Fatalf("expected [101,110], got [%d,%d]", lo, hi)
	}
}

func TestApplyRangeUpdatesOnlyRoomsInBound(t *testing.T) {
	blocks := rangeTestBlocks()
	updated, count, err := ApplyRange(blocks, "101", "110", RangeUpdate{
		Type:   "Office",
		Status: StatusOccupied,
		Views:  []string{"City View"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rooms updated, got %d", count)
	}

	for _, id := range []string{"r-101", "r-105", "r-110"} {
		room := roomByID(t, updated, id)
		if room.Type != "Office" {
			t.Errorf("room %s type = %q, want Office", id, room.Type)
		}
		if room.Status != StatusOccupied {
			t.Errorf("room %s status = %q, want Occupied", id, room.Status)
		}
		if !reflect.DeepEqual(room.Views[len(room.Views)-1], "City View") {
			t.Errorf("room %s views missing City View: %v", id, room.Views)
		}
	}
	// Pre-existing views are kept, the new one is appended.
	if got := roomByID(t, updated, "r-101").Views; !reflect.DeepEqual(got, []string{"Garden View", "City View"}) {
		t.Errorf("views merge wrong: %v", got)
	}

	// Rooms outside the bound are untouched.
	for _, id := range []string{"r-95", "r-115"} {
		room := roomByID(t, updated, id)
		if room.Type != "Storage" || room.Status != StatusAvailable {
			t.Errorf("room %s outside range was modified: %+v", id, room)
		}
	}
	// Source tree untouched.
	if roomByID(t, blocks, "r-105").Type != "Storage" {
		t.Fatal("ApplyRange mutated its input")
	}
}

func TestApplyRangeIdempotentViewsMerge(t *testing.T) {
	blocks := rangeTestBlocks()
	upd := RangeUpdate{Type: "Office", Status: StatusOccupied, Views: []string{"City View", "Sea View"}}

	once, _, err := ApplyRange(blocks, "101", "110", upd)
	if err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	twice, _, err := ApplyRange(once, "101", "110", upd)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if !reflect.DeepEqual(Flatten(once), Flatten(twice)) {
		t.Fatal("reapplying the identical update changed the tree")
	}
	views := roomByID(t, twice, "r-101").Views
	seen := map[string]int{}
	for _, v := range views {
		seen[v]++
	}
	for v, n := range seen {
		if n > 1 {
			t.Fatalf("view %q duplicated after reapply: %v", v, views)
		}
	}
}

func TestApplyRangeEmptyStatusKeepsCurrent(t *testing.T) {
	blocks := rangeTestBlocks()
	next, _, err := ApplyRange(blocks, "101", "101", RangeUpdate{Type: "Suite", Status: StatusReserved})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next, _, err = ApplyRange(next, "101", "101", RangeUpdate{Type: "Office"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	room := roomByID(t, next, "r-101")
	if room.Status != StatusReserved {
		t.Fatalf("empty status must keep the current status, got %q", room.Status)
	}
	if room.Type != "Office" {
		t.Fatalf("type must always overwrite, got %q", room.Type)
	}
}

func TestApplyRangeInvalidTokenAbortsWithoutMutation(t *testing.T) {
	blocks := rangeTestBlocks()
	updated, count, err := ApplyRange(blocks, "abc", "110", RangeUpdate{Type: "Office", Status: StatusOccupied})
	var invalid *InvalidRangeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidRangeError, got %v", err)
	}
	if invalid.Token != "abc" {
		t.Fatalf("expected offending token in error, got %q", invalid.Token)
	}
	if count != 0 {
		t.Fatalf("expected zero rooms updated, got %d", count)
	}
	if !reflect.DeepEqual(Flatten(updated), Flatten(blocks)) {
		t.Fatal("aborted apply must leave the tree unchanged")
	}
	for _, fr := range Flatten(updated) {
		if fr.Room.Type != "Storage" {
			t.Fatalf("room %s mutated by aborted apply", fr.Room.ID)
		}
	}
}

func TestResolveRoomID(t *testing.T) {
	// Durable id wins regardless of the other inputs.
	if got := ResolveRoomID("b", "f", "s", "101", "X"); got != "X" {
		t.Fatalf("expected existing id to win, got %q", got)
	}
	// Pure: identical inputs, identical output.
	a := ResolveRoomID("blk-1", "flr-2", "East", "204", "")
	b := ResolveRoomID("blk-1", "flr-2", "East", "204", "")
	if a != b {
		t.Fatalf("composite id not stable: %q vs %q", a, b)
	}
	if a != "blk-1-flr-2-East-204" {
		t.Fatalf("unexpected composite format: %q", a)
	}
}
