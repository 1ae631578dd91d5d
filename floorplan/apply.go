package floorplan

import "golang.org/x/exp/slices"

// RangeUpdate is the payload of a bulk room-range edit. Type always
// overwrites. An empty Status means "keep the room's current status", it is
// not an error. Views are merged into each room's existing views with
// set-union semantics, so reapplying the same update never duplicates.
type RangeUpdate struct {
	Type   string
	Status RoomStatus
	Views  []string
}

// ApplyRange applies upd to every room in the tree whose numeric number
// falls inside the inclusive bound resolved from fromToken/toToken. It never
// creates rooms; numbers in the bound with no existing room are skipped.
// Returns the updated tree and how many rooms changed.
//
// An unresolvable token aborts the whole operation before anything is
// touched: the input tree is returned unchanged with a *InvalidRangeError.
func ApplyRange(blocks []Block, fromToken, toToken string, upd RangeUpdate) ([]Block, int, error) {
	lo, hi, err := NormalizeRange(fromToken, toToken)
	if err != nil {
		return blocks, 0, err
	}

	updated := blocks
	count := 0
	for _, fr := range Flatten(blocks) {
		n := ExtractNumber(fr.Room.Number)
		if n < lo || n > hi {
			continue
		}
		id := ResolveRoomID(fr.BlockID, fr.FloorID, fr.SectionID, fr.Room.Number, fr.Room.ID)
		next, ok := UpdateRoomByID(updated, id, func(room Room) Room {
			room.Type = upd.Type
			if upd.Status != "" {
				room.Status = upd.Status
			}
			room.Views = mergeViews(room.Views, upd.Views)
			return room
		})
		if ok {
			updated = next
			count++
		}
	}
	return updated, count, nil
}

// UpdateRoomByID rewrites the room whose resolved identity equals id,
// returning the new tree and whether a room matched. When the fallback
// composite identity aliases two rooms, every aliased room is rewritten;
// see ResolveRoomID.
func UpdateRoomByID(blocks []Block, id string, fn func(Room) Room) ([]Block, bool) {
	updated := CloneBlocks(blocks)
	found := false
	for bi := range updated {
		block := &updated[bi]
		for fi := range block.Floors {
			floor := &block.Floors[fi]
			sectionID := func(room Room) string {
				for _, s := range floor.Sections {
					if s.Name == room.SectionName {
						return s.Name
					}
				}
				return UnassignedSection
			}
			for ri := range floor.Rooms {
				room := floor.Rooms[ri]
				if ResolveRoomID(block.ID, floor.ID, sectionID(room), room.Number, room.ID) == id {
					floor.Rooms[ri] = fn(room)
					found = true
				}
			}
		}
	}
	if !found {
		return blocks, false
	}
	return updated, true
}

// mergeViews unions extra into views, deduplicating by value and keeping
// first-seen order.
func mergeViews(views, extra []string) []string {
	merged := slices.Clone(views)
	for _, v := range extra {
		if !slices.Contains(merged, v) {
			merged = append(merged, v)
		}
	}
	return merged
}
