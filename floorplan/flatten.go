package floorplan

import "strings"

// FlatRoom is one row of the rooms table: a room annotated with the names
// and ids of its ancestors so search and selection never have to walk the
// tree again.
type FlatRoom struct {
	Room        Room   `json:"room"`
	BlockID     string `json:"blockId"`
	FloorID     string `json:"floorId"`
	SectionID   string `json:"sectionId"`
	BlockName   string `json:"blockName"`
	FloorName   string `json:"floorName"`
	SectionName string `json:"sectionName"`
}

// Key returns the room's resolved identity (see ResolveRoomID).
func (fr FlatRoom) Key() string {
	return ResolveRoomID(fr.BlockID, fr.FloorID, fr.SectionID, fr.Room.Number, fr.Room.ID)
}

// Flatten turns the block tree into the flat room list the table renders.
// Rooms are grouped by section in the order sections are declared on the
// floor; rooms whose sectionName matches no declared section are grouped
// under the synthetic "Unassigned" section rather than dropped. The source
// tree is never modified.
func Flatten(blocks []Block) []FlatRoom {
	var out []FlatRoom
	for _, block := range blocks {
		for _, floor := range block.Floors {
			declared := make(map[string]bool, len(floor.Sections))
			for _, s := range floor.Sections {
				declared[s.Name] = true
			}
			// Declared sections first, in order, then the unassigned group.
			for _, s := range floor.Sections {
				for _, room := range floor.Rooms {
					if room.SectionName == s.Name {
						out = append(out, flatRoom(block, floor, s.Name, room))
					}
				}
			}
			for _, room := range floor.Rooms {
				if !declared[room.SectionName] {
					out = append(out, flatRoom(block, floor, UnassignedSection, room))
				}
			}
		}
	}
	return out
}

func flatRoom(block Block, floor Floor, sectionName string, room Room) FlatRoom {
	return FlatRoom{
		Room:        room,
		BlockID:     block.ID,
		FloorID:     floor.ID,
		SectionID:   sectionName,
		BlockName:   block.BlockName,
		FloorName:   floor.Name,
		SectionName: sectionName,
	}
}

// Filter is the rooms-table filter bar. Zero values mean "no constraint";
// the populated predicates are ANDed.
type Filter struct {
	Search string
	Type   string
	Status RoomStatus
}

// Match reports whether the row passes the filter. Search is a
// case-insensitive substring match over the room number, type, the
// block/floor/section names and every view string.
func (f Filter) Match(fr FlatRoom) bool {
	if f.Type != "" && fr.Room.Type != f.Type {
		return false
	}
	if f.Status != "" && fr.Room.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	haystacks := []string{
		fr.Room.Number,
		fr.Room.Type,
		fr.BlockName,
		fr.FloorName,
		fr.SectionName,
	}
	haystacks = append(haystacks, fr.Room.Views...)
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), q) {
			return true
		}
	}
	return false
}

// FilterRooms returns the rows of list that pass the filter.
func FilterRooms(list []FlatRoom, f Filter) []FlatRoom {
	out := make([]FlatRoom, 0, len(list))
	for _, fr := range list {
		if f.Match(fr) {
			out = append(out, fr)
		}
	}
	return out
}
