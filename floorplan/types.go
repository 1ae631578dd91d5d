// Package floorplan implements the in-memory block/floor/section/room
// structure editor used by the property creation wizard. Every operation
// returns new slices/structs instead of mutating its input so callers can
// hold on to earlier snapshots of a draft.
package floorplan

import "golang.org/x/exp/slices"

// RoomStatus is the occupancy state shown on the rooms table.
type RoomStatus string

const (
	StatusAvailable   RoomStatus = "Available"
	StatusOccupied    RoomStatus = "Occupied"
	StatusMaintenance RoomStatus = "Maintenance"
	StatusReserved    RoomStatus = "Reserved"
)

// RoomStatuses lists every valid room status, in display order.
var RoomStatuses = []RoomStatus{StatusAvailable, StatusOccupied, StatusMaintenance, StatusReserved}

// ValidRoomStatus reports whether s is one of the known statuses.
// The empty string is not valid here; callers treat it as "keep current".
func ValidRoomStatus(s RoomStatus) bool {
	return slices.Contains(RoomStatuses, s)
}

// Surface units accepted on a floor form.
const (
	UnitSquareMeters = "sqm"
	UnitSquareFeet   = "sqft"
)

// EnergyGrades is the fixed vocabulary a floor's energy classes are drawn from.
var EnergyGrades = []string{"A+", "A", "B", "C", "D", "E", "F", "G"}

// UnassignedSection is the synthetic section name rooms are grouped under
// when their sectionName matches no Section of their floor.
const UnassignedSection = "Unassigned"

type Block struct {
	ID            string  `json:"id"`
	BlockName     string  `json:"blockName"`
	Floors        []Floor `json:"floors"`
	HasRooms      bool    `json:"hasRooms"`
	HasFacilities bool    `json:"hasFacilities"`
}

type Floor struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Level              int                 `json:"level"`
	SurfaceArea        float64             `json:"surfaceArea"`
	SurfaceUnit        string              `json:"surfaceUnit"`
	EnergyClass        []string            `json:"energyClass"`
	Sections           []Section           `json:"sections"`
	Rooms              []Room              `json:"rooms"`
	Facilities         []Facility          `json:"facilities"`
	Elevators          []Elevator          `json:"elevators"`
	AdditionalFeatures []AdditionalFeature `json:"additionalFeatures"`
	ExtraAreas         []ExtraArea         `json:"extraAreas"`
	HasRooms           bool                `json:"hasRooms"`
	HasFacilities      bool                `json:"hasFacilities"`
}

// Section is a named sub-grouping of rooms within a floor. Rooms point back
// at it by name; the name is the join key, not a durable id.
type Section struct {
	Name     string `json:"name"`
	RoomFrom string `json:"roomFrom"`
	RoomTo   string `json:"roomTo"`
}

type Room struct {
	ID          string     `json:"id,omitempty"`
	Number      string     `json:"number"`
	SectionName string     `json:"sectionName"`
	Type        string     `json:"type"`
	Status      RoomStatus `json:"status"`
	Area        float64    `json:"area,omitempty"`
	Views       []string   `json:"views"`
}

type Facility struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	SectionName string `json:"sectionName"`
}

type Elevator struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	SectionName string `json:"sectionName"`
}

type AdditionalFeature struct {
	Name string `json:"name"`
}

type ExtraArea struct {
	Name    string `json:"name"`
	UsedFor string `json:"usedFor"`
}

// CloneBlocks deep-copies a block tree. Mutating the copy never touches the
// original; all editor operations go through this before changing anything.
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = cloneBlock(b)
	}
	return out
}

func cloneBlock(b Block) Block {
	c := b
	c.Floors = make([]Floor, len(b.Floors))
	for i, f := range b.Floors {
		c.Floors[i] = cloneFloor(f)
	}
	return c
}

func cloneFloor(f Floor) Floor {
	c := f
	c.EnergyClass = slices.Clone(f.EnergyClass)
	c.Sections = slices.Clone(f.Sections)
	c.Rooms = make([]Room, len(f.Rooms))
	for i, r := range f.Rooms {
		c.Rooms[i] = r
		c.Rooms[i].Views = slices.Clone(r.Views)
	}
	c.Facilities = slices.Clone(f.Facilities)
	c.Elevators = slices.Clone(f.Elevators)
	c.AdditionalFeatures = slices.Clone(f.AdditionalFeatures)
	c.ExtraAreas = slices.Clone(f.ExtraAreas)
	return c
}
