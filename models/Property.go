package models

import (
	"encoding/json"

	"hotel-dashboard-server/floorplan"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property is the persisted aggregate a draft becomes on Approve & Save.
// The whole blocks→floors→sections/rooms tree is serialized into Structure;
// there is no partial-update path, every save replaces the full aggregate.
type Property struct {
	gorm.Model
	CreatedByID  uint           `json:"createdByID" gorm:"index"`
	Name         string         `json:"name"`
	Description  string         `json:"description" gorm:"type:text"`
	AddressLine1 string         `json:"addressLine1"`
	AddressLine2 string         `json:"addressLine2"`
	City         string         `json:"city"`
	Country      string         `json:"country"`
	Currency     string         `json:"currency"`
	Structure    datatypes.JSON `json:"structure" gorm:"type:jsonb"`
	TotalBlocks  int            `json:"totalBlocks"`
	TotalFloors  int            `json:"totalFloors"`
	TotalRooms   int            `json:"totalRooms"`
	Status       string         `json:"status" gorm:"type:varchar(20);default:'draft';index"` // draft, approved, archived
	CreatedBy    User           `json:"createdBy" gorm:"foreignKey:CreatedByID;references:ID"`
}

// Blocks decodes the serialized structure tree. A property saved without a
// structure yields an empty slice, not an error.
func (p *Property) Blocks() ([]floorplan.Block, error) {
	if len(p.Structure) == 0 {
		return []floorplan.Block{}, nil
	}
	var blocks []floorplan.Block
	if err := json.Unmarshal(p.Structure, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// SetBlocks serializes the tree into Structure and refreshes the derived
// counts shown on the properties list.
func (p *Property) SetBlocks(blocks []floorplan.Block) error {
	raw, err := json.Marshal(blocks)
	if err != nil {
		return err
	}
	p.Structure = datatypes.JSON(raw)
	p.TotalBlocks = len(blocks)
	p.TotalFloors = 0
	for _, b := range blocks {
		p.TotalFloors += len(b.Floors)
	}
	p.TotalRooms = len(floorplan.Flatten(blocks))
	return nil
}
