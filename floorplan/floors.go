package floorplan

import "fmt"

// DuplicateLevelError rejects a floor whose level is already taken inside the
// same block. It is user-correctable: the form stays open and the floors
// array is left untouched.
type DuplicateLevelError struct {
	Level int
}

func (e *DuplicateLevelError) Error() string {
	return fmt.Sprintf("Floor level %d already exists in this block", e.Level)
}

// levelTaken reports whether another floor of the block already uses level,
// ignoring the floor at skipIndex (the one being edited). Pass skipIndex -1
// when adding.
func levelTaken(block Block, level, skipIndex int) bool {
	for i, f := range block.Floors {
		if i == skipIndex {
			continue
		}
		if f.Level == level {
			return true
		}
	}
	return false
}

// AddFloor appends a floor to the block. Returns the updated block, or the
// original block and a *DuplicateLevelError when the level is taken.
func AddFloor(block Block, floor Floor) (Block, error) {
	if levelTaken(block, floor.Level, -1) {
		return block, &DuplicateLevelError{Level: floor.Level}
	}
	updated := cloneBlock(block)
	updated.Floors = append(updated.Floors, cloneFloor(floor))
	return updated, nil
}

// UpdateFloor replaces the floor at index. The floor being replaced is
// excluded from the level-uniqueness check so saving it unchanged succeeds.
func UpdateFloor(block Block, index int, floor Floor) (Block, error) {
	if index < 0 || index >= len(block.Floors) {
		return block, fmt.Errorf("floor index %d out of range", index)
	}
	if levelTaken(block, floor.Level, index) {
		return block, &DuplicateLevelError{Level: floor.Level}
	}
	updated := cloneBlock(block)
	updated.Floors[index] = cloneFloor(floor)
	return updated, nil
}

// DeleteFloor removes the floor at index.
func DeleteFloor(block Block, index int) (Block, error) {
	if index < 0 || index >= len(block.Floors) {
		return block, fmt.Errorf("floor index %d out of range", index)
	}
	updated := cloneBlock(block)
	updated.Floors = append(updated.Floors[:index], updated.Floors[index+1:]...)
	return updated, nil
}

// FloorEditor tracks the floor sub-form of the wizard: which floor of the
// block is loaded into the form, if any, and keeps that tracking correct
// when floors before it are deleted.
//
// States: Idle/New (EditIndex() == -1, defaults shown) and Editing (a floor
// loaded by its index in the block's floors array). Save transitions back to
// Idle/New whether it added or updated; Cancel discards without touching the
// collection.
type FloorEditor struct {
	block     Block
	editIndex int
	draft     Floor
}

// NewFloorEditor starts in the Idle/New state over a copy of block.
func NewFloorEditor(block Block) *FloorEditor {
	return &FloorEditor{block: cloneBlock(block), editIndex: -1}
}

// Block returns the current floors collection.
func (e *FloorEditor) Block() Block { return cloneBlock(e.block) }

// EditIndex returns the index of the floor loaded into the form, or -1 in
// the Idle/New state.
func (e *FloorEditor) EditIndex() int { return e.editIndex }

// Draft returns the floor data currently loaded into the form.
func (e *FloorEditor) Draft() Floor { return cloneFloor(e.draft) }

// Open loads the floor at index into the form.
func (e *FloorEditor) Open(index int) error {
	if index < 0 || index >= len(e.block.Floors) {
		return fmt.Errorf("floor index %d out of range", index)
	}
	e.editIndex = index
	e.draft = cloneFloor(e.block.Floors[index])
	return nil
}

// Cancel returns to Idle/New without mutating the collection.
func (e *FloorEditor) Cancel() {
	e.editIndex = -1
	e.draft = Floor{}
}

// Save commits the form. From Idle/New it adds, from Editing it updates the
// loaded floor. A duplicate level leaves the form open and the collection
// unchanged; on success the editor returns to Idle/New.
func (e *FloorEditor) Save(floor Floor) error {
	var (
		updated Block
		err     error
	)
	if e.editIndex == -1 {
		updated, err = AddFloor(e.block, floor)
	} else {
		updated, err = UpdateFloor(e.block, e.editIndex, floor)
	}
	if err != nil {
		e.draft = cloneFloor(floor)
		return err
	}
	e.block = updated
	e.Cancel()
	return nil
}

// Delete removes the floor at index and keeps the edit tracking consistent:
// deleting the floor being edited resets the form to defaults, deleting a
// floor before it shifts the tracked index down by one so it still points at
// the same logical floor.
func (e *FloorEditor) Delete(index int) error {
	updated, err := DeleteFloor(e.block, index)
	if err != nil {
		return err
	}
	e.block = updated
	switch {
	case e.editIndex == index:
		e.Cancel()
	case e.editIndex > index:
		e.editIndex--
	}
	return nil
}
