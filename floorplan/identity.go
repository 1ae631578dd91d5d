package floorplan

import "fmt"

// ResolveRoomID returns the identity the selection table and bulk updates key
// a room by. A durable id always wins; without one the id is synthesized from
// the room's position in the tree so it stays stable across recomputes.
//
// Two rooms sharing a number inside the same section collide under the
// fallback scheme. Nothing detects that today; new rooms created through the
// wizard get a generated id precisely to avoid depending on the fallback.
func ResolveRoomID(blockID, floorID, sectionID, roomNumber, existingID string) string {
	if existingID != "" {
		return existingID
	}
	return fmt.Sprintf("%s-%s-%s-%s", blockID, floorID, sectionID, roomNumber)
}
