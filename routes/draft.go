package routes

import (
	"errors"
	"net/http"
	"strconv"

	"hotel-dashboard-server/floorplan"
	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// The draft endpoints are the wizard's server-side form state. Every
// mutation loads the draft, runs the corresponding floorplan operation on a
// fresh copy of the tree and stores the result back, so a failed operation
// never leaves a half-edited draft behind.

// POST /api/draft
func CreateDraft(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreateDraftInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	draft := &storage.Draft{
		ID:     uuid.NewString(),
		UserID: claims.ID,
		Name:   input.Name,
		Blocks: []floorplan.Block{},
	}
	if err := storage.Drafts.Put(ctx.Request().Context(), draft); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, draft)
}

// GET /api/draft — the caller's drafts, most recently touched first.
func ListDrafts(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	drafts, err := storage.Drafts.List(ctx.Request().Context(), claims.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{
		"data":  drafts,
		"meta":  iris.Map{"total": len(drafts)},
		"links": iris.Map{},
	})
}

// GET /api/draft/{id}
func GetDraft(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}
	utils.JSONData(ctx, draft)
}

// DELETE /api/draft/{id}
func DeleteDraft(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}
	if err := storage.Drafts.Delete(ctx.Request().Context(), draft.ID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

// POST /api/draft/{id}/blocks
func AddDraftBlock(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}

	var input BlockInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	block := floorplan.Block{
		ID:            uuid.NewString(),
		BlockName:     input.BlockName,
		Floors:        []floorplan.Floor{},
		HasRooms:      input.HasRooms,
		HasFacilities: input.HasFacilities,
	}
	draft.Blocks = append(floorplan.CloneBlocks(draft.Blocks), block)
	if !saveDraft(ctx, draft) {
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, block)
}

// DELETE /api/draft/{id}/blocks/{blockID}
func DeleteDraftBlock(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}
	blockID := ctx.Params().Get("blockID")

	blocks := floorplan.CloneBlocks(draft.Blocks)
	for i, b := range blocks {
		if b.ID == blockID {
			draft.Blocks = append(blocks[:i], blocks[i+1:]...)
			if !saveDraft(ctx, draft) {
				return
			}
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
	}
	utils.JSONError(ctx, http.StatusNotFound, "not_found", "block not found")
}

// POST /api/draft/{id}/blocks/{blockID}/floors
func AddDraftFloor(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}
	idx, block := findBlock(draft, ctx.Params().Get("blockID"))
	if idx < 0 {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "block not found")
		return
	}

	var input FloorInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updated, err := floorplan.AddFloor(*block, input.toFloor())
	if handleFloorplanError(ctx, err) {
		return
	}
	draft.Blocks[idx] = updated
	if !saveDraft(ctx, draft) {
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, updated.Floors[len(updated.Floors)-1])
}

// PUT /api/draft/{id}/blocks/{blockID}/floors/{index}
func UpdateDraftFloor(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}
	idx, block := findBlock(draft, ctx.Params().Get("blockID"))
	if idx < 0 {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "block not found")
		return
	}
	floorIndex, convErr := strconv.Atoi(ctx.Params().Get("index"))
	if convErr != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "floor not found")
		return
	}

	var input FloorInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	floor := input.toFloor()
	// The floor keeps its id across edits.
	if floorIndex >= 0 && floorIndex < len(block.Floors) && floor.ID == "" {
		floor.ID = block.Floors[floorIndex].ID
	}
	updated, err := floorplan.UpdateFloor(*block, floorIndex, floor)
	if handleFloorplanError(ctx, err) {
		return
	}
	draft.Blocks[idx] = updated
	if !saveDraft(ctx, draft) {
		return
	}
	utils.JSONData(ctx, updated.Floors[floorIndex])
}

// DELETE /api/draft/{id}/blocks/{blockID}/floors/{index}
func DeleteDraftFloor(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}
	idx, block := findBlock(draft, ctx.Params().Get("blockID"))
	if idx < 0 {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "block not found")
		return
	}
	floorIndex, convErr := strconv.Atoi(ctx.Params().Get("index"))
	if convErr != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "floor not found")
		return
	}

	updated, err := floorplan.DeleteFloor(*block, floorIndex)
	if handleFloorplanError(ctx, err) {
		return
	}
	draft.Blocks[idx] = updated
	if !saveDraft(ctx, draft) {
		return
	}
	ctx.StatusCode(iris.StatusNoContent)
}

// POST /api/draft/{id}/rooms/range — bulk-apply a type/status/views update
// to every room whose number falls in the inclusive from/to bound.
func ApplyDraftRoomRange(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}

	var input RoomRangeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.Status != "" && !floorplan.ValidRoomStatus(floorplan.RoomStatus(input.Status)) {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_status", "unknown room status "+input.Status)
		return
	}

	updated, count, err := floorplan.ApplyRange(draft.Blocks, input.From, input.To, floorplan.RangeUpdate{
		Type:   input.Type,
		Status: floorplan.RoomStatus(input.Status),
		Views:  input.Views,
	})
	if handleFloorplanError(ctx, err) {
		return
	}
	draft.Blocks = updated
	if !saveDraft(ctx, draft) {
		return
	}
	ctx.JSON(iris.Map{"data": iris.Map{"updated": count}, "meta": iris.Map{}, "links": iris.Map{}})
}

// GET /api/draft/{id}/rooms?search=&type=&status= — flattened, filtered
// rooms table.
func SearchDraftRooms(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}

	filter := floorplan.Filter{
		Search: ctx.URLParamDefault("search", ""),
		Type:   ctx.URLParamDefault("type", ""),
		Status: floorplan.RoomStatus(ctx.URLParamDefault("status", "")),
	}
	rooms := floorplan.FilterRooms(floorplan.Flatten(draft.Blocks), filter)
	ctx.JSON(iris.Map{
		"data":  rooms,
		"meta":  iris.Map{"total": len(rooms)},
		"links": iris.Map{},
	})
}

// POST /api/draft/{id}/approve — serialize the full aggregate into a
// Property row and drop the draft. There is no partial save.
func ApproveDraft(ctx iris.Context) {
	draft, ok := loadOwnedDraft(ctx)
	if !ok {
		return
	}

	var input ApproveDraftInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property := models.Property{
		CreatedByID:  draft.UserID,
		Name:         draft.Name,
		Description:  input.Description,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		Country:      input.Country,
		Currency:     input.Currency,
		Status:       "approved",
	}
	if err := property.SetBlocks(draft.Blocks); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "Failed to save property")
		return
	}

	storage.Drafts.Delete(ctx.Request().Context(), draft.ID)
	utils.Audit(ctx, "approve_draft", "property", property.ID, nil, property)

	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, property)
}

// loadOwnedDraft fetches the draft in the id path parameter and enforces
// that the caller owns it. On failure it has already written the response.
func loadOwnedDraft(ctx iris.Context) (*storage.Draft, bool) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	draft, err := storage.Drafts.Get(ctx.Request().Context(), ctx.Params().Get("id"))
	if err != nil {
		if errors.Is(err, storage.ErrDraftNotFound) {
			utils.JSONError(ctx, http.StatusNotFound, "not_found", "draft not found")
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil, false
	}
	if draft.UserID != claims.ID {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "not your draft"})
		return nil, false
	}
	return draft, true
}

func saveDraft(ctx iris.Context, draft *storage.Draft) bool {
	if err := storage.Drafts.Put(ctx.Request().Context(), draft); err != nil {
		utils.CreateInternalServerError(ctx)
		return false
	}
	return true
}

func findBlock(draft *storage.Draft, blockID string) (int, *floorplan.Block) {
	for i := range draft.Blocks {
		if draft.Blocks[i].ID == blockID {
			return i, &draft.Blocks[i]
		}
	}
	return -1, nil
}

// handleFloorplanError maps editor errors onto HTTP statuses: duplicate
// floor levels are a user-correctable 409, invalid range tokens a 400,
// anything else (index out of range) a 404. Reports whether it responded.
func handleFloorplanError(ctx iris.Context, err error) bool {
	if err == nil {
		return false
	}
	var dup *floorplan.DuplicateLevelError
	if errors.As(err, &dup) {
		utils.JSONError(ctx, http.StatusConflict, "duplicate_level", dup.Error())
		return true
	}
	var invalid *floorplan.InvalidRangeError
	if errors.As(err, &invalid) {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_range", invalid.Error())
		return true
	}
	utils.JSONError(ctx, http.StatusNotFound, "not_found", err.Error())
	return true
}

type CreateDraftInput struct {
	Name string `json:"name" validate:"required,max=256"`
}

type BlockInput struct {
	BlockName     string `json:"blockName" validate:"required,max=256"`
	HasRooms      bool   `json:"hasRooms"`
	HasFacilities bool   `json:"hasFacilities"`
}

type FloorInput struct {
	ID                 string                        `json:"id"`
	Name               string                        `json:"name" validate:"required,max=256"`
	Level              int                           `json:"level"`
	SurfaceArea        float64                       `json:"surfaceArea"`
	SurfaceUnit        string                        `json:"surfaceUnit" validate:"omitempty,oneof=sqm sqft"`
	EnergyClass        []string                      `json:"energyClass"`
	Sections           []floorplan.Section           `json:"sections"`
	Rooms              []RoomInput                   `json:"rooms"`
	Facilities         []floorplan.Facility          `json:"facilities"`
	Elevators          []floorplan.Elevator          `json:"elevators"`
	AdditionalFeatures []floorplan.AdditionalFeature `json:"additionalFeatures"`
	ExtraAreas         []floorplan.ExtraArea         `json:"extraAreas"`
	HasRooms           bool                          `json:"hasRooms"`
	HasFacilities      bool                          `json:"hasFacilities"`
}

type RoomInput struct {
	ID          string   `json:"id"`
	Number      string   `json:"number" validate:"required,max=32"`
	SectionName string   `json:"sectionName"`
	Type        string   `json:"type"`
	Status      string   `json:"status" validate:"omitempty,oneof=Available Occupied Maintenance Reserved"`
	Area        float64  `json:"area"`
	Views       []string `json:"views"`
}

// toFloor materializes the form payload, generating durable ids for the
// floor and anything inside it that lacks one. Identity never has to fall
// back to the composite scheme for rooms created through this path.
func (in FloorInput) toFloor() floorplan.Floor {
	floor := floorplan.Floor{
		ID:                 in.ID,
		Name:               in.Name,
		Level:              in.Level,
		SurfaceArea:        in.SurfaceArea,
		SurfaceUnit:        in.SurfaceUnit,
		EnergyClass:        in.EnergyClass,
		Sections:           in.Sections,
		Facilities:         in.Facilities,
		Elevators:          in.Elevators,
		AdditionalFeatures: in.AdditionalFeatures,
		ExtraAreas:         in.ExtraAreas,
		HasRooms:           in.HasRooms,
		HasFacilities:      in.HasFacilities,
	}
	if floor.ID == "" {
		floor.ID = uuid.NewString()
	}
	for i := range floor.Facilities {
		if floor.Facilities[i].ID == "" {
			floor.Facilities[i].ID = uuid.NewString()
		}
	}
	for i := range floor.Elevators {
		if floor.Elevators[i].ID == "" {
			floor.Elevators[i].ID = uuid.NewString()
		}
	}
	floor.Rooms = make([]floorplan.Room, len(in.Rooms))
	for i, r := range in.Rooms {
		room := floorplan.Room{
			ID:          r.ID,
			Number:      r.Number,
			SectionName: r.SectionName,
			Type:        r.Type,
			Status:      floorplan.RoomStatus(r.Status),
			Area:        r.Area,
			Views:       r.Views,
		}
		if room.ID == "" {
			room.ID = uuid.NewString()
		}
		if room.Status == "" {
			room.Status = floorplan.StatusAvailable
		}
		floor.Rooms[i] = room
	}
	return floor
}

type RoomRangeInput struct {
	From   string   `json:"from" validate:"required"`
	To     string   `json:"to" validate:"required"`
	Type   string   `json:"type" validate:"required"`
	Status string   `json:"status"`
	Views  []string `json:"views"`
}

type ApproveDraftInput struct {
	Description  string `json:"description"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Currency     string `json:"currency"`
}
