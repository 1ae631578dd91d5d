package routes

import (
	"encoding/json"
	"strconv"

	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/kataras/iris/v12"
)

// POST /api/room-type (admin)
func CreateRoomType(ctx iris.Context) {
	var input RoomTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Ensure arrays are never null
	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	roomType := models.RoomType{
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Capacity:    input.Capacity,
		Amenities:   string(amenitiesJSON),
		IsActive:    input.IsActive,
	}
	if err := storage.DB.Create(&roomType).Error; err != nil {
		utils.JSONError(ctx, iris.StatusConflict, "duplicate_name", "A room type with this name already exists")
		return
	}
	utils.Audit(ctx, "create", "room_type", roomType.ID, nil, roomType)
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, &roomType)
}

// GET /api/room-type
func ListRoomTypes(ctx iris.Context) {
	var roomTypes []models.RoomType
	if err := storage.DB.Order("name ASC").Find(&roomTypes).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONData(ctx, roomTypes)
}

// GET /api/room-type/{id}
func GetRoomType(ctx iris.Context) {
	roomType, ok := loadRoomType(ctx)
	if !ok {
		return
	}
	utils.JSONData(ctx, roomType)
}

// PUT /api/room-type/{id} (admin)
func UpdateRoomType(ctx iris.Context) {
	roomType, ok := loadRoomType(ctx)
	if !ok {
		return
	}

	var input RoomTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	before := *roomType
	roomType.Name = input.Name
	roomType.Description = input.Description
	roomType.BasePrice = input.BasePrice
	roomType.Capacity = input.Capacity
	roomType.Amenities = string(amenitiesJSON)
	roomType.IsActive = input.IsActive
	if err := storage.DB.Save(roomType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "update", "room_type", roomType.ID, before, roomType)
	utils.JSONData(ctx, roomType)
}

// DELETE /api/room-type/{id} (admin)
func DeleteRoomType(ctx iris.Context) {
	roomType, ok := loadRoomType(ctx)
	if !ok {
		return
	}
	if err := storage.DB.Delete(roomType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "delete", "room_type", roomType.ID, roomType, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

func loadRoomType(ctx iris.Context) (*models.RoomType, bool) {
	id, convErr := strconv.Atoi(ctx.Params().Get("id"))
	if convErr != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	var roomType models.RoomType
	if err := storage.DB.First(&roomType, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &roomType, true
}

type RoomTypeInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"basePrice" validate:"gte=0"`
	Capacity    int      `json:"capacity" validate:"gte=0"`
	Amenities   []string `json:"amenities"`
	IsActive    *bool    `json:"isActive"`
}
