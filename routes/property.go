package routes

import (
	"net/http"
	"strconv"

	"hotel-dashboard-server/floorplan"
	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/property
func ListProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	status := ctx.URLParamDefault("status", "")

	query := storage.DB.Model(&models.Property{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var properties []models.Property
	query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&properties)

	utils.JSONPage(ctx, properties, page, perPage, total)
}

// GET /api/property/{id}
func GetProperty(ctx iris.Context) {
	property, ok := loadProperty(ctx)
	if !ok {
		return
	}
	utils.JSONData(ctx, property)
}

// GET /api/property/{id}/rooms?search=&type=&status= — the persisted
// counterpart of the draft rooms table, flattened from the stored structure.
func GetPropertyRooms(ctx iris.Context) {
	property, ok := loadProperty(ctx)
	if !ok {
		return
	}
	blocks, err := property.Blocks()
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "corrupt structure document")
		return
	}

	filter := floorplan.Filter{
		Search: ctx.URLParamDefault("search", ""),
		Type:   ctx.URLParamDefault("type", ""),
		Status: floorplan.RoomStatus(ctx.URLParamDefault("status", "")),
	}
	rooms := floorplan.FilterRooms(floorplan.Flatten(blocks), filter)
	ctx.JSON(iris.Map{
		"data":  rooms,
		"meta":  iris.Map{"total": len(rooms)},
		"links": iris.Map{},
	})
}

// PATCH /api/property/{id}/status (admin)
func UpdatePropertyStatus(ctx iris.Context) {
	property, ok := loadProperty(ctx)
	if !ok {
		return
	}

	var input UpdatePropertyStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := *property
	property.Status = input.Status
	if err := storage.DB.Save(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update_status", "property", property.ID, before, property)
	utils.JSONData(ctx, property)
}

// DELETE /api/property/{id} (admin)
func DeleteProperty(ctx iris.Context) {
	property, ok := loadProperty(ctx)
	if !ok {
		return
	}
	if err := storage.DB.Delete(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "delete", "property", property.ID, property, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

func loadProperty(ctx iris.Context) (*models.Property, bool) {
	id, convErr := strconv.Atoi(ctx.Params().Get("id"))
	if convErr != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &property, true
}

type UpdatePropertyStatusInput struct {
	Status string `json:"status" validate:"required,oneof=draft approved archived"`
}
