package routes

import (
	"strconv"

	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/kataras/iris/v12"
)

// POST /api/extra-service (admin)
func CreateExtraService(ctx iris.Context) {
	var input ExtraServiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	service := models.ExtraService{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Unit:        input.Unit,
		Category:    input.Category,
		IsActive:    input.IsActive,
	}
	if err := storage.DB.Create(&service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "create", "extra_service", service.ID, nil, service)
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, service)
}

// GET /api/extra-service
func ListExtraServices(ctx iris.Context) {
	category := ctx.URLParamDefault("category", "")

	query := storage.DB.Model(&models.ExtraService{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.ExtraService
	if err := query.Order("name ASC").Find(&services).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONData(ctx, services)
}

// GET /api/extra-service/{id}
func GetExtraService(ctx iris.Context) {
	service, ok := loadExtraService(ctx)
	if !ok {
		return
	}
	utils.JSONData(ctx, service)
}

// PUT /api/extra-service/{id} (admin)
func UpdateExtraService(ctx iris.Context) {
	service, ok := loadExtraService(ctx)
	if !ok {
		return
	}

	var input ExtraServiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := *service
	service.Name = input.Name
	service.Description = input.Description
	service.Price = input.Price
	service.Unit = input.Unit
	service.Category = input.Category
	service.IsActive = input.IsActive
	if err := storage.DB.Save(service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "update", "extra_service", service.ID, before, service)
	utils.JSONData(ctx, service)
}

// DELETE /api/extra-service/{id} (admin)
func DeleteExtraService(ctx iris.Context) {
	service, ok := loadExtraService(ctx)
	if !ok {
		return
	}
	if err := storage.DB.Delete(service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "delete", "extra_service", service.ID, service, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

func loadExtraService(ctx iris.Context) (*models.ExtraService, bool) {
	id, convErr := strconv.Atoi(ctx.Params().Get("id"))
	if convErr != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	var service models.ExtraService
	if err := storage.DB.First(&service, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &service, true
}

type ExtraServiceInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Unit        string  `json:"unit" validate:"omitempty,oneof=per_person per_hour flat"`
	Category    string  `json:"category"`
	IsActive    *bool   `json:"isActive"`
}
