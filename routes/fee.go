package routes

import (
	"strconv"

	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/kataras/iris/v12"
)

// POST /api/fee (admin)
func CreateFee(ctx iris.Context) {
	var input FeeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	fee := models.Fee{
		Name:        input.Name,
		Description: input.Description,
		Amount:      input.Amount,
		Currency:    input.Currency,
		ChargeType:  input.ChargeType,
		Taxable:     input.Taxable,
		IsActive:    input.IsActive,
	}
	if err := storage.DB.Create(&fee).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "create", "fee", fee.ID, nil, fee)
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, fee)
}

// GET /api/fee
func ListFees(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	var total int64
	storage.DB.Model(&models.Fee{}).Count(&total)

	var fees []models.Fee
	storage.DB.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&fees)

	utils.JSONPage(ctx, fees, page, perPage, total)
}

// GET /api/fee/{id}
func GetFee(ctx iris.Context) {
	fee, ok := loadFee(ctx)
	if !ok {
		return
	}
	utils.JSONData(ctx, fee)
}

// PUT /api/fee/{id} (admin)
func UpdateFee(ctx iris.Context) {
	fee, ok := loadFee(ctx)
	if !ok {
		return
	}

	var input FeeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := *fee
	fee.Name = input.Name
	fee.Description = input.Description
	fee.Amount = input.Amount
	fee.Currency = input.Currency
	fee.ChargeType = input.ChargeType
	fee.Taxable = input.Taxable
	fee.IsActive = input.IsActive
	if err := storage.DB.Save(fee).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "update", "fee", fee.ID, before, fee)
	utils.JSONData(ctx, fee)
}

// DELETE /api/fee/{id} (admin)
func DeleteFee(ctx iris.Context) {
	fee, ok := loadFee(ctx)
	if !ok {
		return
	}
	if err := storage.DB.Delete(fee).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "delete", "fee", fee.ID, fee, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

func loadFee(ctx iris.Context) (*models.Fee, bool) {
	id, convErr := strconv.Atoi(ctx.Params().Get("id"))
	if convErr != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	var fee models.Fee
	if err := storage.DB.First(&fee, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &fee, true
}

type FeeInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,max=10"`
	ChargeType  string  `json:"chargeType" validate:"required,oneof=per_stay per_night per_person"`
	Taxable     bool    `json:"taxable"`
	IsActive    *bool   `json:"isActive"`
}
