package routes

import (
	"encoding/json"
	"strconv"
	"time"

	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

// POST /api/offer (admin)
func CreateOffer(ctx iris.Context) {
	var input OfferInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	offer, buildErr := input.toOffer()
	if buildErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", buildErr.Error(), ctx)
		return
	}
	if err := storage.DB.Create(&offer).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "create", "offer", offer.ID, nil, offer)
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, offer)
}

// GET /api/offer?live=true narrows to offers currently running.
func ListOffers(ctx iris.Context) {
	liveOnly, _ := ctx.URLParamBool("live")

	var offers []models.Offer
	if err := storage.DB.Order("start_date DESC").Find(&offers).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if liveOnly {
		now := time.Now()
		filtered := offers[:0]
		for _, o := range offers {
			if o.Live(now) {
				filtered = append(filtered, o)
			}
		}
		offers = filtered
	}
	utils.JSONData(ctx, offers)
}

// GET /api/offer/{id}
func GetOffer(ctx iris.Context) {
	offer, ok := loadOffer(ctx)
	if !ok {
		return
	}
	utils.JSONData(ctx, offer)
}

// PUT /api/offer/{id} (admin)
func UpdateOffer(ctx iris.Context) {
	offer, ok := loadOffer(ctx)
	if !ok {
		return
	}

	var input OfferInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	replacement, buildErr := input.toOffer()
	if buildErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", buildErr.Error(), ctx)
		return
	}

	before := *offer
	offer.Name = replacement.Name
	offer.Description = replacement.Description
	offer.DiscountType = replacement.DiscountType
	offer.Value = replacement.Value
	offer.StartDate = replacement.StartDate
	offer.EndDate = replacement.EndDate
	offer.RoomTypes = replacement.RoomTypes
	offer.IsActive = replacement.IsActive
	if err := storage.DB.Save(offer).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "update", "offer", offer.ID, before, offer)
	utils.JSONData(ctx, offer)
}

// DELETE /api/offer/{id} (admin)
func DeleteOffer(ctx iris.Context) {
	offer, ok := loadOffer(ctx)
	if !ok {
		return
	}
	if err := storage.DB.Delete(offer).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "delete", "offer", offer.ID, offer, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

func loadOffer(ctx iris.Context) (*models.Offer, bool) {
	id, convErr := strconv.Atoi(ctx.Params().Get("id"))
	if convErr != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	var offer models.Offer
	if err := storage.DB.First(&offer, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &offer, true
}

type OfferInput struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Description  string   `json:"description"`
	DiscountType string   `json:"discountType" validate:"required,oneof=percentage fixed"`
	Value        float64  `json:"value" validate:"required,gt=0"`
	StartDate    string   `json:"startDate" validate:"required"`
	EndDate      string   `json:"endDate" validate:"required"`
	RoomTypes    []string `json:"roomTypes"`
	IsActive     *bool    `json:"isActive"`
}

func (in OfferInput) toOffer() (models.Offer, error) {
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return models.Offer{}, err
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return models.Offer{}, err
	}

	roomTypes := in.RoomTypes
	if roomTypes == nil {
		roomTypes = []string{}
	}
	roomTypesJSON, _ := json.Marshal(roomTypes)

	return models.Offer{
		Name:         in.Name,
		Description:  in.Description,
		DiscountType: in.DiscountType,
		Value:        in.Value,
		StartDate:    start,
		EndDate:      end,
		RoomTypes:    datatypes.JSON(roomTypesJSON),
		IsActive:     in.IsActive,
	}, nil
}
