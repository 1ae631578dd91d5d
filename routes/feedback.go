package routes

import (
	"net/http"

	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// POST /api/feedback — create feedback (auth required)
func CreateFeedback(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input FeedbackInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	fb := models.Feedback{
		UserID:     claims.ID,
		Title:      input.Title,
		Message:    input.Message,
		Rating:     input.Rating,
		Context:    input.Context,
		AppVersion: input.AppVersion,
	}
	if err := storage.DB.Create(&fb).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, &fb)
}

// GET /api/admin/feedback — list feedbacks (admin)
func AdminListFeedback(ctx iris.Context) {
	var list []models.Feedback
	if err := storage.DB.Preload("User").Order("created_at DESC").Find(&list).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONData(ctx, list)
}

type FeedbackInput struct {
	Title      string `json:"title" validate:"max=200"`
	Message    string `json:"message" validate:"required"`
	Rating     *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Context    string `json:"context" validate:"max=200"`
	AppVersion string `json:"appVersion" validate:"max=50"`
}
