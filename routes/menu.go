package routes

import (
	"strconv"

	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// POST /api/menu (admin)
func CreateMenu(ctx iris.Context) {
	var input MenuInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	menu := models.Menu{
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		IsActive:    input.IsActive,
	}
	for _, item := range input.Items {
		menu.Items = append(menu.Items, models.MenuItem{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
			Available:   item.Available,
		})
	}
	if err := storage.DB.Create(&menu).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "create", "menu", menu.ID, nil, menu)
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, menu)
}

// GET /api/menu
func ListMenus(ctx iris.Context) {
	menuType := ctx.URLParamDefault("type", "")

	query := storage.DB.Model(&models.Menu{}).Preload("Items")
	if menuType != "" {
		query = query.Where("type = ?", menuType)
	}

	var menus []models.Menu
	if err := query.Order("created_at DESC").Find(&menus).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONData(ctx, menus)
}

// GET /api/menu/{id}
func GetMenu(ctx iris.Context) {
	menu, ok := loadMenu(ctx)
	if !ok {
		return
	}
	utils.JSONData(ctx, menu)
}

// PUT /api/menu/{id} (admin) — replaces the menu and its items wholesale,
// the way the menu form submits.
func UpdateMenu(ctx iris.Context) {
	menu, ok := loadMenu(ctx)
	if !ok {
		return
	}

	var input MenuInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := *menu
	menu.Name = input.Name
	menu.Description = input.Description
	menu.Type = input.Type
	menu.IsActive = input.IsActive

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		menu.Items = nil
		for _, item := range input.Items {
			menu.Items = append(menu.Items, models.MenuItem{
				MenuID:      menu.ID,
				Name:        item.Name,
				Description: item.Description,
				Price:       item.Price,
				Category:    item.Category,
				Available:   item.Available,
			})
		}
		return tx.Save(menu).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "menu", menu.ID, before, menu)
	utils.JSONData(ctx, menu)
}

// DELETE /api/menu/{id} (admin)
func DeleteMenu(ctx iris.Context) {
	menu, ok := loadMenu(ctx)
	if !ok {
		return
	}
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(menu).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "delete", "menu", menu.ID, menu, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

func loadMenu(ctx iris.Context) (*models.Menu, bool) {
	id, convErr := strconv.Atoi(ctx.Params().Get("id"))
	if convErr != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	var menu models.Menu
	if err := storage.DB.Preload("Items").First(&menu, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &menu, true
}

type MenuInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Type        string          `json:"type" validate:"required,oneof=breakfast lunch dinner room_service bar"`
	IsActive    *bool           `json:"isActive"`
	Items       []MenuItemInput `json:"items" validate:"dive"`
}

type MenuItemInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category"`
	Available   *bool   `json:"available"`
}
