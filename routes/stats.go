package routes

import (
	"time"

	"hotel-dashboard-server/floorplan"
	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/stats — headline numbers for the dashboard landing page.
func AdminStats(ctx iris.Context) {
	var draftProperties, approvedProperties int64
	storage.DB.Model(&models.Property{}).Where("status = ?", "draft").Count(&draftProperties)
	storage.DB.Model(&models.Property{}).Where("status = ?", "approved").Count(&approvedProperties)

	var activeOffers int64
	now := time.Now()
	storage.DB.Model(&models.Offer{}).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Count(&activeOffers)

	var menus, roomTypes, extraServices int64
	storage.DB.Model(&models.Menu{}).Count(&menus)
	storage.DB.Model(&models.RoomType{}).Count(&roomTypes)
	storage.DB.Model(&models.ExtraService{}).Count(&extraServices)

	since7 := now.AddDate(0, 0, -7)
	var newProperties7 int64
	storage.DB.Model(&models.Property{}).Where("created_at >= ?", since7).Count(&newProperties7)

	byStatus, byType, totalRooms := roomBreakdown()

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"draft_properties":    draftProperties,
			"approved_properties": approvedProperties,
			"new_properties_7d":   newProperties7,
			"active_offers":       activeOffers,
			"menus":               menus,
			"room_types":          roomTypes,
			"extra_services":      extraServices,
			"total_rooms":         totalRooms,
			"rooms_by_status":     byStatus,
			"rooms_by_type":       byType,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

// roomBreakdown walks every approved property's structure document and
// tallies rooms by status and type. Properties with a corrupt document are
// skipped rather than failing the whole dashboard.
func roomBreakdown() (byStatus map[string]int, byType map[string]int, total int) {
	byStatus = map[string]int{}
	byType = map[string]int{}

	var properties []models.Property
	storage.DB.Where("status = ?", "approved").Find(&properties)

	for i := range properties {
		blocks, err := properties[i].Blocks()
		if err != nil {
			continue
		}
		for _, fr := range floorplan.Flatten(blocks) {
			byStatus[string(fr.Room.Status)]++
			if fr.Room.Type != "" {
				byType[fr.Room.Type]++
			}
			total++
		}
	}
	return byStatus, byType, total
}

// GET /api/admin/activity — most recent audit entries.
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"data": logs, "meta": iris.Map{}, "links": iris.Map{}})
}
