package main

import (
	"log"
	"os"

	"hotel-dashboard-server/routes"
	"hotel-dashboard-server/services"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeDrafts()

	sweeper := services.StartDraftSweeper(storage.Drafts)
	defer sweeper.Stop()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the dashboard frontend
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUser)
		user.Post("/feedback", accessTokenVerifierMiddleware, routes.CreateFeedback)
	}

	draft := app.Party("/api/draft", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		draft.Post("/", routes.CreateDraft)
		draft.Get("/", routes.ListDrafts)
		draft.Get("/{id:string}", routes.GetDraft)
		draft.Delete("/{id:string}", routes.DeleteDraft)
		draft.Post("/{id:string}/blocks", routes.AddDraftBlock)
		draft.Delete("/{id:string}/blocks/{blockID:string}", routes.DeleteDraftBlock)
		draft.Post("/{id:string}/blocks/{blockID:string}/floors", routes.AddDraftFloor)
		draft.Put("/{id:string}/blocks/{blockID:string}/floors/{index:int}", routes.UpdateDraftFloor)
		draft.Delete("/{id:string}/blocks/{blockID:string}/floors/{index:int}", routes.DeleteDraftFloor)
		draft.Post("/{id:string}/rooms/range", routes.ApplyDraftRoomRange)
		draft.Get("/{id:string}/rooms", routes.SearchDraftRooms)
		draft.Post("/{id:string}/approve", routes.ApproveDraft)
	}

	property := app.Party("/api/property", accessTokenVerifierMiddleware)
	{
		property.Get("/", routes.ListProperties)
		property.Get("/{id:uint}", routes.GetProperty)
		property.Get("/{id:uint}/rooms", routes.GetPropertyRooms)
		property.Patch("/{id:uint}/status", utils.AdminOnlyMiddleware, routes.UpdatePropertyStatus)
		property.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteProperty)
	}

	roomType := app.Party("/api/room-type", accessTokenVerifierMiddleware)
	{
		roomType.Get("/", routes.ListRoomTypes)
		roomType.Get("/{id:uint}", routes.GetRoomType)
		roomType.Post("/", utils.AdminOnlyMiddleware, routes.CreateRoomType)
		roomType.Put("/{id:uint}", utils.AdminOnlyMiddleware, routes.UpdateRoomType)
		roomType.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteRoomType)
	}

	fee := app.Party("/api/fee", accessTokenVerifierMiddleware)
	{
		fee.Get("/", routes.ListFees)
		fee.Get("/{id:uint}", routes.GetFee)
		fee.Post("/", utils.AdminOnlyMiddleware, routes.CreateFee)
		fee.Put("/{id:uint}", utils.AdminOnlyMiddleware, routes.UpdateFee)
		fee.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteFee)
	}

	menu := app.Party("/api/menu", accessTokenVerifierMiddleware)
	{
		menu.Get("/", routes.ListMenus)
		menu.Get("/{id:uint}", routes.GetMenu)
		menu.Post("/", utils.AdminOnlyMiddleware, routes.CreateMenu)
		menu.Put("/{id:uint}", utils.AdminOnlyMiddleware, routes.UpdateMenu)
		menu.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteMenu)
	}

	extraService := app.Party("/api/extra-service", accessTokenVerifierMiddleware)
	{
		extraService.Get("/", routes.ListExtraServices)
		extraService.Get("/{id:uint}", routes.GetExtraService)
		extraService.Post("/", utils.AdminOnlyMiddleware, routes.CreateExtraService)
		extraService.Put("/{id:uint}", utils.AdminOnlyMiddleware, routes.UpdateExtraService)
		extraService.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteExtraService)
	}

	offer := app.Party("/api/offer", accessTokenVerifierMiddleware)
	{
		offer.Get("/", routes.ListOffers)
		offer.Get("/{id:uint}", routes.GetOffer)
		offer.Post("/", utils.AdminOnlyMiddleware, routes.CreateOffer)
		offer.Put("/{id:uint}", utils.AdminOnlyMiddleware, routes.UpdateOffer)
		offer.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteOffer)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, routes.AdminChangeUserRole)
		admin.Get("/feedback", routes.AdminListFeedback)
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Println("listening on :" + port)
	app.Listen(":" + port)
}
