package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"hotel-dashboard-server/floorplan"
	"hotel-dashboard-server/storage"
	"hotel-dashboard-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildDraftTestApp creates a minimal Iris app with the draft routes, a JWT
// verifier and an in-process draft store (no Redis, no database).
func buildDraftTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	storage.Drafts = storage.NewDraftStore(false)

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	draft := app.Party("/api/draft", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		draft.Post("/", CreateDraft)
		draft.Get("/", ListDrafts)
		draft.Get("/{id:string}", GetDraft)
		draft.Delete("/{id:string}", DeleteDraft)
		draft.Post("/{id:string}/blocks", AddDraftBlock)
		draft.Delete("/{id:string}/blocks/{blockID:string}", DeleteDraftBlock)
		draft.Post("/{id:string}/blocks/{blockID:string}/floors", AddDraftFloor)
		draft.Put("/{id:string}/blocks/{blockID:string}/floors/{index:int}", UpdateDraftFloor)
		draft.Delete("/{id:string}/blocks/{blockID:string}/floors/{index:int}", DeleteDraftFloor)
		draft.Post("/{id:string}/rooms/range", ApplyDraftRoomRange)
		draft.Get("/{id:string}/rooms", SearchDraftRooms)
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func signDraftTestToken(userID uint) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: userID, Role: "staff"})
	return string(token)
}

func doJSON(t *testing.T, app *iris.Application, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

// seedDraft creates a draft with one block directly in the store and returns
// the draft and block ids.
func seedDraft(t *testing.T, userID uint, rooms []floorplan.Room) (string, string) {
	t.Helper()
	draft := &storage.Draft{
		ID:     fmt.Sprintf("draft-%d", userID),
		UserID: userID,
		Name:   "Test Hotel",
		Blocks: []floorplan.Block{
			{
				ID:        "blk-1",
				BlockName: "Main",
				Floors: []floorplan.Floor{
					{
						ID:       "flr-1",
						Name:     "Ground",
						Level:    1,
						Sections: []floorplan.Section{{Name: "East", RoomFrom: "90", RoomTo: "120"}},
						Rooms:    rooms,
					},
				},
			},
		},
	}
	if err := storage.Drafts.Put(context.Background(), draft); err != nil {
		t.Fatalf("seed draft: %v", err)
	}
	return draft.ID, "blk-1"
}

func storageRooms() []floorplan.Room {
	return []floorplan.Room{
		{ID: "r-95", Number: "95", SectionName: "East", Type: "Storage", Status: floorplan.StatusAvailable},
		{ID: "r-101", Number: "101", SectionName: "East", Type: "Storage", Status: floorplan.StatusAvailable},
		{ID: "r-105", Number: "105", SectionName: "East", Type: "Storage", Status: floorplan.StatusAvailable},
		{ID: "r-110", Number: "110", SectionName: "East", Type: "Storage", Status: floorplan.StatusAvailable},
		{ID: "r-115", Number: "115", SectionName: "East", Type: "Storage", Status: floorplan.StatusAvailable},
	}
}

func TestDraftRoutesRequireToken(t *testing.T) {
	app := buildDraftTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/draft", "", CreateDraftInput{Name: "X"})
	if resp.Code == http.StatusOK || resp.Code == http.StatusCreated {
		t.Fatalf("expected auth failure without token, got %d", resp.Code)
	}
}

func TestDraftOwnershipEnforced(t *testing.T) {
	app := buildDraftTestApp()
	draftID, _ := seedDraft(t, 1, nil)

	resp := doJSON(t, app, http.MethodGet, "/api/draft/"+draftID, signDraftTestToken(2), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign draft, got %d", resp.Code)
	}
}

func TestListDraftsOnlyOwn(t *testing.T) {
	app := buildDraftTestApp()
	seedDraft(t, 1, nil)
	other := &storage.Draft{ID: "draft-other", UserID: 2, Name: "Other Hotel"}
	if err := storage.Drafts.Put(context.Background(), other); err != nil {
		t.Fatalf("seed foreign draft: %v", err)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/draft", signDraftTestToken(1), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list drafts: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Data []storage.Draft `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].UserID != 1 {
		t.Fatalf("expected only the caller's draft, got %+v", body.Data)
	}
}

func TestCreateDraftAndAddBlock(t *testing.T) {
	app := buildDraftTestApp()
	token := signDraftTestToken(1)

	resp := doJSON(t, app, http.MethodPost, "/api/draft", token, CreateDraftInput{Name: "Seaside Hotel"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create draft: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		Data storage.Draft `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Data.ID == "" {
		t.Fatal("draft id missing")
	}

	resp = doJSON(t, app, http.MethodPost, "/api/draft/"+created.Data.ID+"/blocks", token, BlockInput{BlockName: "North Wing", HasRooms: true})
	if resp.Code != http.StatusCreated {
		t.Fatalf("add block: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	draft, err := storage.Drafts.Get(context.Background(), created.Data.ID)
	if err != nil {
		t.Fatalf("reload draft: %v", err)
	}
	if len(draft.Blocks) != 1 || draft.Blocks[0].BlockName != "North Wing" {
		t.Fatalf("block not saved: %+v", draft.Blocks)
	}
	if draft.Blocks[0].ID == "" {
		t.Fatal("block id not generated")
	}
}

func TestAddFloorDuplicateLevelConflict(t *testing.T) {
	app := buildDraftTestApp()
	token := signDraftTestToken(1)
	draftID, blockID := seedDraft(t, 1, nil)

	floorsPath := "/api/draft/" + draftID + "/blocks/" + blockID + "/floors"

	resp := doJSON(t, app, http.MethodPost, floorsPath, token, FloorInput{Name: "First", Level: 2})
	if resp.Code != http.StatusCreated {
		t.Fatalf("add floor: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	// Same level again -> 409 with the level number in the message.
	resp = doJSON(t, app, http.MethodPost, floorsPath, token, FloorInput{Name: "Mezzanine", Level: 2})
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate level: expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
	var errBody struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody.Error != "duplicate_level" {
		t.Fatalf("expected duplicate_level code, got %q", errBody.Error)
	}
	if !bytes.Contains([]byte(errBody.Message), []byte("2")) {
		t.Fatalf("error message must reference the level: %q", errBody.Message)
	}

	// Collection unchanged by the rejected add.
	draft, _ := storage.Drafts.Get(context.Background(), draftID)
	if len(draft.Blocks[0].Floors) != 2 {
		t.Fatalf("expected 2 floors after rejected add, got %d", len(draft.Blocks[0].Floors))
	}
}

func TestUpdateAndDeleteFloor(t *testing.T) {
	app := buildDraftTestApp()
	token := signDraftTestToken(1)
	draftID, blockID := seedDraft(t, 1, nil)

	base := "/api/draft/" + draftID + "/blocks/" + blockID + "/floors"

	resp := doJSON(t, app, http.MethodPut, base+"/0", token, FloorInput{Name: "Lobby", Level: 1})
	if resp.Code != http.StatusOK {
		t.Fatalf("update floor: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	draft, _ := storage.Drafts.Get(context.Background(), draftID)
	if draft.Blocks[0].Floors[0].Name != "Lobby" {
		t.Fatalf("floor not updated: %+v", draft.Blocks[0].Floors[0])
	}
	if draft.Blocks[0].Floors[0].ID != "flr-1" {
		t.Fatalf("floor id must survive edits, got %q", draft.Blocks[0].Floors[0].ID)
	}

	resp = doJSON(t, app, http.MethodDelete, base+"/0", token, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete floor: expected 204, got %d", resp.Code)
	}
	draft, _ = storage.Drafts.Get(context.Background(), draftID)
	if len(draft.Blocks[0].Floors) != 0 {
		t.Fatalf("floor not deleted: %+v", draft.Blocks[0].Floors)
	}
}

func TestApplyRoomRangeOverHTTP(t *testing.T) {
	app := buildDraftTestApp()
	token := signDraftTestToken(1)
	draftID, _ := seedDraft(t, 1, storageRooms())

	rangePath := "/api/draft/" + draftID + "/rooms/range"
	payload := RoomRangeInput{From: "101", To: "110", Type: "Office", Status: "Occupied", Views: []string{"City View"}}

	resp := doJSON(t, app, http.MethodPost, rangePath, token, payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("range apply: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Data struct {
			Updated int `json:"updated"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Data.Updated != 3 {
		t.Fatalf("expected 3 rooms updated, got %d", body.Data.Updated)
	}

	draft, _ := storage.Drafts.Get(context.Background(), draftID)
	for _, fr := range floorplan.Flatten(draft.Blocks) {
		switch fr.Room.ID {
		case "r-101", "r-105", "r-110":
			if fr.Room.Type != "Office" || fr.Room.Status != floorplan.StatusOccupied {
				t.Fatalf("room %s not updated: %+v", fr.Room.ID, fr.Room)
			}
		case "r-95", "r-115":
			if fr.Room.Type != "Storage" || fr.Room.Status != floorplan.StatusAvailable {
				t.Fatalf("room %s outside range was modified: %+v", fr.Room.ID, fr.Room)
			}
		}
	}

	// Reapplying the identical update is a no-op on views.
	resp = doJSON(t, app, http.MethodPost, rangePath, token, payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("second apply: expected 200, got %d", resp.Code)
	}
	draft, _ = storage.Drafts.Get(context.Background(), draftID)
	for _, fr := range floorplan.Flatten(draft.Blocks) {
		seen := map[string]int{}
		for _, v := range fr.Room.Views {
			seen[v]++
			if seen[v] > 1 {
				t.Fatalf("room %s views duplicated: %v", fr.Room.ID, fr.Room.Views)
			}
		}
	}
}

func TestApplyRoomRangeInvalidTokenRejected(t *testing.T) {
	app := buildDraftTestApp()
	token := signDraftTestToken(1)
	draftID, _ := seedDraft(t, 1, storageRooms())

	resp := doJSON(t, app, http.MethodPost, "/api/draft/"+draftID+"/rooms/range", token,
		RoomRangeInput{From: "abc", To: "110", Type: "Office"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid range token, got %d: %s", resp.Code, resp.Body.String())
	}

	// No room was mutated.
	draft, _ := storage.Drafts.Get(context.Background(), draftID)
	for _, fr := range floorplan.Flatten(draft.Blocks) {
		if fr.Room.Type != "Storage" {
			t.Fatalf("room %s mutated by aborted apply: %+v", fr.Room.ID, fr.Room)
		}
	}
}

func TestSearchDraftRooms(t *testing.T) {
	app := buildDraftTestApp()
	token := signDraftTestToken(1)
	rooms := storageRooms()
	rooms[1].Views = []string{"Sea View"}
	rooms[2].Type = "Suite"
	draftID, _ := seedDraft(t, 1, rooms)

	base := "/api/draft/" + draftID + "/rooms"

	resp := doJSON(t, app, http.MethodGet, base+"?search=sea+view", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", resp.Code)
	}
	var body struct {
		Data []floorplan.FlatRoom `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Room.ID != "r-101" {
		t.Fatalf("view search failed: %+v", body.Data)
	}

	resp = doJSON(t, app, http.MethodGet, base+"?type=Suite", token, nil)
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Room.ID != "r-105" {
		t.Fatalf("type filter failed: %+v", body.Data)
	}
}
