package member

import (
	"encoding/json"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/MohamedAbuthar/gas/core/docstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	store := docstore.NewFromDB(gormDB)
	app := fiber.New()
	feature := NewFeature(store, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, mock
}

func memberRows(t *testing.T, payloads ...map[string]any) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "collection", "data", "created_at"})
	for i, p := range payloads {
		data, err := json.Marshal(p)
		require.NoError(t, err)
		rows.AddRow("id-"+string(rune('a'+i)), Collection, data, time.Now())
	}
	return rows
}

func TestHandleList_SortsByJoinDateDesc(t *testing.T) {
	app, mock := setupTestApp(t)

	mock.ExpectQuery("SELECT .* FROM `documents`").WillReturnRows(memberRows(t,
		map[string]any{"name": "Ponnusamy", "joinDate": "2023-01-10", "status": "active"},
		map[string]any{"name": "Moorthy", "joinDate": "2024-06-01", "status": "active"},
	))

	resp, err := app.Test(httptest.NewRequest("GET", "/members/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var records []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, "Moorthy", records[0]["name"])
	assert.Equal(t, "Ponnusamy", records[1]["name"])
}

func TestHandleCreate(t *testing.T) {
	app, mock := setupTestApp(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `documents`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body := strings.NewReader(`{"name":"Rajendran","email":"raj@example.com","status":"active"}`)
	req := httptest.NewRequest("POST", "/members/", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out["id"])
}

func TestHandleCreate_RequiresName(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/members/", strings.NewReader(`{"email":"x@y.z"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleGet_NotFound(t *testing.T) {
	app, mock := setupTestApp(t)

	mock.ExpectQuery("SELECT .* FROM `documents`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/members/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleDelete_NotFound(t *testing.T) {
	app, mock := setupTestApp(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `documents`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	resp, err := app.Test(httptest.NewRequest("DELETE", "/members/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
