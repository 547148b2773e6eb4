package role

import (
	"encoding/json"
	"net/http/httptest"
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

	app := fiber.New()
	feature := NewFeature(docstore.NewFromDB(gormDB), zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, mock
}

func TestHandleList_SortsByName(t *testing.T) {
	app, mock := setupTestApp(t)

	rows := sqlmock.NewRows([]string{"id", "collection", "data", "created_at"}).
		AddRow("id-1", Collection, []byte(`{"name":"Supervisor","permissions":[]}`), time.Now()).
		AddRow("id-2", Collection, []byte(`{"name":"delivery","permissions":[]}`), time.Now())
	mock.ExpectQuery("SELECT .* FROM `documents`").WillReturnRows(rows)

	resp, err := app.Test(httptest.NewRequest("GET", "/roles/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var records []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 2)
	// Case-insensitive name ordering.
	assert.Equal(t, "delivery", records[0]["name"])
	assert.Equal(t, "Supervisor", records[1]["name"])
}

func TestHandleCreate_RequiresName(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/roles/", strings.NewReader(`{"description":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleGet_NotFound(t *testing.T) {
	app, mock := setupTestApp(t)

	mock.ExpectQuery("SELECT .* FROM `documents`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/roles/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
