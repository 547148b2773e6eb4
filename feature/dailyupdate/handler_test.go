package dailyupdate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/feature/dailyupdate/models"
)

type stubRoster struct {
	members []RosterMember
}

func (s stubRoster) ListActive(context.Context) ([]RosterMember, error) {
	return s.members, nil
}

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
	roster := stubRoster{members: []RosterMember{
		{ID: "m1", Name: "Arun"},
		{ID: "m2", Name: "Bala"},
	}}
	app := fiber.New()
	feature := NewFeature(store, nil, "", roster, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, mock
}

func batchDocument(t *testing.T, entries map[string]*models.LedgerEntry) []byte {
	t.Helper()
	batch := models.Batch{
		Title:  "Daily Update - Admin - 2024-03-15",
		Author: "Admin",
		Date:   "2024-03-15",
		Status: models.StatusCompleted,
	}
	require.NoError(t, batch.SetEntries(entries))
	data, err := json.Marshal(batch)
	require.NoError(t, err)
	return data
}

func TestHandleCreate_PersistsBatch(t *testing.T) {
	app, mock := setupTestApp(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `documents`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body := strings.NewReader(`{
		"author": "Admin",
		"date": "2024-03-15",
		"entries": {
			"m1": {
				"memberId": "m1",
				"memberName": "Arun",
				"date": "2024-03-15",
				"cylinder14_2kg": {"amount": 905, "quantity": 10}
			}
		}
	}`)
	req := httptest.NewRequest("POST", "/daily-updates/", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out["id"])
}

func TestHandleCreate_RequiresEntries(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/daily-updates/", strings.NewReader(`{"author":"Admin"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleGet_RecomputesStoredEntries(t *testing.T) {
	app, mock := setupTestApp(t)

	// Stored with a stale grand total; the response must carry rederived
	// figures.
	stale := sampleEntry()
	raw := batchDocument(t, map[string]*models.LedgerEntry{"m1": stale})
	tampered := strings.Replace(string(raw), `\"grandTotal\":\"9750\"`, `\"grandTotal\":\"1\"`, 1)

	rows := sqlmock.NewRows([]string{"id", "collection", "data", "created_at"}).
		AddRow("b1", Collection, []byte(tampered), time.Now())
	mock.ExpectQuery("SELECT .* FROM `documents`").WillReturnRows(rows)

	resp, err := app.Test(httptest.NewRequest("GET", "/daily-updates/b1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		ID      string                         `json:"id"`
		Entries map[string]*models.LedgerEntry `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "b1", out.ID)
	require.Contains(t, out.Entries, "m1")
	assert.Equal(t, "9750", out.Entries["m1"].GrandTotal.String())
}

func TestHandleGet_NotFound(t *testing.T) {
	app, mock := setupTestApp(t)

	mock.ExpectQuery("SELECT .* FROM `documents`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/daily-updates/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleExport_StreamsWorkbook(t *testing.T) {
	app, mock := setupTestApp(t)

	raw := batchDocument(t, map[string]*models.LedgerEntry{"m1": sampleEntry()})
	rows := sqlmock.NewRows([]string{"id", "collection", "data", "created_at"}).
		AddRow("b1", Collection, raw, time.Now())
	mock.ExpectQuery("SELECT .* FROM `documents`").WillReturnRows(rows)

	resp, err := app.Test(httptest.NewRequest("GET", "/daily-updates/b1/export", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Daily_Updates_2024_03_15.xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	batch, err := ImportBatch(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Contains(t, batch, "Arun")
}

func TestHandleImport_ReconcilesAgainstRoster(t *testing.T) {
	app, mock := setupTestApp(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `documents`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	sheet := writeSheet(t, [][]any{
		{"D MAN", "Date", "Cash"},
		{"ARUN", "2024-03-15", 150},
		{"Visitor", "2024-03-15", 50},
	})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "upload.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sheet)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("author", "Admin"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/daily-updates/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var out struct {
		ID        string                         `json:"id"`
		Entries   map[string]*models.LedgerEntry `json:"entries"`
		Unmatched int                            `json:"unmatched"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.ID)
	require.Len(t, out.Entries, 2)
	require.Contains(t, out.Entries, "m1")
	assert.Equal(t, "Arun", out.Entries["m1"].MemberName)
	assert.Equal(t, 1, out.Unmatched)

	foundPlaceholder := false
	for id := range out.Entries {
		if strings.HasPrefix(id, PlaceholderPrefix) {
			foundPlaceholder = true
		}
	}
	assert.True(t, foundPlaceholder, "unmatched rows keep a placeholder id")
}

func TestHandleImport_RejectsBadWorkbook(t *testing.T) {
	app, _ := setupTestApp(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "upload.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a workbook"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/daily-updates/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleList_SortsByDateDesc(t *testing.T) {
	app, mock := setupTestApp(t)

	older := models.Batch{Title: "Daily Update - Admin - 2024-03-14", Date: "2024-03-14", Status: models.StatusCompleted}
	newer := models.Batch{Title: "Daily Update - Admin - 2024-03-15", Date: "2024-03-15", Status: models.StatusCompleted}
	require.NoError(t, older.SetEntries(nil))
	require.NoError(t, newer.SetEntries(nil))
	olderRaw, _ := json.Marshal(older)
	newerRaw, _ := json.Marshal(newer)

	rows := sqlmock.NewRows([]string{"id", "collection", "data", "created_at"}).
		AddRow("b1", Collection, olderRaw, time.Now()).
		AddRow("b2", Collection, newerRaw, time.Now())
	mock.ExpectQuery("SELECT .* FROM `documents`").WillReturnRows(rows)

	resp, err := app.Test(httptest.NewRequest("GET", "/daily-updates/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out []models.Batch
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, "2024-03-15", out[0].Date)
	assert.Equal(t, "2024-03-14", out[1].Date)
}

func TestHandleCreate_RejectsNullEntry(t *testing.T) {
	app, _ := setupTestApp(t)

	body := strings.NewReader(`{"author":"Admin","entries":{"m1":null}}`)
	req := httptest.NewRequest("POST", "/daily-updates/", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleUpdate_RejectsNullEntry(t *testing.T) {
	app, _ := setupTestApp(t)

	body := strings.NewReader(`{"entries":{"m1":null}}`)
	req := httptest.NewRequest("PUT", "/daily-updates/b1", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
