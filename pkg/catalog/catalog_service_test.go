package catalog

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"testing"

	"turmeric-trace/domain"
	"turmeric-trace/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const code = "TMR-20240110-ABC123"

func newTestService(t *testing.T) (CatalogService, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t)
	return NewCatalogService(NewCatalogRepository(backend.Client(t)), "https://trace.example.com"), backend
}

func seedTrace(backend *testutil.Backend) {
	backend.Handle(http.MethodGet, "/api/batches", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filters[batch_id][$eq]") != code {
			testutil.WriteJSON(w, http.StatusOK, testutil.List())
			return
		}
		testutil.WriteJSON(w, http.StatusOK, testutil.List(map[string]any{
			"id": 1, "documentId": "b1", "batch_id": code, "batch_status": "Submitted to Factory",
			"plant_variety": "Curcuma longa", "planting_date": "2024-01-10",
			"farm": map[string]any{"id": 2, "documentId": "f1", "farm_name": "Alpha", "location": "Nan", "certification": "GAP"},
		}))
	})
	backend.JSON(http.MethodGet, "/api/harvest-records", http.StatusOK, testutil.List(
		map[string]any{"id": 3, "documentId": "h1", "harvest_date": "2024-09-01", "yield_amount": 1.2, "yield_unit": "ton"},
	))
	backend.JSON(http.MethodGet, "/api/lab-submission-records", http.StatusOK, testutil.List(
		map[string]any{"id": 4, "documentId": "l1", "submission_status": "Approved", "quality_grade": "A",
			"submission_date": "2024-09-05", "test_date": "2024-09-08", "curcuminoid_content": 5.1},
	))
	backend.JSON(http.MethodGet, "/api/factory-submissions", http.StatusOK, testutil.List(
		map[string]any{"id": 5, "documentId": "s1", "submission_status": "Processed", "submission_date": "2024-09-10",
			"quantity": 1000, "unit": "kg", "factory": map[string]any{"id": 6, "documentId": "fac-1", "factory_name": "Golden Mill"}},
	))
	backend.JSON(http.MethodGet, "/api/factory-processings", http.StatusOK, testutil.List(
		map[string]any{"id": 7, "documentId": "p1", "product_name": "Turmeric powder", "processing_method": "Milled",
			"processing_date": "2024-09-20", "output_quantity": 800, "output_unit": "kg", "processing_status": "Completed",
			"factory":            map[string]any{"id": 6, "documentId": "fac-1", "factory_name": "Golden Mill"},
			"factory_submission": map[string]any{"id": 5, "documentId": "s1", "batch": map[string]any{"id": 1, "documentId": "b1", "batch_id": code}}},
	))
}

func TestTrace(t *testing.T) {
	svc, backend := newTestService(t)
	seedTrace(backend)

	res, err := svc.Trace(context.Background(), " "+code+" ")
	require.NoError(t, err)

	assert.Equal(t, code, res.BatchCode)
	require.NotNil(t, res.Farm)
	assert.Equal(t, "Alpha", res.Farm.FarmName)
	assert.Len(t, res.Harvests, 1)
	assert.Equal(t, 1200.0, res.Harvests[0].YieldKg)
	assert.Len(t, res.LabResults, 1)
	assert.Len(t, res.Submissions, 1)
	assert.Len(t, res.Products, 1)
	assert.Equal(t, "https://trace.example.com/trace/"+code, res.TraceURL)

	stages := make([]string, 0, len(res.Timeline))
	for _, e := range res.Timeline {
		stages = append(stages, e.Stage)
	}
	assert.Equal(t, []string{StagePlanting, StageHarvest, StageLab, StageFactory, StageProcessing}, stages)
	assert.Equal(t, "1200 kg", res.Timeline[1].Detail)
	assert.Equal(t, "Approved, grade A", res.Timeline[2].Detail)
	assert.Equal(t, "Sent to Golden Mill", res.Timeline[3].Title)

	for _, r := range backend.Requests() {
		assert.Empty(t, r.Auth)
	}
	lookups := backend.Requests()
	for _, r := range lookups[1:] {
		if r.Path == "/api/factory-processings" {
			assert.Equal(t, "b1", r.Query.Get("filters[factory_submission][batch][documentId][$eq]"))
		}
	}
}

func TestTraceUnknownBatch(t *testing.T) {
	svc, backend := newTestService(t)
	seedTrace(backend)

	_, err := svc.Trace(context.Background(), "TMR-00000000-000000")
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
	assert.Equal(t, 1, backend.TotalHits())

	_, err = svc.Trace(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
	assert.Equal(t, 1, backend.TotalHits())
}

func TestTraceFailsWhenAnyLookupFails(t *testing.T) {
	svc, backend := newTestService(t)
	seedTrace(backend)
	backend.JSON(http.MethodGet, "/api/lab-submission-records", http.StatusInternalServerError, map[string]any{
		"error": map[string]any{"status": 500, "message": "boom"},
	})

	_, err := svc.Trace(context.Background(), code)
	require.Error(t, err)
}

func TestSortTimelineUndatedLast(t *testing.T) {
	events := sortTimeline([]domain.TraceEvent{
		{Stage: "a", Date: ""},
		{Stage: "b", Date: "2024-02-01"},
		{Stage: "c", Date: "2024-01-01"},
	})
	assert.Equal(t, "c", events[0].Stage)
	assert.Equal(t, "b", events[1].Stage)
	assert.Equal(t, "a", events[2].Stage)
}

func TestGetCatalog(t *testing.T) {
	svc, backend := newTestService(t)
	seedTrace(backend)

	page, err := svc.GetCatalog(context.Background(), domain.PageQuery{Search: "golden"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	item := page.Items[0]
	assert.Equal(t, "Turmeric powder", item.ProductName)
	assert.Equal(t, code, item.BatchCode)
	assert.Equal(t, "https://trace.example.com/trace/"+code, item.TraceURL)

	var listReq testutil.Recorded
	for _, r := range backend.Requests() {
		if r.Path == "/api/factory-processings" {
			listReq = r
		}
	}
	assert.Equal(t, domain.ProcessingStatusCompleted, listReq.Query.Get("filters[processing_status][$eq]"))
}

func TestTraceQR(t *testing.T) {
	svc, backend := newTestService(t)
	seedTrace(backend)

	img, err := svc.TraceQR(context.Background(), code)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, qrSize, decoded.Bounds().Dx())

	_, err = svc.TraceQR(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
}

func TestTraceURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3000/trace/TMR%2F1", TraceURL("http://localhost:3000/", "TMR/1"))
}
