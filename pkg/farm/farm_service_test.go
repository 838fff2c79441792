package farm

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/internal/testutil"
	"turmeric-trace/pkg/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var farmerSession = domain.Session{ID: "s1", UserID: "7", Role: domain.RoleFarmer, BackendToken: "backend-jwt"}

func farmJSON(docID, name, location string, owner int) map[string]any {
	return map[string]any{
		"id": 1, "documentId": docID, "farm_name": name, "location": location,
		"area_rai": 4.5, "user": map[string]any{"id": owner},
	}
}

func batchJSON(docID, code, status string, harvests ...map[string]any) map[string]any {
	if harvests == nil {
		harvests = []map[string]any{}
	}
	return map[string]any{
		"id": 2, "documentId": docID, "batch_id": code, "batch_status": status,
		"plant_variety": "Curcuma longa", "planting_date": "2024-01-10",
		"farm":            farmJSON("farm-1", "Alpha", "Chiang Mai", 7),
		"harvest_records": harvests,
	}
}

func newTestService(t *testing.T) (*farmService, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t)
	svc := NewFarmService(NewFarmRepository(backend.Client(t))).(*farmService)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc, backend
}

func TestGetFarmsFiltersAndPaginates(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/farms", http.StatusOK, testutil.List(
		farmJSON("f1", "Alpha", "Chiang Mai", 7),
		farmJSON("f2", "beta", "Lampang", 7),
		farmJSON("f3", "Gamma", "Nan", 7),
		farmJSON("f4", "Delta", "Trang", 7),
	))

	page, err := svc.GetFarms(context.Background(), farmerSession, domain.PageQuery{Page: 1, Limit: 2, Search: "a"})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.PageCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alpha", page.Items[0].FarmName)

	page, err = svc.GetFarms(context.Background(), farmerSession, domain.PageQuery{Search: "nan"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "f3", page.Items[0].ID)

	recs := backend.Requests()
	assert.Equal(t, "7", recs[0].Query.Get("filters[user][id][$eq]"))
	assert.Equal(t, "Bearer backend-jwt", recs[0].Auth)
}

func TestCreateFarmRefetchesOnce(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodPost, "/api/farms", http.StatusCreated, testutil.Item(farmJSON("f9", "New", "Tak", 7)))
	backend.JSON(http.MethodGet, "/api/farms", http.StatusOK, testutil.List(farmJSON("f9", "New", "Tak", 7)))

	page, err := svc.CreateFarm(context.Background(), farmerSession, domain.FarmRequest{FarmName: "New", Location: "Tak"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	assert.Equal(t, 1, backend.Hits(http.MethodPost, "/api/farms"))
	assert.Equal(t, 1, backend.Hits(http.MethodGet, "/api/farms"))

	var body struct {
		Data map[string]any `json:"data"`
	}
	backend.LastBody(t, http.MethodPost, "/api/farms", &body)
	assert.Equal(t, "New", body.Data["farm_name"])
	assert.EqualValues(t, 7, body.Data["user"])
}

func TestUpdateFarmChecksOwnership(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/farms/f1", http.StatusOK, testutil.Item(farmJSON("f1", "Alpha", "Nan", 99)))

	_, err := svc.UpdateFarm(context.Background(), farmerSession, "f1", domain.FarmRequest{FarmName: "x", Location: "y"})
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Zero(t, backend.Hits(http.MethodPut, "/api/farms/f1"))
}

func TestUpdateFarmNotFound(t *testing.T) {
	svc, backend := newTestService(t)

	_, err := svc.UpdateFarm(context.Background(), farmerSession, "missing", domain.FarmRequest{FarmName: "x", Location: "y"})
	assert.ErrorIs(t, err, domain.ErrFarmNotFound)
	assert.Zero(t, backend.Hits(http.MethodPut, "/api/farms/missing"))
}

func TestDeleteFarmRefetchesOnce(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/farms/f1", http.StatusOK, testutil.Item(farmJSON("f1", "Alpha", "Nan", 7)))
	backend.Handle(http.MethodDelete, "/api/farms/f1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	backend.JSON(http.MethodGet, "/api/farms", http.StatusOK, testutil.List())

	page, err := svc.DeleteFarm(context.Background(), farmerSession, "f1")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, backend.Hits(http.MethodDelete, "/api/farms/f1"))
	assert.Equal(t, 1, backend.Hits(http.MethodGet, "/api/farms"))
}

func TestCreateBatchGeneratesCode(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/farms/farm-1", http.StatusOK, testutil.Item(farmJSON("farm-1", "Alpha", "Nan", 7)))
	backend.JSON(http.MethodPost, "/api/batches", http.StatusCreated, testutil.Item(batchJSON("b1", "TMR", domain.BatchStatusPlanted)))
	backend.JSON(http.MethodGet, "/api/batches", http.StatusOK, testutil.List(batchJSON("b1", "TMR", domain.BatchStatusPlanted)))

	_, err := svc.CreateBatch(context.Background(), farmerSession, domain.BatchRequest{
		Farm: "farm-1", PlantVariety: "Curcuma longa", PlantingDate: "2024-05-01",
	})
	require.NoError(t, err)

	var body struct {
		Data map[string]any `json:"data"`
	}
	backend.LastBody(t, http.MethodPost, "/api/batches", &body)
	assert.Regexp(t, regexp.MustCompile(`^TMR-20240501-[0-9A-F]{6}$`), body.Data["batch_id"])
	assert.Equal(t, domain.BatchStatusPlanted, body.Data["batch_status"])
	assert.Nil(t, body.Data["expected_harvest_date"])
	assert.Equal(t, 1, backend.Hits(http.MethodGet, "/api/batches"))
}

func TestGetBatchesStatusFilter(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/batches", http.StatusOK, testutil.List(
		batchJSON("b1", "TMR-1", domain.BatchStatusPlanted),
		batchJSON("b2", "TMR-2", domain.BatchStatusHarvested),
	))

	page, err := svc.GetBatches(context.Background(), farmerSession, domain.PageQuery{Status: "harvested"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "TMR-2", page.Items[0].BatchCode)
	assert.Equal(t, "Alpha", page.Items[0].FarmName)
}

func TestCreateHarvestMarksBatchHarvested(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/batches/b1", http.StatusOK, testutil.Item(batchJSON("b1", "TMR-1", domain.BatchStatusPlanted)))
	backend.JSON(http.MethodPost, "/api/harvest-records", http.StatusCreated, testutil.Item(map[string]any{"id": 3, "documentId": "h1"}))
	backend.JSON(http.MethodPut, "/api/batches/b1", http.StatusOK, testutil.Item(batchJSON("b1", "TMR-1", domain.BatchStatusHarvested)))
	backend.JSON(http.MethodGet, "/api/harvest-records", http.StatusOK, testutil.List(map[string]any{
		"id": 3, "documentId": "h1", "harvest_date": "2024-05-01", "yield_amount": 1.5, "yield_unit": "ton",
	}))

	page, err := svc.CreateHarvest(context.Background(), farmerSession, domain.HarvestRequest{
		Batch: "b1", HarvestDate: "2024-05-01", YieldAmount: 1.5, YieldUnit: "ton",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1500.0, page.Items[0].YieldKg)

	var body struct {
		Data map[string]any `json:"data"`
	}
	backend.LastBody(t, http.MethodPut, "/api/batches/b1", &body)
	assert.Equal(t, domain.BatchStatusHarvested, body.Data["batch_status"])
	assert.Equal(t, 1, backend.Hits(http.MethodGet, "/api/harvest-records"))
}

func TestSubmitToLabRequiresHarvest(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/batches/b1", http.StatusOK, testutil.Item(batchJSON("b1", "TMR-1", domain.BatchStatusPlanted)))

	_, err := svc.SubmitToLab(context.Background(), farmerSession, domain.LabSubmitRequest{Batch: "b1", HarvestRecord: "h1", Lab: "lab-1"})
	assert.ErrorIs(t, err, domain.ErrBatchNotHarvested)
	assert.Zero(t, backend.Hits(http.MethodPost, "/api/lab-submission-records"))
}

func TestSubmitToLab(t *testing.T) {
	svc, backend := newTestService(t)
	harvest := map[string]any{"id": 3, "documentId": "h1", "harvest_date": "2024-04-01", "yield_amount": 100, "yield_unit": "kg"}
	backend.JSON(http.MethodGet, "/api/batches/b1", http.StatusOK, testutil.Item(batchJSON("b1", "TMR-1", domain.BatchStatusHarvested, harvest)))
	backend.JSON(http.MethodGet, "/api/lab-submission-records", http.StatusOK, testutil.List())
	backend.JSON(http.MethodPost, "/api/lab-submission-records", http.StatusCreated, testutil.Item(map[string]any{"id": 4, "documentId": "ls1"}))
	backend.JSON(http.MethodPut, "/api/batches/b1", http.StatusOK, testutil.Item(batchJSON("b1", "TMR-1", domain.BatchStatusSubmittedLab)))
	backend.JSON(http.MethodGet, "/api/batches", http.StatusOK, testutil.List(batchJSON("b1", "TMR-1", domain.BatchStatusSubmittedLab)))

	page, err := svc.SubmitToLab(context.Background(), farmerSession, domain.LabSubmitRequest{Batch: "b1", HarvestRecord: "h1", Lab: "lab-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStatusSubmittedLab, page.Items[0].BatchStatus)

	var body struct {
		Data map[string]any `json:"data"`
	}
	backend.LastBody(t, http.MethodPost, "/api/lab-submission-records", &body)
	assert.Equal(t, domain.LabStatusPending, body.Data["submission_status"])
	assert.Equal(t, "2024-05-01", body.Data["submission_date"])
	assert.Equal(t, "lab-1", body.Data["lab"])
}

func TestSubmitToLabRejectsOpenSubmission(t *testing.T) {
	svc, backend := newTestService(t)
	harvest := map[string]any{"id": 3, "documentId": "h1"}
	backend.JSON(http.MethodGet, "/api/batches/b1", http.StatusOK, testutil.Item(batchJSON("b1", "TMR-1", domain.BatchStatusHarvested, harvest)))
	backend.JSON(http.MethodGet, "/api/lab-submission-records", http.StatusOK, testutil.List(map[string]any{
		"id": 4, "documentId": "ls1", "submission_status": domain.LabStatusPending,
	}))

	_, err := svc.SubmitToLab(context.Background(), farmerSession, domain.LabSubmitRequest{Batch: "b1", HarvestRecord: "h1", Lab: "lab-1"})
	assert.ErrorIs(t, err, domain.ErrBatchAlreadySubmitted)
	assert.Zero(t, backend.Hits(http.MethodPost, "/api/lab-submission-records"))
}

func TestSubmitToFactoryRequiresApproval(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/batches/b1", http.StatusOK, testutil.Item(batchJSON("b1", "TMR-1", domain.BatchStatusSubmittedLab)))
	backend.JSON(http.MethodGet, "/api/lab-submission-records", http.StatusOK, testutil.List(map[string]any{
		"id": 4, "documentId": "ls1", "submission_status": domain.LabStatusRejected,
	}))

	_, err := svc.SubmitToFactory(context.Background(), farmerSession, domain.FactorySubmitRequest{Batch: "b1", Factory: "fac-1", Quantity: 10, Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrBatchNotApproved)
	assert.Zero(t, backend.Hits(http.MethodPost, "/api/factory-submissions"))
}

func TestSubmitToFactory(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/batches/b1", http.StatusOK, testutil.Item(batchJSON("b1", "TMR-1", domain.BatchStatusSubmittedLab)))
	backend.JSON(http.MethodGet, "/api/lab-submission-records", http.StatusOK, testutil.List(map[string]any{
		"id": 4, "documentId": "ls1", "submission_status": domain.LabStatusApproved, "quality_grade": "A",
	}))
	backend.JSON(http.MethodGet, "/api/factory-submissions", http.StatusOK, testutil.List())
	backend.JSON(http.MethodPost, "/api/factory-submissions", http.StatusCreated, testutil.Item(map[string]any{"id": 5, "documentId": "fs1"}))
	backend.JSON(http.MethodPut, "/api/batches/b1", http.StatusOK, testutil.Item(batchJSON("b1", "TMR-1", domain.BatchStatusSubmittedFactory)))
	backend.JSON(http.MethodGet, "/api/batches", http.StatusOK, testutil.List(batchJSON("b1", "TMR-1", domain.BatchStatusSubmittedFactory)))

	_, err := svc.SubmitToFactory(context.Background(), farmerSession, domain.FactorySubmitRequest{Batch: "b1", Factory: "fac-1", Quantity: 10, Unit: "kg"})
	require.NoError(t, err)

	var body struct {
		Data map[string]any `json:"data"`
	}
	backend.LastBody(t, http.MethodPost, "/api/factory-submissions", &body)
	assert.Equal(t, domain.FactoryStatusWaiting, body.Data["submission_status"])
	assert.Equal(t, "ls1", body.Data["lab_submission_record"])
	assert.Equal(t, "fac-1", body.Data["factory"])
	assert.Equal(t, 1, backend.Hits(http.MethodGet, "/api/batches"))
}

func TestNewBatchCode(t *testing.T) {
	code := NewBatchCode(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^TMR-20231231-[0-9A-F]{6}$`, code)
	assert.NotEqual(t, code, NewBatchCode(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestGetDashboard(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/farms", http.StatusOK, testutil.List(farmJSON("f1", "Alpha", "Nan", 7)))
	backend.JSON(http.MethodGet, "/api/batches", http.StatusOK, testutil.List(
		batchJSON("b1", "TMR-1", domain.BatchStatusPlanted),
		batchJSON("b2", "TMR-2", domain.BatchStatusHarvested),
		batchJSON("b3", "TMR-3", domain.BatchStatusHarvested),
	))
	backend.JSON(http.MethodGet, "/api/harvest-records", http.StatusOK, testutil.List(
		map[string]any{"id": 1, "documentId": "h1", "harvest_date": "2024-04-02", "yield_amount": 1, "yield_unit": "ton",
			"batch": map[string]any{"id": 2, "documentId": "b2", "farm": map[string]any{"id": 1, "documentId": "f1", "farm_name": "Alpha"}}},
		map[string]any{"id": 2, "documentId": "h2", "harvest_date": "2024-04-20", "yield_amount": 250, "yield_unit": "kg"},
		map[string]any{"id": 3, "documentId": "h3", "harvest_date": "2024-03-05", "yield_amount": 100.5, "yield_unit": "kg"},
	))

	dash, err := svc.GetDashboard(context.Background(), farmerSession)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.FarmCount)
	assert.Equal(t, 3, dash.BatchCount)
	assert.Equal(t, 1350.5, dash.TotalYieldKg)
	assert.Equal(t, 2.0, lookup(dash.BatchesStatus, domain.BatchStatusHarvested))
	assert.Equal(t, 1250.0, lookup(dash.MonthlyYieldKg, "2024-04"))
	assert.Equal(t, 1000.0, lookup(dash.YieldByFarmKg, "Alpha"))
	assert.Equal(t, 350.5, lookup(dash.YieldByFarmKg, "Unknown"))
	assert.Len(t, dash.RecentHarvests, 3)

	again, err := svc.GetDashboard(context.Background(), farmerSession)
	require.NoError(t, err)
	assert.Equal(t, dash, again)
}

func TestGetDashboardFailsWhenAnyFetchFails(t *testing.T) {
	svc, backend := newTestService(t)
	backend.JSON(http.MethodGet, "/api/farms", http.StatusOK, testutil.List())
	backend.JSON(http.MethodGet, "/api/batches", http.StatusUnauthorized, map[string]any{
		"error": map[string]any{"status": 401, "message": "Missing or invalid credentials"},
	})
	backend.JSON(http.MethodGet, "/api/harvest-records", http.StatusOK, testutil.List())

	_, err := svc.GetDashboard(context.Background(), farmerSession)
	require.Error(t, err)
}

func lookup(points []chart.Point, label string) float64 {
	return chart.Lookup(points, label)
}
