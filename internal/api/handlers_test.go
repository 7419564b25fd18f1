package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"estates/server/config"
	"estates/server/internal/database"
	"estates/server/internal/finance"
	"estates/server/internal/models"
	"estates/server/internal/queue"
)

type testServer struct {
	router  *gin.Engine
	handler *Handler
	db      *database.Database
	cfg     *config.Config
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.Server.UploadDir = t.TempDir()

	db, err := database.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	handler := NewHandler(cfg, db, logger)
	router := gin.New()
	SetupRoutes(router, handler)
	return &testServer{router: router, handler: handler, db: db, cfg: cfg}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// createBuilding stores a building worth 1,000,000 with 100,000 income and 20,000 costs.
func (s *testServer) createBuilding(t *testing.T, name string) models.Building {
	b := models.Building{
		Name:             name,
		Address:          "Vestergade 1, Aarhus",
		TotalArea:        200,
		UnitCount:        4,
		AcquisitionPrice: 1000000,
		RentalIncome:     100000,
		TotalCosts:       20000,
	}
	require.NoError(t, s.db.CreateBuilding(&b))
	return b
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCreateBuilding_LenientNumbers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/buildings", `{
		"name": "Østergade 4",
		"acquisition_price": "2500000",
		"rental_income": 180000,
		"total_area": "abc",
		"unit_count": "6",
		"costs": {"insurance": "4000", "water": 2500, "unknown": 99}
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var b models.Building
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.NotZero(t, b.ID)
	assert.Equal(t, 2500000.0, b.AcquisitionPrice)
	assert.Equal(t, 0.0, b.TotalArea)
	assert.Equal(t, 6, b.UnitCount)
	assert.Equal(t, 6500.0, b.TotalCosts)

	stored, err := s.db.GetBuilding(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, stored.Costs.Insurance)
}

func TestCreateBuilding_Invalid(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/buildings", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/buildings", `{"acquisition_price": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildingCRUD(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodGet, "/api/buildings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Building
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = s.do(http.MethodPut, "/api/buildings/"+itoa(b.ID), map[string]interface{}{"rental_income": 120000})
	require.Equal(t, http.StatusOK, w.Code)
	updated, err := s.db.GetBuilding(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 120000.0, updated.RentalIncome)
	assert.Equal(t, "Vestergade 1", updated.Name)

	w = s.do(http.MethodDelete, "/api/buildings/"+itoa(b.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodDelete, "/api/buildings/"+itoa(b.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/api/buildings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBuilding_EchoedCostsKeepManualTotal(t *testing.T) {
	s := newTestServer(t)
	b := models.Building{Name: "Vestergade 1", TotalCosts: 20000, Costs: models.CostItems{Water: 100, Insurance: 200}}
	require.NoError(t, s.db.CreateBuilding(&b))
	path := "/api/buildings/" + itoa(b.ID)

	w := s.do(http.MethodPut, path, map[string]interface{}{
		"rental_income": 90000,
		"costs":         map[string]interface{}{"water": 100, "insurance": "200"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	stored, err := s.db.GetBuilding(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 20000.0, stored.TotalCosts)

	w = s.do(http.MethodPut, path, map[string]interface{}{"costs": map[string]interface{}{"water": 500}})
	require.Equal(t, http.StatusOK, w.Code)
	stored, err = s.db.GetBuilding(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 700.0, stored.TotalCosts)
}

func TestGetMetrics(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Financing finance.Financing `json:"financing"`
		Metrics   finance.Metrics   `json:"metrics"`
		KPIs      finance.KPIs      `json:"kpis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, finance.DefaultFinancing, resp.Financing)
	assert.InDelta(t, 800000, resp.Metrics.LoanAmount, 1e-6)
	assert.InDelta(t, 36000, resp.Metrics.AnnualInterest, 1e-6)
	assert.InDelta(t, 44000, resp.Metrics.CashFlow, 1e-6)
	require.NotNil(t, resp.Metrics.CashOnCash)
	assert.InDelta(t, 22, *resp.Metrics.CashOnCash, 1e-9)
	require.NotNil(t, resp.KPIs.NetYield)
	assert.InDelta(t, 8, *resp.KPIs.NetYield, 1e-9)
}

func TestMetrics_FullLeverageIsNull(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodPut, "/api/finance/overrides/"+itoa(b.ID), map[string]interface{}{"leverage_pct": 100})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	metrics := decode(t, w)["metrics"].(map[string]interface{})
	assert.Nil(t, metrics["cash_on_cash"])
	assert.Equal(t, 0.0, metrics["down_payment"])
}

func TestScenarios_CachedAndInvalidated(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/scenarios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var grid finance.Grid
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	assert.Equal(t, finance.DefaultRateAxis(), grid.RateValues)
	assert.Equal(t, finance.DefaultLeverageAxis(), grid.LeverageValues)
	assert.InDelta(t, 80000, grid.ProfitBeforeInterest, 1e-6)

	_, cached := s.handler.cache.Get(context.Background(), "scenarios:"+itoa(b.ID))
	assert.True(t, cached)

	w = s.do(http.MethodPut, "/api/buildings/"+itoa(b.ID), map[string]interface{}{"rental_income": 150000})
	require.Equal(t, http.StatusOK, w.Code)
	_, cached = s.handler.cache.Get(context.Background(), "scenarios:"+itoa(b.ID))
	assert.False(t, cached)

	w = s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/scenarios", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	assert.InDelta(t, 130000, grid.ProfitBeforeInterest, 1e-6)
}

func TestLookupScenario_Snaps(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/scenarios/lookup?rate=5.2&leverage=72", nil)
	require.Equal(t, http.StatusOK, w.Code)

	result := decode(t, w)["result"].(map[string]interface{})
	assert.Equal(t, 5.0, result["used_rate"])
	assert.Equal(t, 70.0, result["used_leverage"])
	// loan 700,000 at 5% against 80,000 profit
	assert.InDelta(t, 45000, result["cash_flow"].(float64), 1e-6)
}

func TestLookupScenario_NoResult(t *testing.T) {
	s := newTestServer(t)
	s.cfg.Finance.RateStep = 0
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/scenarios/lookup?rate=5&leverage=70", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Contains(t, resp, "result")
	assert.Nil(t, resp["result"])
}

func TestGetStress_DoesNotSnap(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/stress?rate=400&leverage=80", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var m finance.Metrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, 400.0, m.RatePct)
	assert.InDelta(t, 3200000, m.AnnualInterest, 1e-6)
	assert.InDelta(t, -3120000, m.CashFlow, 1e-6)

	// leverage falls back to the resolved financing
	w = s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/stress?rate=6", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, 80.0, m.LeveragePct)
	assert.InDelta(t, 48000, m.AnnualInterest, 1e-6)
}

func TestGetProjection(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/projection?years=3&inflation=2&rate=5&leverage=50", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Params finance.ProjectionParams `json:"params"`
		Years  []finance.ProjectionYear `json:"years"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Years, 3)
	assert.Equal(t, 3, resp.Params.Years)

	first, third := resp.Years[0], resp.Years[2]
	assert.InDelta(t, 100000, first.RentalIncome, 1e-6)
	assert.InDelta(t, 25000, first.InterestExpense, 1e-6)
	assert.InDelta(t, 104040, third.RentalIncome, 1e-6)
	assert.InDelta(t, 20808, third.TotalCosts, 1e-6)
	assert.InDelta(t, 25000, third.InterestExpense, 1e-6)
}

func TestGetProjection_Defaults(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/projection?years=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Params finance.ProjectionParams `json:"params"`
		Years  []finance.ProjectionYear `json:"years"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Years, finance.MaxProjectionYears)
	assert.Equal(t, 80.0, resp.Params.LeveragePct)
	assert.Equal(t, 4.5, resp.Params.RatePct)
	assert.Equal(t, 2.0, resp.Params.InflationPct)
}

func TestGetProjection_HugeHorizonClampsToMax(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodGet, "/api/buildings/"+itoa(b.ID)+"/projection?years=1e30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Years []finance.ProjectionYear `json:"years"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Years, finance.MaxProjectionYears)
}

func TestFinanceSettings(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")
	path := "/api/finance/overrides/" + itoa(b.ID)

	w := s.do(http.MethodPut, "/api/finance/defaults", map[string]interface{}{"rate_pct": "5"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPut, path, map[string]interface{}{"rate_pct": 6})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPut, path, map[string]interface{}{"leverage_pct": 70})
	require.Equal(t, http.StatusOK, w.Code)

	settings, err := s.db.GetFinanceSettings(s.cfg.DefaultFinancing())
	require.NoError(t, err)
	assert.Equal(t, finance.Financing{RatePct: 5, LeveragePct: 80}, settings.Defaults)
	assert.Equal(t, finance.Financing{RatePct: 6, LeveragePct: 70}, settings.Resolve(b.ID))

	w = s.do(http.MethodDelete, path+"?field=rate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	settings, err = s.db.GetFinanceSettings(s.cfg.DefaultFinancing())
	require.NoError(t, err)
	assert.Equal(t, finance.Financing{RatePct: 5, LeveragePct: 70}, settings.Resolve(b.ID))

	w = s.do(http.MethodDelete, path+"?field=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, path+"?field=leverage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, found, err := s.db.GetFinanceOverride(b.ID)
	require.NoError(t, err)
	assert.False(t, found)

	w = s.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/finance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	defaults := decode(t, w)["defaults"].(map[string]interface{})
	assert.Equal(t, 5.0, defaults["rate_pct"])
}

func TestDeleteBuilding_RemovesOverrideAndFiles(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	rate := 6.0
	require.NoError(t, s.db.SetFinanceOverride(b.ID, finance.Override{RatePct: &rate}))
	_, err := s.handler.files.Save(b.ID, "deed.pdf", bytes.NewReader([]byte("pdf")))
	require.NoError(t, err)

	w := s.do(http.MethodDelete, "/api/buildings/"+itoa(b.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, found, err := s.db.GetFinanceOverride(b.ID)
	require.NoError(t, err)
	assert.False(t, found)
	files, err := s.handler.files.List(b.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFiles(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")
	base := "/api/buildings/" + itoa(b.ID) + "/files"

	w := s.do(http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, decode(t, w)["files"])

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range map[string]string{"../deed.pdf": "deed", "budget.xlsx": "budget"} {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, base, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, base, nil)
	assert.Equal(t, []interface{}{"budget.xlsx", "deed.pdf"}, decode(t, w)["files"])

	w = s.do(http.MethodGet, base+"/deed.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deed", w.Body.String())

	w = s.do(http.MethodDelete, base+"/deed.pdf", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, base+"/deed.pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAnalysis(t *testing.T) {
	s := newTestServer(t)
	a := s.createBuilding(t, "A")
	b := s.createBuilding(t, "B")

	w := s.do(http.MethodGet, "/api/analysis?ids="+itoa(b.ID)+",x,"+itoa(a.ID)+",999", nil)
	require.Equal(t, http.StatusOK, w.Code)

	columns := decode(t, w)["buildings"].([]interface{})
	require.Len(t, columns, 2)
	first := columns[0].(map[string]interface{})["building"].(map[string]interface{})
	assert.Equal(t, "B", first["name"])
}

func TestGetAnalysis_RepeatedIDs(t *testing.T) {
	s := newTestServer(t)
	a := s.createBuilding(t, "A")

	w := s.do(http.MethodGet, "/api/analysis?ids="+itoa(a.ID)+","+itoa(a.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["buildings"].([]interface{}), 2)
}

func TestExportAnalysis(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")

	w := s.do(http.MethodPost, "/api/export-analyse", map[string]interface{}{"building_ids": []int64{b.ID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "analyse.xlsx")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = s.do(http.MethodPost, "/api/export-analyse", map[string]interface{}{"building_ids": []int64{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/export-analyse", map[string]interface{}{"building_ids": []int64{999}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBuildingsMap(t *testing.T) {
	s := newTestServer(t)
	b := s.createBuilding(t, "Vestergade 1")
	s.createBuilding(t, "Not geocoded")

	_, err := s.db.GetDB().Exec(`UPDATE buildings SET latitude = 56.15, longitude = 10.2 WHERE id = ?`, b.ID)
	require.NoError(t, err)

	w := s.do(http.MethodGet, "/api/map/buildings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "FeatureCollection", resp["type"])
	features := resp["features"].([]interface{})
	require.Len(t, features, 1)
	props := features[0].(map[string]interface{})["properties"].(map[string]interface{})
	assert.Equal(t, "Vestergade 1", props["name"])
	assert.InDelta(t, 44000, props["cash_flow"].(float64), 1e-6)
}

type fakeImportQueue struct {
	batches [][]*models.Building
	err     error
}

func (f *fakeImportQueue) Push(batch []*models.Building) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, batch)
	return nil
}

func TestImportBuildings(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/import/buildings", `[{"name": "A"}]`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	q := &fakeImportQueue{}
	s.handler.SetImportQueue(q)

	w = s.do(http.MethodPost, "/api/import/buildings", `[
		{"name": "A", "acquisition_price": "900000", "water": 1200, "latitude": 55.6, "longitude": 12.5},
		{"name": ""},
		{"id": 7, "name": "B", "total_costs": 5000}
	]`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 2.0, decode(t, w)["queued"])

	require.Len(t, q.batches, 1)
	batch := q.batches[0]
	require.Len(t, batch, 2)
	assert.Equal(t, 900000.0, batch[0].AcquisitionPrice)
	assert.Equal(t, 1200.0, batch[0].TotalCosts)
	assert.True(t, batch[0].HasCoordinates())
	assert.Equal(t, int64(7), batch[1].ID)

	q.err = queue.ErrQueueFull
	w = s.do(http.MethodPost, "/api/import/buildings", `[{"name": "C"}]`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(http.MethodPost, "/api/import/buildings", `{"name": "C"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockNotifier) NotifyNewBuilding(b models.Building, metrics finance.Metrics) error {
	return m.Called(b, metrics).Error(0)
}

func TestCreateBuilding_Notifies(t *testing.T) {
	s := newTestServer(t)

	sent := make(chan models.Building, 1)
	notifier := new(MockNotifier)
	notifier.On("Enabled").Return(true)
	notifier.On("NotifyNewBuilding", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent <- args.Get(0).(models.Building) }).
		Return(nil)
	s.handler.SetNotifier(notifier)

	w := s.do(http.MethodPost, "/api/buildings", map[string]interface{}{"name": "Vestergade 1", "acquisition_price": 1000000})
	require.Equal(t, http.StatusCreated, w.Code)

	select {
	case b := <-sent:
		assert.Equal(t, "Vestergade 1", b.Name)
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
