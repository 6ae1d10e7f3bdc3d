package handlers

import (
	"context"
	"sync"

	"thermostat_panel/internal/models"
	"thermostat_panel/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTarget struct {
	incTarget int
	incErr    error
	decTarget int
	decErr    error

	incCalls    int
	decCalls    int
	cancelCalls int
}

func (m *mockTarget) Increment(ctx context.Context) (int, error) {
	m.incCalls++
	return m.incTarget, m.incErr
}
func (m *mockTarget) Decrement(ctx context.Context) (int, error) {
	m.decCalls++
	return m.decTarget, m.decErr
}
func (m *mockTarget) Cancel() bool {
	m.cancelCalls++
	return false
}

type mockInterval struct {
	seconds int
	err     error
	lastRaw string
	calls   int
}

func (m *mockInterval) SetInterval(ctx context.Context, raw string) (int, error) {
	m.calls++
	m.lastRaw = raw
	return m.seconds, m.err
}

type mockMonitoring struct {
	mu    sync.Mutex
	state models.PanelState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.PanelState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.err
}

func (m *mockMonitoring) set(st models.PanelState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
}

type mockEventLog struct {
	resp   []models.PanelEvent
	err    error
	filter service.LogFilter
	calls  int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.PanelEvent, error) {
	m.calls++
	m.filter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}
