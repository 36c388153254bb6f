package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ingresos_gastos/internal/middleware"
	"ingresos_gastos/internal/model"
	"ingresos_gastos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fakeMovementService returns canned results per operation.
type fakeMovementService struct {
	listResult   []model.Movement
	createResult *model.Movement
	createErr    error
	updateResult *model.Movement
	updateErr    error
	deleteErr    error
	csvResult    string
}

func (f *fakeMovementService) List(ctx context.Context) ([]model.Movement, error) {
	return f.listResult, nil
}

func (f *fakeMovementService) Create(ctx context.Context, creatorID string, req model.MovementRequest) (*model.Movement, error) {
	return f.createResult, f.createErr
}

func (f *fakeMovementService) Update(ctx context.Context, id string, req model.MovementRequest) (*model.Movement, error) {
	return f.updateResult, f.updateErr
}

func (f *fakeMovementService) Delete(ctx context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeMovementService) ExportCSV(ctx context.Context) (string, error) {
	return f.csvResult, nil
}

// adminIdentity injects an ADMIN identity, standing in for the session and
// role gates which have their own tests.
func adminIdentity(c *gin.Context) {
	c.Set(middleware.IdentityKey, &model.Identity{ID: "u1", Role: model.RoleAdmin})
	c.Next()
}

func newMovementRouter(svc service.MovementService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewMovementHandler(svc)
	h.RegisterMovementRoutes(router.Group("/api/v1"), adminIdentity, func(c *gin.Context) { c.Next() })
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMovementHandler_List(t *testing.T) {
	router := newMovementRouter(&fakeMovementService{listResult: []model.Movement{{
		ID: "m1", Concept: "Salario", Amount: 100, Type: model.MovementTypeIncome,
		Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), UserID: "u1",
	}}})

	w := doJSON(router, http.MethodGet, "/api/v1/movements", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"concept":"Salario"`)
}

func TestMovementHandler_Create(t *testing.T) {
	created := &model.Movement{ID: "m1", Concept: "Salario", Amount: 100, Type: model.MovementTypeIncome}
	router := newMovementRouter(&fakeMovementService{createResult: created})

	w := doJSON(router, http.MethodPost, "/api/v1/movements",
		`{"concept":"Salario","amount":100,"type":"INCOME","date":"2024-01-01"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"m1"`)
}

func TestMovementHandler_Create_MissingFields(t *testing.T) {
	router := newMovementRouter(&fakeMovementService{createErr: service.ErrMissingFields})

	w := doJSON(router, http.MethodPost, "/api/v1/movements", `{"concept":"Salario"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Todos los campos son requeridos"}`, w.Body.String())
}

func TestMovementHandler_Create_InvalidType(t *testing.T) {
	router := newMovementRouter(&fakeMovementService{createErr: service.ErrInvalidMovementType})

	w := doJSON(router, http.MethodPost, "/api/v1/movements",
		`{"concept":"Salario","amount":100,"type":"TRANSFER","date":"2024-01-01"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Tipo de movimiento inválido"}`, w.Body.String())
}

func TestMovementHandler_Update_NotFound(t *testing.T) {
	router := newMovementRouter(&fakeMovementService{updateErr: service.ErrMovementNotFound})

	w := doJSON(router, http.MethodPut, "/api/v1/movements/missing",
		`{"concept":"Renta","amount":40,"type":"EXPENSE","date":"2024-01-15"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Movimiento no encontrado"}`, w.Body.String())
}

func TestMovementHandler_Delete(t *testing.T) {
	router := newMovementRouter(&fakeMovementService{})

	w := doJSON(router, http.MethodDelete, "/api/v1/movements/m1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Movimiento eliminado"}`, w.Body.String())
}

func TestMovementHandler_Delete_NotFound(t *testing.T) {
	router := newMovementRouter(&fakeMovementService{deleteErr: service.ErrMovementNotFound})

	w := doJSON(router, http.MethodDelete, "/api/v1/movements/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMovementHandler_ExportCSV(t *testing.T) {
	router := newMovementRouter(&fakeMovementService{csvResult: "Concepto,Monto,Tipo,Fecha,Usuario"})

	w := doJSON(router, http.MethodGet, "/api/v1/movements/export/csv", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "movimientos-")
	assert.Equal(t, "Concepto,Monto,Tipo,Fecha,Usuario", w.Body.String())
}
