package eventos

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/database"
	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/models"
)

// fakeStore implements Store in memory, mirroring the real store's
// validation and error contract.
type fakeStore struct {
	available  bool
	gastos     []models.EventExpense
	lastFilter database.EventExpenseFilter
	created    []models.EventExpenseInput
	updatedAt  time.Time
}

func (f *fakeStore) Available() bool { return f.available }

func (f *fakeStore) ListEventExpenses(_ context.Context, filter database.EventExpenseFilter) ([]models.EventExpense, error) {
	if !f.available {
		return nil, database.ErrUnavailable
	}
	f.lastFilter = filter
	return f.gastos, nil
}

func (f *fakeStore) GetEventExpense(_ context.Context, id string) (*models.EventExpense, error) {
	if !f.available {
		return nil, database.ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, database.ErrInvalidID
	}
	for i := range f.gastos {
		if f.gastos[i].ID == oid {
			gasto := f.gastos[i]
			return &gasto, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) CreateEventExpense(_ context.Context, in models.EventExpenseInput) (*models.EventExpense, error) {
	if !f.available {
		return nil, database.ErrUnavailable
	}
	in.Normalize()
	if fields := in.FieldErrors(); fields != nil {
		return nil, &database.ValidationError{Fields: fields}
	}
	f.created = append(f.created, in)
	gasto := models.NewEventExpense(in, time.Now())
	gasto.ID = primitive.NewObjectID()
	gasto.ApplyVirtuals()
	return &gasto, nil
}

func (f *fakeStore) UpdateEventExpense(ctx context.Context, id string, upd models.EventExpenseUpdate) (*models.EventExpense, error) {
	gasto, err := f.GetEventExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(gasto)
	if fields := gasto.AsInput().FieldErrors(); fields != nil {
		return nil, &database.ValidationError{Fields: fields}
	}
	gasto.UpdatedAt = f.updatedAt
	for i := range f.gastos {
		if f.gastos[i].ID == gasto.ID {
			f.gastos[i] = *gasto
		}
	}
	return gasto, nil
}

func (f *fakeStore) DeleteEventExpense(ctx context.Context, id string) (*models.EventExpense, error) {
	gasto, err := f.GetEventExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range f.gastos {
		if f.gastos[i].ID == gasto.ID {
			f.gastos = append(f.gastos[:i], f.gastos[i+1:]...)
			break
		}
	}
	return gasto, nil
}

func newTestApp(store Store) *fiber.App {
	app := fiber.New()
	SetupEventosRoutes(app, store)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	payload := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decoding body %q: %v", raw, err)
		}
	}
	return resp, payload
}

func sampleGasto(category string, monto float64, fecha time.Time) models.EventExpense {
	return models.EventExpense{
		ID:          primitive.NewObjectID(),
		Category:    category,
		Description: "Gasto de prueba",
		Amount:      monto,
		Date:        fecha,
		EventID:     "evt-1",
		CreatedAt:   fecha,
		UpdatedAt:   fecha,
	}
}

func TestIndex(t *testing.T) {
	app := newTestApp(&fakeStore{available: true})
	resp, payload := doRequest(t, app, "GET", "/api/eventos/", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["message"] != "Módulo de Eventos - Liliana Villamarin" {
		t.Errorf("unexpected message %q", payload["message"])
	}
	if len(payload["endpoints"].([]any)) != 6 {
		t.Errorf("endpoints = %v, want 6 entries", payload["endpoints"])
	}
}

func TestListGastos(t *testing.T) {
	now := time.Now()
	store := &fakeStore{available: true, gastos: []models.EventExpense{
		sampleGasto("comida", 150000, now),
		sampleGasto("bebidas", 80000, now.Add(-time.Hour)),
	}}
	app := newTestApp(store)

	resp, payload := doRequest(t, app, "GET", "/api/eventos/gastos", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Error("success should be true")
	}
	if payload["count"].(float64) != 2 {
		t.Errorf("count = %v, want 2", payload["count"])
	}
	if len(payload["categorias"].([]any)) != 10 {
		t.Errorf("categorias = %v, want 10 codes", payload["categorias"])
	}
}

func TestListGastosFilters(t *testing.T) {
	store := &fakeStore{available: true}
	app := newTestApp(store)

	resp, _ := doRequest(t, app, "GET", "/api/eventos/gastos?categoria=comida&evento_id=evt-42&fecha_inicio=2024-01-01&fecha_fin=2024-12-31", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if store.lastFilter.Category != "comida" {
		t.Errorf("Category = %q, want comida", store.lastFilter.Category)
	}
	if store.lastFilter.EventID != "evt-42" {
		t.Errorf("EventID = %q, want evt-42", store.lastFilter.EventID)
	}
	if store.lastFilter.DateFrom == nil || store.lastFilter.DateFrom.Format("2006-01-02") != "2024-01-01" {
		t.Errorf("DateFrom = %v, want 2024-01-01", store.lastFilter.DateFrom)
	}
	if store.lastFilter.DateTo == nil || store.lastFilter.DateTo.Format("2006-01-02") != "2024-12-31" {
		t.Errorf("DateTo = %v, want 2024-12-31", store.lastFilter.DateTo)
	}
}

func TestListGastosInvalidDate(t *testing.T) {
	app := newTestApp(&fakeStore{available: true})
	resp, payload := doRequest(t, app, "GET", "/api/eventos/gastos?fecha_inicio=ayer", "")
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if payload["error"] != "Formato de fecha inválido" {
		t.Errorf("unexpected error %q", payload["error"])
	}
}

func TestCreateGasto(t *testing.T) {
	store := &fakeStore{available: true}
	app := newTestApp(store)

	body := `{"categoria":"comida","descripcion":"Catering boda","monto":150000,"evento_id":"evt-42"}`
	resp, payload := doRequest(t, app, "POST", "/api/eventos/gastos", body)
	if resp.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	gasto := payload["gasto"].(map[string]any)
	if gasto["categoria"] != "comida" {
		t.Errorf("categoria = %v, want comida", gasto["categoria"])
	}
	if gasto["monto"].(float64) != 150000 {
		t.Errorf("monto = %v, want 150000", gasto["monto"])
	}
	if gasto["_id"] == "" || gasto["_id"] == nil {
		t.Error("expected a generated _id")
	}
	if gasto["createdAt"] == nil || gasto["updatedAt"] == nil {
		t.Error("expected server-assigned timestamps")
	}
	if len(store.created) != 1 {
		t.Fatalf("store received %d creates, want 1", len(store.created))
	}
}

func TestCreateGastoValidation(t *testing.T) {
	app := newTestApp(&fakeStore{available: true})

	resp, payload := doRequest(t, app, "POST", "/api/eventos/gastos", `{"categoria":"joyas","monto":-5}`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	detalles := payload["detalles"].(map[string]any)
	want := map[string]string{
		"categoria":   "La categoría no es válida",
		"descripcion": "La descripción es obligatoria",
		"monto":       "El monto debe ser positivo",
		"evento_id":   "El ID del evento es obligatorio",
	}
	for field, msg := range want {
		if detalles[field] != msg {
			t.Errorf("detalles[%s] = %v, want %q", field, detalles[field], msg)
		}
	}
}

func TestGetGasto(t *testing.T) {
	gasto := sampleGasto("comida", 1000, time.Now())
	app := newTestApp(&fakeStore{available: true, gastos: []models.EventExpense{gasto}})

	resp, payload := doRequest(t, app, "GET", "/api/eventos/gastos/"+gasto.ID.Hex(), "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := payload["gasto"].(map[string]any)
	if got["_id"] != gasto.ID.Hex() {
		t.Errorf("_id = %v, want %s", got["_id"], gasto.ID.Hex())
	}
}

func TestGetGastoInvalidID(t *testing.T) {
	app := newTestApp(&fakeStore{available: true})
	resp, payload := doRequest(t, app, "GET", "/api/eventos/gastos/not-an-oid", "")
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if payload["error"] != "ID inválido" {
		t.Errorf("unexpected error %q", payload["error"])
	}
}

func TestGetGastoNotFound(t *testing.T) {
	app := newTestApp(&fakeStore{available: true})
	resp, _ := doRequest(t, app, "GET", "/api/eventos/gastos/"+primitive.NewObjectID().Hex(), "")
	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdateGastoKeepsServerTimestamps(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	gasto := sampleGasto("comida", 1000, created)
	gasto.CreatedAt = created
	store := &fakeStore{
		available: true,
		gastos:    []models.EventExpense{gasto},
		updatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	app := newTestApp(store)

	body := `{"descripcion":"Actualizado","createdAt":"1999-01-01T00:00:00Z","updatedAt":"1999-01-01T00:00:00Z"}`
	resp, payload := doRequest(t, app, "PUT", "/api/eventos/gastos/"+gasto.ID.Hex(), body)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := payload["gasto"].(map[string]any)
	if got["descripcion"] != "Actualizado" {
		t.Errorf("descripcion = %v, want Actualizado", got["descripcion"])
	}
	if !strings.HasPrefix(got["createdAt"].(string), "2024-03-01") {
		t.Errorf("createdAt = %v, caller must not override it", got["createdAt"])
	}
	if !strings.HasPrefix(got["updatedAt"].(string), "2024-06-01") {
		t.Errorf("updatedAt = %v, want server-recomputed value", got["updatedAt"])
	}
}

func TestUpdateGastoValidation(t *testing.T) {
	gasto := sampleGasto("comida", 1000, time.Now())
	app := newTestApp(&fakeStore{available: true, gastos: []models.EventExpense{gasto}})

	resp, payload := doRequest(t, app, "PUT", "/api/eventos/gastos/"+gasto.ID.Hex(), `{"categoria":"joyas"}`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	detalles := payload["detalles"].(map[string]any)
	if detalles["categoria"] != "La categoría no es válida" {
		t.Errorf("detalles = %v", detalles)
	}
}

func TestDeleteGastoTwice(t *testing.T) {
	gasto := sampleGasto("comida", 1000, time.Now())
	app := newTestApp(&fakeStore{available: true, gastos: []models.EventExpense{gasto}})

	resp, payload := doRequest(t, app, "DELETE", "/api/eventos/gastos/"+gasto.ID.Hex(), "")
	if resp.StatusCode != 200 {
		t.Fatalf("first delete status = %d, want 200", resp.StatusCode)
	}
	deleted := payload["gasto"].(map[string]any)
	if deleted["_id"] != gasto.ID.Hex() {
		t.Errorf("deleted _id = %v, want %s", deleted["_id"], gasto.ID.Hex())
	}

	resp, _ = doRequest(t, app, "DELETE", "/api/eventos/gastos/"+gasto.ID.Hex(), "")
	if resp.StatusCode != 404 {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestListCategorias(t *testing.T) {
	app := newTestApp(&fakeStore{available: true})
	resp, payload := doRequest(t, app, "GET", "/api/eventos/categorias", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	categorias := payload["categorias"].([]any)
	if len(categorias) != 10 {
		t.Fatalf("categorias = %d entries, want 10", len(categorias))
	}
	first := categorias[0].(map[string]any)
	for _, key := range []string{"id", "nombre", "descripcion"} {
		if first[key] == nil || first[key] == "" {
			t.Errorf("categoria missing %s: %v", key, first)
		}
	}
}

func TestOfflineListGastos(t *testing.T) {
	app := newTestApp(&fakeStore{available: false})
	resp, payload := doRequest(t, app, "GET", "/api/eventos/gastos", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Error("offline list must still succeed")
	}
	if payload["count"].(float64) != 0 {
		t.Errorf("count = %v, want 0", payload["count"])
	}
	if payload["message"] != offlineMessage {
		t.Errorf("message = %v, want offline flag", payload["message"])
	}
	if len(payload["categorias"].([]any)) != 10 {
		t.Error("offline list must still include the category codes")
	}
}

func TestOfflineCreateGasto(t *testing.T) {
	store := &fakeStore{available: false}
	app := newTestApp(store)

	body := `{"categoria":"comida","descripcion":"Catering boda","monto":150000,"evento_id":"evt-42"}`
	resp, payload := doRequest(t, app, "POST", "/api/eventos/gastos", body)
	if resp.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	gasto := payload["gasto"].(map[string]any)
	if !strings.HasPrefix(gasto["_id"].(string), "simulated-") {
		t.Errorf("_id = %v, want simulated- prefix", gasto["_id"])
	}
	if gasto["categoria"] != "comida" || gasto["evento_id"] != "evt-42" {
		t.Errorf("offline create must echo fields verbatim, got %v", gasto)
	}
	if len(store.created) != 0 {
		t.Error("offline create must not touch the store")
	}
}

func TestOfflineGetGasto(t *testing.T) {
	app := newTestApp(&fakeStore{available: false})

	resp, payload := doRequest(t, app, "GET", "/api/eventos/gastos/simulated-12345", "")
	if resp.StatusCode != 200 {
		t.Fatalf("simulated id status = %d, want 200", resp.StatusCode)
	}
	gasto := payload["gasto"].(map[string]any)
	if gasto["_id"] != "simulated-12345" {
		t.Errorf("_id = %v, want simulated-12345", gasto["_id"])
	}

	resp, _ = doRequest(t, app, "GET", "/api/eventos/gastos/"+primitive.NewObjectID().Hex(), "")
	if resp.StatusCode != 404 {
		t.Fatalf("regular id status = %d, want 404", resp.StatusCode)
	}
}

func TestOfflineUpdateAndDelete(t *testing.T) {
	app := newTestApp(&fakeStore{available: false})
	id := primitive.NewObjectID().Hex()

	resp, _ := doRequest(t, app, "PUT", "/api/eventos/gastos/"+id, `{"monto":1}`)
	if resp.StatusCode != 500 {
		t.Errorf("offline update status = %d, want 500", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, "DELETE", "/api/eventos/gastos/"+id, "")
	if resp.StatusCode != 500 {
		t.Errorf("offline delete status = %d, want 500", resp.StatusCode)
	}
}
