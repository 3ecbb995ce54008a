package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomkeeper/config"
	"roomkeeper/dto"
	"roomkeeper/errors"
	"roomkeeper/models"
	"roomkeeper/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClientService struct {
	clients   map[uint]models.Client
	nextID    uint
	lastQuery string
}

func newFakeClientService() *fakeClientService {
	return &fakeClientService{clients: map[uint]models.Client{}, nextID: 1}
}

func (f *fakeClientService) List(_ context.Context, query string) ([]models.Client, error) {
	f.lastQuery = query
	out := make([]models.Client, 0, len(f.clients))
	for id := uint(1); id < f.nextID; id++ {
		if client, ok := f.clients[id]; ok {
			out = append(out, client)
		}
	}
	return out, nil
}

func (f *fakeClientService) Get(_ context.Context, id uint) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, errors.NotFound("Client", id)
	}
	return &client, nil
}

func (f *fakeClientService) Create(_ context.Context, req dto.CreateClientRequest) (*models.Client, error) {
	client := models.Client{ID: f.nextID, FirstName: req.FirstName, LastName: req.LastName}
	f.clients[client.ID] = client
	f.nextID++
	return &client, nil
}

func (f *fakeClientService) Update(_ context.Context, id uint, req dto.UpdateClientRequest) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, errors.NotFound("Client", id)
	}
	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	f.clients[id] = client
	return &client, nil
}

func (f *fakeClientService) Delete(_ context.Context, id uint) error {
	if _, ok := f.clients[id]; !ok {
		return errors.NotFound("Client", id)
	}
	delete(f.clients, id)
	return nil
}

// fakeRoomService keeps the room rules that matter on the wire:
// capacity, unique numbers and client references.
type fakeRoomService struct {
	clients *fakeClientService
	rooms   map[uint]models.Room
	nextID  uint
	failAll error
}

func newFakeRoomService(clients *fakeClientService) *fakeRoomService {
	return &fakeRoomService{clients: clients, rooms: map[uint]models.Room{}, nextID: 1}
}

func (f *fakeRoomService) List(_ context.Context) ([]models.Room, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]models.Room, 0, len(f.rooms))
	for id := uint(1); id < f.nextID; id++ {
		if room, ok := f.rooms[id]; ok {
			out = append(out, room)
		}
	}
	return out, nil
}

func (f *fakeRoomService) Get(_ context.Context, id uint) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, errors.NotFound("Room", id)
	}
	return &room, nil
}

func (f *fakeRoomService) resolve(refs []dto.ClientRef) ([]models.Client, error) {
	var out []models.Client
	for _, id := range dto.ClientIDs(refs) {
		client, ok := f.clients.clients[id]
		if !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidReference, "Client not found", nil)
		}
		out = append(out, client)
	}
	return out, nil
}

func (f *fakeRoomService) numberTaken(number int, except uint) bool {
	for id, room := range f.rooms {
		if id != except && room.Number == number {
			return true
		}
	}
	return false
}

func (f *fakeRoomService) Create(_ context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	room := models.Room{Number: *req.Number, Places: req.Places, PriceDay: req.PriceDay}
	if !room.HasCapacity(len(dto.ClientIDs(req.Clients))) {
		return nil, errors.ErrCapacityExceeded
	}
	if f.numberTaken(room.Number, 0) {
		return nil, errors.NewAppError(errors.ErrCodeDuplicateNumber, "Room with the same number already exists", nil)
	}
	clients, err := f.resolve(req.Clients)
	if err != nil {
		return nil, err
	}
	room.ID = f.nextID
	room.Clients = clients
	f.rooms[room.ID] = room
	f.nextID++
	return &room, nil
}

func (f *fakeRoomService) Update(_ context.Context, id uint, req dto.UpdateRoomRequest) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, errors.NotFound("Room", id)
	}
	if req.Number != nil {
		if f.numberTaken(*req.Number, id) {
			return nil, errors.NewAppError(errors.ErrCodeDuplicateNumber, "Room with the same number already exists", nil)
		}
		room.Number = *req.Number
	}
	if req.Places != nil {
		room.Places = *req.Places
	}
	if req.PriceDay != nil {
		room.PriceDay = *req.PriceDay
	}
	if req.Clients != nil {
		clients, err := f.resolve(*req.Clients)
		if err != nil {
			return nil, err
		}
		room.Clients = clients
	}
	if !room.HasCapacity(len(room.Clients)) {
		return nil, errors.ErrCapacityExceeded
	}
	f.rooms[id] = room
	return &room, nil
}

func (f *fakeRoomService) Delete(_ context.Context, id uint) error {
	if _, ok := f.rooms[id]; !ok {
		return errors.NotFound("Room", id)
	}
	delete(f.rooms, id)
	return nil
}

type testServer struct {
	router  *gin.Engine
	clients *fakeClientService
	rooms   *fakeRoomService
}

func setupRouter(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clients := newFakeClientService()
	rooms := newFakeRoomService(clients)
	router := config.NewRouter(logger.Nop())
	SetupRoutes(router, clients, rooms, nil)
	return testServer{router: router, clients: clients, rooms: rooms}
}

func (s testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, w, &body)
	msg, ok := body["error"]
	require.True(t, ok, "body has no error key: %s", w.Body.String())
	return msg
}

func TestPing(t *testing.T) {
	s := setupRouter(t)
	w := s.do(t, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestClients_CRUD(t *testing.T) {
	s := setupRouter(t)

	w := s.do(t, http.MethodPost, "/clients/", `{"first_name":"John","last_name":"Doe"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.ClientResponse
	decode(t, w, &created)
	assert.Equal(t, dto.ClientResponse{ID: 1, FirstName: "John", LastName: "Doe"}, created)

	w = s.do(t, http.MethodGet, "/clients/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPatch, "/clients/1", `{"last_name":"Smith"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated dto.ClientResponse
	decode(t, w, &updated)
	assert.Equal(t, "John", updated.FirstName)
	assert.Equal(t, "Smith", updated.LastName)

	w = s.do(t, http.MethodGet, "/clients/?q=jon", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jon", s.clients.lastQuery)
	var list []dto.ClientResponse
	decode(t, w, &list)
	assert.Len(t, list, 1)

	w = s.do(t, http.MethodDelete, "/clients/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(t, http.MethodGet, "/clients/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Client with id 1 not found", errorMessage(t, w))
}

func TestClients_EmptyListIsArray(t *testing.T) {
	s := setupRouter(t)
	w := s.do(t, http.MethodGet, "/clients/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestClients_BadRequests(t *testing.T) {
	s := setupRouter(t)
	long := string(bytes.Repeat([]byte("a"), 129))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown field", http.MethodPost, "/clients/", `{"first_name":"A","age":3}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/clients/", `{"first_name":`, http.StatusBadRequest},
		{"trailing data", http.MethodPost, "/clients/", `{"first_name":"a"}xyz`, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/clients/", "", http.StatusBadRequest},
		{"wrong type", http.MethodPost, "/clients/", `{"first_name":5}`, http.StatusBadRequest},
		{"name too long", http.MethodPost, "/clients/", `{"first_name":"` + long + `"}`, http.StatusBadRequest},
		{"non numeric id", http.MethodGet, "/clients/abc", "", http.StatusNotFound},
		{"zero id", http.MethodGet, "/clients/0", "", http.StatusNotFound},
		{"patch missing", http.MethodPatch, "/clients/9", `{"first_name":"A"}`, http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/clients/9", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, errorMessage(t, w))
		})
	}
}

func TestRooms_CreateWithClients(t *testing.T) {
	s := setupRouter(t)
	s.do(t, http.MethodPost, "/clients/", `{"first_name":"John","last_name":"Doe"}`)
	s.do(t, http.MethodPost, "/clients/", `{"first_name":"Jane","last_name":"Roe"}`)

	w := s.do(t, http.MethodPost, "/rooms/", `{"number":333,"places":2,"price_day":34.4,"clients":[{"id":1},{"id":2}]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var room dto.RoomResponse
	decode(t, w, &room)
	assert.Equal(t, 333, room.Number)
	assert.Equal(t, 2, room.Places)
	assert.InDelta(t, 34.4, room.PriceDay, 0.001)
	require.Len(t, room.Clients, 2)
	assert.Equal(t, "Jane", room.Clients[1].FirstName)
}

func TestRooms_EmptyClientsIsArray(t *testing.T) {
	s := setupRouter(t)
	w := s.do(t, http.MethodPost, "/rooms/", `{"number":1,"places":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, []interface{}{}, body["clients"])
}

func TestRooms_Rules(t *testing.T) {
	s := setupRouter(t)
	s.do(t, http.MethodPost, "/clients/", `{"first_name":"John","last_name":"Doe"}`)
	s.do(t, http.MethodPost, "/clients/", `{"first_name":"Jane","last_name":"Roe"}`)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/rooms/", `{"number":333,"places":1}`).Code)

	t.Run("capacity on create", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/rooms/", `{"number":444,"places":1,"clients":[{"id":1},{"id":2}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "number of clients should be <= number of places", errorMessage(t, w))
	})

	t.Run("duplicate number", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/rooms/", `{"number":333,"places":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, errorMessage(t, w), "same number")
	})

	t.Run("number required", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/rooms/", `{"places":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "number is required", errorMessage(t, w))
	})

	t.Run("price over column range", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/rooms/", `{"number":7,"places":1,"price_day":1e9}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "price_day must be <= 99999999.99", errorMessage(t, w))
	})

	t.Run("negative places", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/rooms/", `{"number":5,"places":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown client", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/rooms/", `{"number":6,"places":3,"clients":[{"id":42}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("capacity on update", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, "/rooms/1", `{"clients":[{"id":1},{"id":2}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "number of clients should be <= number of places", errorMessage(t, w))
	})

	t.Run("update replaces clients", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, "/rooms/1", `{"places":2,"clients":[{"id":2}]}`)
		require.Equal(t, http.StatusOK, w.Code)
		var room dto.RoomResponse
		decode(t, w, &room)
		assert.Equal(t, 2, room.Places)
		require.Len(t, room.Clients, 1)
		assert.Equal(t, uint(2), room.Clients[0].ID)
	})

	t.Run("update missing room", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, "/rooms/99", `{"places":2}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Room with id 99 not found", errorMessage(t, w))
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/rooms/1", "").Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/rooms/1", "").Code)
	})
}

func TestRooms_ServerErrorIsHidden(t *testing.T) {
	s := setupRouter(t)
	s.rooms.failAll = errors.NewAppError(errors.ErrCodeDBError, "database error", nil)

	w := s.do(t, http.MethodGet, "/rooms/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", errorMessage(t, w))
}

func TestRequestIDHeader(t *testing.T) {
	s := setupRouter(t)
	w := s.do(t, http.MethodGet, "/ping", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
