package services

import (
	"context"
	"fmt"

	"roomkeeper/dto"
	"roomkeeper/errors"
	"roomkeeper/models"
	"roomkeeper/services/notification"
	"roomkeeper/validator"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const entityRoom = "Room"

type RoomServiceInterface interface {
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id uint) (*models.Room, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error)
	Update(ctx context.Context, id uint, req dto.UpdateRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, id uint) error
}

type RoomService struct {
	ServiceOptions
}

func NewRoomService(opts ServiceOptions) *RoomService {
	return &RoomService{ServiceOptions: opts.withDefaults()}
}

func preloadClients(db *gorm.DB) *gorm.DB {
	return db.Preload("Clients", func(db *gorm.DB) *gorm.DB {
		return db.Order("clients.id")
	})
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.Cache.load(ctx, CacheKeyRooms, &rooms, func() error {
		return s.fetchAll(ctx, &rooms)
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) fetchAll(ctx context.Context, rooms *[]models.Room) error {
	if err := preloadClients(s.DB.WithContext(ctx)).Order("id").Find(rooms).Error; err != nil {
		return errors.FromDB(err, entityRoom, 0)
	}
	return nil
}

// WarmCache reloads the cached room list from the database.
func (s *RoomService) WarmCache(ctx context.Context) error {
	var rooms []models.Room
	return s.Cache.refresh(ctx, CacheKeyRooms, &rooms, func() error {
		return s.fetchAll(ctx, &rooms)
	})
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.find(s.DB.WithContext(ctx), id)
	if err != nil {
		return nil, errors.FromDB(err, entityRoom, id)
	}
	return room, nil
}

func (s *RoomService) find(db *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := preloadClients(db).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// Create stores a room with its clients. The capacity check runs before any query.
func (s *RoomService) Create(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	ids := dto.ClientIDs(req.Clients)
	room := models.Room{
		Places:   req.Places,
		PriceDay: req.PriceDay,
	}
	if req.Number != nil {
		room.Number = *req.Number
	}
	if !room.HasCapacity(len(ids)) {
		return nil, errors.ErrCapacityExceeded
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clients, err := s.resolveClients(tx, ids)
		if err != nil {
			return err
		}
		room.Clients = clients
		if err := validator.ValidateRoom(&room); err != nil {
			return err
		}
		return tx.Omit("Clients.*").Create(&room).Error
	})
	if err != nil {
		return nil, errors.FromDB(err, entityRoom, 0)
	}
	s.afterWrite(ctx, notification.ActionCreated, room.ID)
	return &room, nil
}

// Update applies a partial update. Capacity is checked against the effective
// places and client set, so lowering places under the current occupancy fails too.
func (s *RoomService) Update(ctx context.Context, id uint, req dto.UpdateRoomRequest) (*models.Room, error) {
	var updated *models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.find(tx, id)
		if err != nil {
			return err
		}

		if req.Number != nil {
			room.Number = *req.Number
		}
		if req.Places != nil {
			room.Places = *req.Places
		}
		if req.PriceDay != nil {
			room.PriceDay = *req.PriceDay
		}
		if req.Clients != nil {
			ids := dto.ClientIDs(*req.Clients)
			if !room.HasCapacity(len(ids)) {
				return errors.ErrCapacityExceeded
			}
			if room.Clients, err = s.resolveClients(tx, ids); err != nil {
				return err
			}
		}
		if err := validator.ValidateRoom(room); err != nil {
			return err
		}

		if fields := req.Fields(); len(fields) > 0 {
			if err := tx.Model(&models.Room{ID: room.ID}).Updates(fields).Error; err != nil {
				return err
			}
		}
		if req.Clients != nil {
			assoc := tx.Model(&models.Room{ID: room.ID}).Omit("Clients.*").Association("Clients")
			if len(room.Clients) == 0 {
				err = assoc.Clear()
			} else {
				err = assoc.Replace(room.Clients)
			}
			if err != nil {
				return err
			}
		}

		updated, err = s.find(tx, id)
		return err
	})
	if err != nil {
		return nil, errors.FromDB(err, entityRoom, id)
	}
	s.afterWrite(ctx, notification.ActionUpdated, id)
	return updated, nil
}

// Delete removes the room. Its room_client rows go with it through the FK cascade.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Room{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound(entityRoom, id)
		}
		return nil
	})
	if err != nil {
		return errors.FromDB(err, entityRoom, id)
	}
	s.afterWrite(ctx, notification.ActionDeleted, id)
	return nil
}

// resolveClients loads the referenced clients in the order given.
// An unknown or zero id is a field error of the room request, not a 404.
func (s *RoomService) resolveClients(tx *gorm.DB, ids []uint) ([]models.Client, error) {
	if len(ids) == 0 {
		return []models.Client{}, nil
	}
	for _, id := range ids {
		if id == 0 {
			return nil, errors.NewAppError(errors.ErrCodeInvalidReference, "client id is required", nil)
		}
	}

	var found []models.Client
	if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Client, len(found))
	for _, client := range found {
		byID[client.ID] = client
	}

	clients := make([]models.Client, 0, len(ids))
	for _, id := range ids {
		client, ok := byID[id]
		if !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidReference,
				fmt.Sprintf("%s with id %d not found", entityClient, id), nil)
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func (s *RoomService) afterWrite(ctx context.Context, action string, id uint) {
	s.Cache.dropLists(ctx)
	s.publish(notification.EntityRoom, action, id)
	s.Logger.Info("room "+action, zap.Uint("id", id))
}
