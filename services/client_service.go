package services

import (
	"context"

	"roomkeeper/dto"
	"roomkeeper/errors"
	"roomkeeper/models"
	"roomkeeper/services/notification"
	"roomkeeper/validator"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const entityClient = "Client"

type ClientServiceInterface interface {
	List(ctx context.Context, query string) ([]models.Client, error)
	Get(ctx context.Context, id uint) (*models.Client, error)
	Create(ctx context.Context, req dto.CreateClientRequest) (*models.Client, error)
	Update(ctx context.Context, id uint, req dto.UpdateClientRequest) (*models.Client, error)
	Delete(ctx context.Context, id uint) error
}

type ClientService struct {
	ServiceOptions
}

func NewClientService(opts ServiceOptions) *ClientService {
	return &ClientService{ServiceOptions: opts.withDefaults()}
}

// List returns every client ordered by id, narrowed by a fuzzy name query.
func (s *ClientService) List(ctx context.Context, query string) ([]models.Client, error) {
	var clients []models.Client
	err := s.Cache.load(ctx, CacheKeyClients, &clients, func() error {
		return s.fetchAll(ctx, &clients)
	})
	if err != nil {
		return nil, err
	}
	return FilterClients(query, clients), nil
}

func (s *ClientService) fetchAll(ctx context.Context, clients *[]models.Client) error {
	if err := s.DB.WithContext(ctx).Order("id").Find(clients).Error; err != nil {
		return errors.FromDB(err, entityClient, 0)
	}
	return nil
}

// WarmCache reloads the cached client list from the database.
func (s *ClientService) WarmCache(ctx context.Context) error {
	var clients []models.Client
	return s.Cache.refresh(ctx, CacheKeyClients, &clients, func() error {
		return s.fetchAll(ctx, &clients)
	})
}

func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.DB.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, errors.FromDB(err, entityClient, id)
	}
	return &client, nil
}

func (s *ClientService) Create(ctx context.Context, req dto.CreateClientRequest) (*models.Client, error) {
	client := models.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := validator.ValidateClient(&client); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&client).Error
	})
	if err != nil {
		return nil, errors.FromDB(err, entityClient, 0)
	}
	s.afterWrite(ctx, notification.ActionCreated, client.ID)
	return &client, nil
}

// Update only writes the fields present in req.
func (s *ClientService) Update(ctx context.Context, id uint, req dto.UpdateClientRequest) (*models.Client, error) {
	var client models.Client
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&client, id).Error; err != nil {
			return err
		}
		if req.FirstName != nil {
			client.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			client.LastName = *req.LastName
		}
		if err := validator.ValidateClient(&client); err != nil {
			return err
		}
		fields := req.Fields()
		if len(fields) == 0 {
			return nil
		}
		return tx.Model(&client).Updates(fields).Error
	})
	if err != nil {
		return nil, errors.FromDB(err, entityClient, id)
	}
	s.afterWrite(ctx, notification.ActionUpdated, client.ID)
	return &client, nil
}

// Delete removes the client. Its room_client rows go with it through the FK cascade.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Client{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound(entityClient, id)
		}
		return nil
	})
	if err != nil {
		return errors.FromDB(err, entityClient, id)
	}
	s.afterWrite(ctx, notification.ActionDeleted, id)
	return nil
}

func (s *ClientService) afterWrite(ctx context.Context, action string, id uint) {
	s.Cache.dropLists(ctx)
	s.publish(notification.EntityClient, action, id)
	s.Logger.Info("client "+action, zap.Uint("id", id))
}
