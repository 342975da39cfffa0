package service

import (
	"context"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/ledgersync"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository"
)

type itemService struct {
	itemRepo repository.ItemRepository
	engine   ledgersync.Engine
}

func NewItemService(itemRepo repository.ItemRepository, engine ledgersync.Engine) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		engine:   engine,
	}
}

func (s *itemService) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	item.Normalize()
	if err := item.Validate(); err != nil {
		return err
	}
	if err := checkInvestmentPlan(item); err != nil {
		return err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return err
	}
	return s.engine.ItemSaved(ctx, nil, item)
}

func (s *itemService) GetItem(ctx context.Context, orgID, id int32) (*domain.InventoryItem, error) {
	return s.itemRepo.GetByID(ctx, orgID, id)
}

func (s *itemService) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	before, err := s.itemRepo.GetByID(ctx, item.OrgID, item.ID)
	if err != nil {
		return err
	}
	item.Normalize()
	if err := item.Validate(); err != nil {
		return err
	}
	if err := checkInvestmentPlan(item); err != nil {
		return err
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return err
	}
	if err := s.engine.ItemSaved(ctx, before, item); err != nil {
		logger.Error("Item investment sync failed", "item_id", item.ID, "org_id", item.OrgID, "error", err)
		return err
	}
	return nil
}

// DeleteItem voids the item's investment entries before removing the row.
func (s *itemService) DeleteItem(ctx context.Context, orgID, id int32) error {
	item, err := s.itemRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if err := s.engine.ItemDeleted(ctx, item); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, orgID, id)
}

func (s *itemService) ListItems(ctx context.Context, orgID int32) ([]domain.InventoryItem, error) {
	return s.itemRepo.List(ctx, orgID)
}

func (s *itemService) ListAvailableItems(ctx context.Context, orgID int32, from, to time.Time) ([]domain.InventoryItem, error) {
	if from.After(to) {
		return nil, domain.NewValidationError("from", "must not be after to")
	}
	return s.itemRepo.ListAvailable(ctx, orgID, from, to)
}

func checkInvestmentPlan(item *domain.InventoryItem) error {
	if item.AcquisitionCost.Valid && item.InstallmentCount <= 0 {
		return &domain.ConsistencyError{Reason: "installment_count must be positive"}
	}
	return nil
}
