package catalog

import (
	"context"
	"fmt"

	"github.com/pablobarber/booking-service/internal/service/catalog/models"
)

// Service сервис каталога: мастера и прейскурант салона
type Service struct {
	staffRepo   StaffRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(staffRepo StaffRepository, catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		staffRepo:   staffRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListStaff возвращает реальных мастеров салона по возрастанию id
func (s *Service) ListStaff(ctx context.Context) (*models.StaffListResponse, error) {
	staff, err := s.staffRepo.ListReal(ctx)
	if err != nil {
		s.logger.Error("ListStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaffList(staff), nil
}

// ListServices возвращает услуги каталога
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}
