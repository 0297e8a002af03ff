package employee

import (
	"context"
	"log/slog"

	"github.com/Ricsst/swiss-payroll-system-sub000/internal/domain/employee"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	repo   employee.EmployeeRepository
	logger *slog.Logger
}

func NewEmployeeService(repo employee.EmployeeRepository, logger *slog.Logger) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{repo: repo, logger: logger}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.SaveEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	entity, err := req.ToEntity()
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	entity.ID = uuid.Must(uuid.NewV7()).String()

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logger.Info("employee created",
		slog.String("employee_id", created.ID),
		slog.String("name", created.FullName()),
	)
	return employee.NewEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.SaveEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	entity, err := req.ToEntity()
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.repo.Update(ctx, id, entity)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(updated), nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("employee deleted", slog.String("employee_id", id))
	return nil
}
