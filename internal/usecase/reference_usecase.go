package usecase

import (
	"context"

	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
)

// ReferenceUseCase exposes the reference listings used when composing escort
// forms. Mutation happens implicitly through run registration.
type ReferenceUseCase struct {
	rankRepo repository.RankRepository
	deptRepo repository.PoliceDepartmentRepository
}

func NewReferenceUseCase(
	rankRepo repository.RankRepository,
	deptRepo repository.PoliceDepartmentRepository,
) *ReferenceUseCase {
	return &ReferenceUseCase{
		rankRepo: rankRepo,
		deptRepo: deptRepo,
	}
}

func (uc *ReferenceUseCase) ListRanks(ctx context.Context) ([]*domain.Rank, error) {
	return uc.rankRepo.List(ctx)
}

func (uc *ReferenceUseCase) ListDepartments(ctx context.Context) ([]*domain.PoliceDepartment, error) {
	return uc.deptRepo.List(ctx)
}
