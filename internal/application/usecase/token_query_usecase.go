// internal/application/usecase/token_query_usecase.go
package usecase

import (
	"context"
	"strings"

	tokdom "aiqx/internal/domain/token"
)

// TokenQueryUsecase serves read access to deployment records.
type TokenQueryUsecase struct {
	Repo tokdom.DeploymentRepository
}

func NewTokenQueryUsecase(repo tokdom.DeploymentRepository) *TokenQueryUsecase {
	return &TokenQueryUsecase{Repo: repo}
}

func (uc *TokenQueryUsecase) List(ctx context.Context) ([]tokdom.TokenDeployment, error) {
	if uc == nil || uc.Repo == nil {
		return nil, nil
	}
	return uc.Repo.List(ctx)
}

func (uc *TokenQueryUsecase) Get(ctx context.Context, id string) (tokdom.TokenDeployment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return tokdom.TokenDeployment{}, tokdom.ErrInvalidID
	}
	if uc == nil || uc.Repo == nil {
		return tokdom.TokenDeployment{}, tokdom.WrapNotFound(nil, "deployment "+id)
	}
	return uc.Repo.GetByID(ctx, id)
}
