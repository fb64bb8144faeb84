// internal/domain/token/repository_port.go
package token

import "context"

// DeploymentRepository is the persistence port for TokenDeployment.
type DeploymentRepository interface {
	GetByID(ctx context.Context, id string) (TokenDeployment, error)
	List(ctx context.Context) ([]TokenDeployment, error)
	Create(ctx context.Context, d TokenDeployment) (TokenDeployment, error)
	Save(ctx context.Context, d TokenDeployment) (TokenDeployment, error)
}

// OperationRepository is the persistence port for TokenOperation records.
type OperationRepository interface {
	Create(ctx context.Context, op TokenOperation) (TokenOperation, error)
	ListByMint(ctx context.Context, mintAddress string) ([]TokenOperation, error)
}
