// internal/adapters/out/firestore/operation_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	tokdom "aiqx/internal/domain/token"
)

const operationsCollection = "tokenOperations"

// OperationRepositoryFS implements token.OperationRepository using
// Firestore.
type OperationRepositoryFS struct {
	Client *firestore.Client
}

func NewOperationRepositoryFS(client *firestore.Client) *OperationRepositoryFS {
	return &OperationRepositoryFS{Client: client}
}

func (r *OperationRepositoryFS) Create(ctx context.Context, op tokdom.TokenOperation) (tokdom.TokenOperation, error) {
	if r.Client == nil {
		return tokdom.TokenOperation{}, errors.New("firestore client is nil")
	}

	col := r.Client.Collection(operationsCollection)
	docRef := col.NewDoc()
	op.ID = docRef.ID

	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now().UTC()
	}

	data := map[string]interface{}{
		"type":        string(op.Type),
		"mintAddress": op.MintAddress,
		"network":     string(op.Network),
		"createdAt":   op.CreatedAt,
	}
	if op.Amount != "" {
		data["amount"] = op.Amount
	}
	if op.Target != "" {
		data["target"] = op.Target
	}
	if op.Signature != "" {
		data["signature"] = op.Signature
	}
	if op.ActorAddress != "" {
		data["actorAddress"] = op.ActorAddress
	}

	if _, err := docRef.Set(ctx, data); err != nil {
		return tokdom.TokenOperation{}, err
	}
	return op, nil
}

// ListByMint returns the audit trail of one mint, newest first.
func (r *OperationRepositoryFS) ListByMint(ctx context.Context, mintAddress string) ([]tokdom.TokenOperation, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	mintAddress = strings.TrimSpace(mintAddress)
	if mintAddress == "" {
		return nil, tokdom.ErrInvalidOperationMint
	}

	it := r.Client.Collection(operationsCollection).
		Where("mintAddress", "==", mintAddress).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	var out []tokdom.TokenOperation
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var raw struct {
			Type         string    `firestore:"type"`
			MintAddress  string    `firestore:"mintAddress"`
			Network      string    `firestore:"network"`
			Amount       string    `firestore:"amount"`
			Target       string    `firestore:"target"`
			Signature    string    `firestore:"signature"`
			ActorAddress string    `firestore:"actorAddress"`
			CreatedAt    time.Time `firestore:"createdAt"`
		}
		if err := doc.DataTo(&raw); err != nil {
			return nil, err
		}

		out = append(out, tokdom.TokenOperation{
			ID:           doc.Ref.ID,
			Type:         tokdom.OperationType(raw.Type),
			MintAddress:  raw.MintAddress,
			Network:      tokdom.Network(raw.Network),
			Amount:       raw.Amount,
			Target:       raw.Target,
			Signature:    raw.Signature,
			ActorAddress: raw.ActorAddress,
			CreatedAt:    raw.CreatedAt,
		})
	}
	return out, nil
}
