package interfaces

import (
	"context"

	"github.com/m-mizutani/depatch/pkg/domain/model"
)

// PatchUseCase adds [patch] sections to a Cargo manifest
type PatchUseCase interface {
	// Patch builds the patch described by req and appends it to the manifest
	Patch(ctx context.Context, req *model.PatchRequest) (*model.PatchTable, error)
}
