package in

import (
	"context"

	"audiomark/internal/modules/share/dto"
)

type Usecase interface {
	Handoff(ctx context.Context, input dto.HandoffInput) (dto.HandoffOutput, error)
	ListTargets(ctx context.Context) ([]dto.TargetInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	History(ctx context.Context, limit int) ([]dto.HistoryEntry, error)
}
