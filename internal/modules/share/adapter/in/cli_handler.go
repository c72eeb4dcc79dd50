package in

import (
	"context"

	"audiomark/internal/modules/share/dto"
	sharein "audiomark/internal/modules/share/port/in"
)

type CLIHandler struct {
	usecase sharein.Usecase
}

func NewCLIHandler(usecase sharein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListTargets(ctx context.Context) ([]dto.TargetInfo, error) {
	return h.usecase.ListTargets(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.HistoryEntry, error) {
	return h.usecase.History(ctx, limit)
}
