package usecase

import (
	"context"

	"audiomark/internal/modules/share/domain"
	"audiomark/internal/modules/share/dto"
	sharein "audiomark/internal/modules/share/port/in"
	"audiomark/internal/modules/share/service"
)

type Interactor struct {
	svc *service.ShareService
}

func NewInteractor(svc *service.ShareService) sharein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Handoff(ctx context.Context, input dto.HandoffInput) (dto.HandoffOutput, error) {
	note := domain.Note{
		DocumentRef: input.DocumentRef,
		Subject:     input.Subject,
		Body:        input.Body,
		MIME:        input.MIME,
		Count:       input.Count,
	}
	record, receipt, err := i.svc.Handoff(ctx, note, input.Preferred)
	if err != nil {
		return dto.HandoffOutput{}, err
	}
	return dto.HandoffOutput{Route: string(record.Route), Target: record.Target, Location: receipt.Location}, nil
}

func (i *Interactor) ListTargets(ctx context.Context) ([]dto.TargetInfo, error) {
	return i.svc.ListTargets(ctx), nil
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.HistoryEntry, error) {
	records, err := i.svc.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryEntry, 0, len(records))
	for _, r := range records {
		out = append(out, dto.HistoryEntry{
			ID:          r.ID,
			DocumentRef: r.DocumentRef,
			Subject:     r.Subject,
			Count:       r.Count,
			Route:       string(r.Route),
			Target:      r.Target,
			ExportedAt:  r.ExportedAt,
		})
	}
	return out, nil
}
