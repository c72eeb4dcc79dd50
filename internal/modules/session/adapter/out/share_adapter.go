package out

import (
	"context"

	"audiomark/internal/modules/session/domain"
	sessionout "audiomark/internal/modules/session/port/out"
	sharedto "audiomark/internal/modules/share/dto"
	sharein "audiomark/internal/modules/share/port/in"
)

type ShareAdapter struct {
	share sharein.Usecase
}

func NewShareAdapter(share sharein.Usecase) sessionout.ShareSink {
	return &ShareAdapter{share: share}
}

func (a *ShareAdapter) Handoff(ctx context.Context, note domain.Note, preferred string) (sessionout.Handoff, error) {
	out, err := a.share.Handoff(ctx, sharedto.HandoffInput{
		DocumentRef: note.DocumentRef,
		Subject:     note.Subject,
		Body:        note.Body,
		MIME:        note.MIME,
		Count:       note.Count,
		Preferred:   preferred,
	})
	if err != nil {
		return sessionout.Handoff{}, err
	}
	return sessionout.Handoff{Route: out.Route, Target: out.Target}, nil
}
