package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	sharerpc "audiomark/internal/modules/share/adapter/out/rpc"
	"audiomark/internal/modules/share/domain"
	shareout "audiomark/internal/modules/share/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct {
	callTimeout time.Duration
	logger      hclog.Logger
}

func NewGRPCHost(callTimeout time.Duration, logger hclog.Logger) shareout.PluginHost {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GRPCHost{callTimeout: callTimeout, logger: logger.Named("plugin")}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Formats: meta.Formats}, nil
}

func (h *GRPCHost) Share(ctx context.Context, manifest domain.Manifest, note domain.Note) (domain.Receipt, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Receipt{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()
	response, err := client.Share(callCtx, &sharerpc.ShareRequest{
		DocumentRef: note.DocumentRef,
		Subject:     note.Subject,
		Body:        note.Body,
		MIME:        note.MIME,
		Count:       int32(note.Count),
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.Receipt{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, manifest.Name)
		}
		return domain.Receipt{}, fmt.Errorf("share via plugin %s: %w", manifest.Name, err)
	}
	return domain.Receipt{Location: response.Location}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (sharerpc.ShareTargetClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  sharerpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          sharerpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(sharerpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(sharerpc.ShareTargetClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.callTimeout)
}
