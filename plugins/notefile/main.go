// Command notefile is a share-target plugin that writes each note to a text
// file in $AUDIOMARK_NOTEFILE_DIR (default: <tmp>/audiomark-notefile).
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-plugin"

	sharerpc "audiomark/internal/modules/share/adapter/out/rpc"
	"audiomark/internal/platform/slug"
)

const dirEnv = "AUDIOMARK_NOTEFILE_DIR"

type server struct {
	dir string
}

func (s *server) GetMetadata(_ context.Context, _ *sharerpc.Empty) (*sharerpc.Metadata, error) {
	return &sharerpc.Metadata{
		Name:    "notefile",
		Version: "1.0.0",
		Formats: []string{"text/plain"},
	}, nil
}

func (s *server) Share(_ context.Context, in *sharerpc.ShareRequest) (*sharerpc.ShareResponse, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, fmt.Errorf("empty note body")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create note dir: %w", err)
	}
	path := filepath.Join(s.dir, slug.Make(in.Subject)+".txt")
	content := in.Subject + "\n" + in.DocumentRef + "\n\n" + in.Body
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}
	return &sharerpc.ShareResponse{Location: path}, nil
}

func main() {
	dir := os.Getenv(dirEnv)
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "audiomark-notefile")
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: sharerpc.HandshakeConfig,
		Plugins:         sharerpc.PluginMap(&server{dir: dir}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
