package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "share_target"
	serviceName       = "audiomark.share.v1.ShareTarget"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodShare       = "/" + serviceName + "/Share"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "AUDIOMARK_PLUGIN",
	MagicCookieValue: "audiomark",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Formats []string `json:"formats"`
}

type ShareRequest struct {
	DocumentRef string `json:"document_ref"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	MIME        string `json:"mime"`
	Count       int32  `json:"count"`
}

type ShareResponse struct {
	Location string `json:"location"`
}

type ShareTargetServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Share(ctx context.Context, in *ShareRequest) (*ShareResponse, error)
}

type ShareTargetClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Share(ctx context.Context, in *ShareRequest) (*ShareResponse, error)
}

type shareTargetClient struct {
	conn *grpc.ClientConn
}

func NewShareTargetClient(conn *grpc.ClientConn) ShareTargetClient {
	return &shareTargetClient{conn: conn}
}

func (c *shareTargetClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *shareTargetClient) Share(ctx context.Context, in *ShareRequest) (*ShareResponse, error) {
	out := &ShareResponse{}
	if err := c.conn.Invoke(ctx, methodShare, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterShareTargetServer(server grpc.ServiceRegistrar, impl ShareTargetServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*ShareTargetServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Share",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ShareRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Share(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodShare}
					handler := func(ctx context.Context, req any) (any, error) {
						shareReq, ok := req.(*ShareRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Share(ctx, shareReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/share-target-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl ShareTargetServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterShareTargetServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewShareTargetClient(conn), nil
}

func PluginMap(impl ShareTargetServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
