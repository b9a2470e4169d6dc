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
	PluginMapKey      = "questbook"
	serviceName       = "questbook.plugin.v1.PlaceholderPlugin"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodExpand      = "/" + serviceName + "/Expand"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "QUESTBOOK_PLUGIN",
	MagicCookieValue: "questbook",
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
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type ExpandRequest struct {
	Viewer  string   `json:"viewer"`
	QuestID string   `json:"quest_id"`
	Pages   []string `json:"pages"`
}

type ExpandResponse struct {
	Pages []string `json:"pages"`
}

type PlaceholderPluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Expand(ctx context.Context, in *ExpandRequest) (*ExpandResponse, error)
}

type PlaceholderPluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Expand(ctx context.Context, in *ExpandRequest) (*ExpandResponse, error)
}

type placeholderPluginClient struct {
	conn *grpc.ClientConn
}

func NewPlaceholderPluginClient(conn *grpc.ClientConn) PlaceholderPluginClient {
	return &placeholderPluginClient{conn: conn}
}

func (c *placeholderPluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *placeholderPluginClient) Expand(ctx context.Context, in *ExpandRequest) (*ExpandResponse, error) {
	out := &ExpandResponse{}
	if err := c.conn.Invoke(ctx, methodExpand, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterPlaceholderPluginServer(server grpc.ServiceRegistrar, impl PlaceholderPluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*PlaceholderPluginServer)(nil),
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
				MethodName: "Expand",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ExpandRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Expand(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodExpand}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ExpandRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Expand(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/placeholder-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl PlaceholderPluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterPlaceholderPluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewPlaceholderPluginClient(conn), nil
}

func PluginMap(impl PlaceholderPluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
