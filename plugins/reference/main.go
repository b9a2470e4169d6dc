package main

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/go-plugin"

	placeholderrpc "questbook/internal/modules/placeholder/adapter/out/rpc"
)

// Reference placeholder plugin. Expands {viewer}, {quest} and {date}
// tokens in quest pages.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *placeholderrpc.Empty) (*placeholderrpc.Metadata, error) {
	return &placeholderrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"expand"},
	}, nil
}

func (s *server) Expand(_ context.Context, in *placeholderrpc.ExpandRequest) (*placeholderrpc.ExpandResponse, error) {
	replacer := strings.NewReplacer(
		"{viewer}", in.Viewer,
		"{quest}", in.QuestID,
		"{date}", time.Now().Format("2006-01-02"),
	)
	pages := make([]string, len(in.Pages))
	for i, page := range in.Pages {
		pages[i] = replacer.Replace(page)
	}
	return &placeholderrpc.ExpandResponse{Pages: pages}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: placeholderrpc.HandshakeConfig,
		Plugins:         placeholderrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
