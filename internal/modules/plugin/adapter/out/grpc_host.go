package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	pluginrpc "healthlog/internal/modules/plugin/adapter/out/rpc"
	"healthlog/internal/modules/plugin/domain"
	pluginout "healthlog/internal/modules/plugin/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout  = 3 * time.Second
	defaultCallTimeout   = 5 * time.Second
	defaultExportTimeout = 30 * time.Second
)

// GRPCHost starts one plugin process per call and kills it afterwards.
type GRPCHost struct {
	logger hclog.Logger
}

func NewGRPCHost() pluginout.Host {
	return &GRPCHost{logger: hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) Export(ctx context.Context, manifest domain.Manifest, input domain.ExportRequest) (domain.Artifact, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Artifact{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultExportTimeout)
	defer cancel()
	response, err := client.Export(callCtx, &pluginrpc.ExportRequest{
		DocumentJSON: input.DocumentJSON,
		Options:      input.Options,
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.Artifact{}, fmt.Errorf("%w: export via %s", domain.ErrPluginTimeout, manifest.Name)
		}
		return domain.Artifact{}, fmt.Errorf("export: %w", err)
	}
	return domain.Artifact{
		FileExtension: response.FileExtension,
		ContentType:   response.ContentType,
		Payload:       response.Payload,
	}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (pluginrpc.ExporterClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           h.logger,
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.ExporterClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
