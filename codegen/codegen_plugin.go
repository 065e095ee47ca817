// Copyright (c) 2026 The Typical Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package codegen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/sietse/typical/codegen/wire"
)

// Functions a codegen plugin exports. The plugin is a WASI module, usually
// built as a reactor (with an _initialize export).
const (
	allocateExport   = "typical_codegen_allocate"
	generateExport   = "typical_codegen_generate"
	initializeExport = "_initialize"

	defaultMemoryLimitPages = 16384
)

// PluginError is a failure reported by the plugin itself.
type PluginError struct {
	Message string
}

func (err *PluginError) Error() string {
	if err.Message == "" {
		return "codegen plugin failed without an error message"
	}
	return fmt.Sprintf("codegen plugin failed: %s", err.Message)
}

type PluginOption interface {
	apply(*PluginOptions)
}

type pluginOption func(*PluginOptions)

func (f pluginOption) apply(opts *PluginOptions) { f(opts) }

type PluginOptions struct {
	stderr           io.Writer
	logger           zerolog.Logger
	memoryLimitPages uint32
}

// WithStderr receives anything the plugin writes to its stderr.
func WithStderr(w io.Writer) PluginOption {
	return pluginOption(func(opts *PluginOptions) {
		opts.stderr = w
	})
}

func WithLogger(logger zerolog.Logger) PluginOption {
	return pluginOption(func(opts *PluginOptions) {
		opts.logger = logger
	})
}

// WithMemoryLimitPages bounds plugin memory, in 64 KiB pages.
func WithMemoryLimitPages(pages uint32) PluginOption {
	return pluginOption(func(opts *PluginOptions) {
		opts.memoryLimitPages = pages
	})
}

func NewPluginOptions(opts ...PluginOption) *PluginOptions {
	pluginOptions := &PluginOptions{
		stderr:           io.Discard,
		logger:           zerolog.Nop(),
		memoryLimitPages: defaultMemoryLimitPages,
	}
	for _, opt := range opts {
		opt.apply(pluginOptions)
	}
	return pluginOptions
}

// RunPlugin runs the codegen plugin in module (WebAssembly binary) on
// request, returning the files it generated.
func RunPlugin(
	ctx context.Context,
	module []byte,
	request *wire.Request,
	opts ...PluginOption,
) (*wire.Response, error) {
	return NewPluginOptions(opts...).RunPlugin(ctx, module, request)
}

func (opts *PluginOptions) RunPlugin(
	ctx context.Context,
	module []byte,
	request *wire.Request,
) (*wire.Response, error) {
	log := opts.logger

	requestBuf, err := wire.EncodeRequest(request)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	requestLen, err := safecast.Conv[uint32](len(requestBuf))
	if err != nil {
		return nil, fmt.Errorf("request too large: %w", err)
	}

	runtimeConfig := wazero.NewRuntimeConfigInterpreter().
		WithMemoryLimitPages(opts.memoryLimitPages).
		WithCloseOnContextDone(true)
	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeConfig)
	defer runtime.Close(ctx)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		return nil, fmt.Errorf("instantiate WASI: %w", err)
	}
	compiled, err := runtime.CompileModule(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("compile plugin: %w", err)
	}

	moduleConfig := wazero.NewModuleConfig().
		WithStderr(opts.stderr).
		WithStartFunctions()
	if _, ok := compiled.ExportedFunctions()[initializeExport]; ok {
		moduleConfig = moduleConfig.WithStartFunctions(initializeExport)
	}
	plugin, err := runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return nil, fmt.Errorf("instantiate plugin: %w", err)
	}

	mem := plugin.Memory()
	if mem == nil {
		return nil, fmt.Errorf("plugin does not export its memory")
	}
	allocate := plugin.ExportedFunction(allocateExport)
	if allocate == nil {
		return nil, fmt.Errorf("plugin does not export %q", allocateExport)
	}
	generate := plugin.ExportedFunction(generateExport)
	if generate == nil {
		return nil, fmt.Errorf("plugin does not export %q", generateExport)
	}

	results, err := allocate.Call(ctx, uint64(requestLen))
	if err != nil {
		return nil, fmt.Errorf("allocate request: %w", err)
	}
	requestPtr := uint32(results[0])
	if !mem.Write(requestPtr, requestBuf) {
		return nil, fmt.Errorf("write request: out of range")
	}

	results, err = allocate.Call(ctx, 4)
	if err != nil {
		return nil, fmt.Errorf("allocate response pointer: %w", err)
	}
	responsePtrPtr := uint32(results[0])

	log.Debug().
		Uint32("request_len", requestLen).
		Msg("calling codegen plugin")
	results, err = generate.Call(ctx, uint64(requestPtr), uint64(responsePtrPtr))
	if err != nil {
		return nil, fmt.Errorf("run plugin: %w", err)
	}
	rc := uint32(results[0])

	responsePtr, ok := mem.ReadUint32Le(responsePtrPtr)
	if !ok {
		return nil, fmt.Errorf("read response pointer: out of range")
	}
	header, ok := mem.Read(responsePtr, 4)
	if !ok {
		return nil, fmt.Errorf("read response header: out of range")
	}
	responseLen, err := wire.MessageLen(header)
	if err != nil {
		return nil, err
	}
	responseLen32, err := safecast.Conv[uint32](responseLen)
	if err != nil {
		return nil, fmt.Errorf("response too large: %w", err)
	}
	responseBuf, ok := mem.Read(responsePtr, responseLen32)
	if !ok {
		return nil, fmt.Errorf("read response: out of range")
	}
	response, err := wire.DecodeResponse(bytes.Clone(responseBuf))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Uint32("rc", rc).
		Int("files", len(response.Files)).
		Msg("codegen plugin finished")
	if rc != 0 || response.Error != "" {
		return nil, &PluginError{Message: strings.TrimSpace(response.Error)}
	}
	if len(response.Files) == 0 {
		return nil, fmt.Errorf("plugin did not generate any output files")
	}
	return response, nil
}

// OutputPath joins the components of a generated file's path onto outDir,
// rejecting components that would escape it.
func OutputPath(outDir string, parts []string) (string, error) {
	if len(parts) == 0 {
		return "", fmt.Errorf("invalid output path %q: empty", parts)
	}
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("invalid output path %q: bad path component %q", parts, part)
		}
		if part[0] == '/' || filepath.IsAbs(part) || filepath.VolumeName(part) != "" {
			return "", fmt.Errorf("invalid output path %q: absolute path component %q", parts, part)
		}
		if strings.ContainsAny(part, `/\`) {
			return "", fmt.Errorf("invalid output path %q: component %q contains a separator", parts, part)
		}
	}
	return filepath.Join(append([]string{outDir}, parts...)...), nil
}

// WriteFiles writes generated files under outDir.
func WriteFiles(outDir string, files []wire.File) error {
	for _, file := range files {
		outPath, err := OutputPath(outDir, file.Path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(outPath, file.Content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// LocatePlugin finds a plugin by name. A name containing a path separator or
// ending in ".wasm" is used as a path; otherwise "typical-codegen-NAME.wasm"
// is looked up in each directory of searchPath (a list separated by
// os.PathListSeparator).
func LocatePlugin(searchPath, name string) (string, error) {
	if strings.HasSuffix(name, ".wasm") || strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	if searchPath == "" {
		return "", fmt.Errorf("no plugin search path set, use --plugin-path or $TYPICAL_PLUGIN_PATH")
	}
	basename := fmt.Sprintf("typical-codegen-%s.wasm", name)
	for _, dir := range filepath.SplitList(searchPath) {
		pluginPath := filepath.Join(dir, basename)
		if _, err := os.Stat(pluginPath); err == nil {
			return pluginPath, nil
		}
	}
	return "", fmt.Errorf("codegen plugin %s not found in plugin path", basename)
}
