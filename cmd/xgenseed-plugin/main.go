// Command xgenseed-plugin builds the renderer plugin as a C shared library:
//
//	go build -buildmode=c-shared -o xgenseed.so ./cmd/xgenseed-plugin
//
// The host calls create_assembly_factory once per registration and hands the
// returned handle back to release_assembly_factory when done. Before
// unloading the library it calls unload_xgenseed_plugin. The generator
// backend and log level come from XGENSEED_GENERATOR and XGENSEED_LOG_LEVEL.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/cgo"
	"sync"

	"github.com/aretw0/xgenseed"
	"github.com/aretw0/xgenseed/internal/logging"
	"github.com/aretw0/xgenseed/pkg/assembly"
	"github.com/aretw0/xgenseed/pkg/domain"
)

var (
	mu     sync.Mutex
	plugin *xgenseed.Plugin
	logger = newLogger()
)

func newLogger() *slog.Logger {
	level, err := logging.ParseLevel(os.Getenv("XGENSEED_LOG_LEVEL"))
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.Component(logging.New(level), "xgenseed-plugin")
}

// loadedPlugin returns the plugin, loading it on first use and again after
// an unload.
func loadedPlugin() (*xgenseed.Plugin, error) {
	mu.Lock()
	defer mu.Unlock()
	if plugin == nil {
		plugin = xgenseed.New(xgenseed.WithLogger(logger))
	}
	if err := plugin.Load(); err != nil {
		return nil, err
	}
	return plugin, nil
}

// unloadPlugin clears the generator backends. Factories handed out earlier
// stay valid until released.
func unloadPlugin() error {
	mu.Lock()
	defer mu.Unlock()
	if plugin == nil {
		return domain.ErrPluginNotLoaded
	}
	return plugin.Unload()
}

func generatorName() string {
	if name := os.Getenv("XGENSEED_GENERATOR"); name != "" {
		return name
	}
	return xgenseed.DefaultGenerator
}

// newFactoryHandle returns a handle to a fresh factory, or 0 on failure.
func newFactoryHandle() uintptr {
	p, err := loadedPlugin()
	if err != nil {
		logger.Error("failed to load plugin", "error", err)
		return 0
	}
	f, err := p.NewAssemblyFactory(generatorName())
	if err != nil {
		logger.Error("failed to create assembly factory", "error", err)
		return 0
	}
	return uintptr(cgo.NewHandle(f))
}

// releaseFactoryHandle releases the factory behind h and deletes the handle.
// Unknown or already released handles yield an error instead of a panic.
func releaseFactoryHandle(h uintptr) (err error) {
	if h == 0 {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: factory handle %d: %v", domain.ErrAlreadyReleased, h, r)
		}
	}()
	handle := cgo.Handle(h)
	f, ok := handle.Value().(*assembly.Factory)
	handle.Delete()
	if !ok {
		return fmt.Errorf("handle %d does not hold an assembly factory", h)
	}
	return f.Release()
}

//export create_assembly_factory
func create_assembly_factory() C.uintptr_t {
	return C.uintptr_t(newFactoryHandle())
}

//export release_assembly_factory
func release_assembly_factory(h C.uintptr_t) {
	if err := releaseFactoryHandle(uintptr(h)); err != nil {
		logger.Error("failed to release assembly factory", "error", err)
	}
}

//export unload_xgenseed_plugin
func unload_xgenseed_plugin() {
	if err := unloadPlugin(); err != nil {
		logger.Error("failed to unload plugin", "error", err)
	}
}

func main() {}
