// Package pglite drives a pre-built Postgres WASM module under a
// minimal WASI host, the pure-Go analogue of original_source's
// wasmtime-based pglite driver. github.com/tetratelabs/wazero replaces
// wasmtime/wasmtime-wasi; no pack example in the retrieved corpus wires
// a WASM runtime, so this dependency is named directly rather than
// grounded on a pack file (see DESIGN.md).
package pglite

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/dbschema-go/dbschema/testrunner"
)

// inputOffset is the linear-memory offset spec.md §4.F names: message
// bytes destined for _interactive_write are copied here first.
const inputOffset uint32 = 1

const (
	retryInterval = 50 * time.Millisecond
	retryCeiling  = 5 * time.Second
)

// runtime is the process-wide WASM runtime singleton (spec.md §5, §9):
// lazily initialized, guarded by a mutex since no concurrency is
// actually required but the invariant must still be enforced.
var (
	runtimeOnce sync.Once
	runtimeMu   sync.Mutex
	rt          wazero.Runtime
	compiled    wazero.CompiledModule
)

func ensureRuntime(ctx context.Context, wasmPath string) (wazero.Runtime, wazero.CompiledModule, error) {
	var err error
	runtimeOnce.Do(func() {
		rt = wazero.NewRuntime(ctx)
		if _, wasiErr := wasi_snapshot_preview1.Instantiate(ctx, rt); wasiErr != nil {
			err = fmt.Errorf("failed to instantiate WASI: %w", wasiErr)
			return
		}
		bytecode, readErr := os.ReadFile(wasmPath)
		if readErr != nil {
			err = fmt.Errorf("failed to read pglite module: %w", readErr)
			return
		}
		compiled, err = rt.CompileModule(ctx, bytecode)
	})
	return rt, compiled, err
}

// Driver is a testrunner.Driver backed by one pglite WASM instance.
type Driver struct {
	mod           api.Module
	initdb        func(ctx context.Context) error
	useWire       func(ctx context.Context) error
	write         func(ctx context.Context, n int32) error
	backend       func(ctx context.Context) error
	getChannel    func(ctx context.Context) (int32, error)
	read          func(ctx context.Context) (int32, error)
	notifications []notification
}

type notification struct {
	channel string
	payload string
}

// Open instantiates the WASM module at wasmPath, initializes the
// database on first use, and switches it into wire-protocol mode.
func Open(ctx context.Context, wasmPath string) (*Driver, error) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()

	runtime, mod, err := ensureRuntime(ctx, wasmPath)
	if err != nil {
		return nil, err
	}

	instance, err := runtime.InstantiateModule(ctx, mod, wazero.NewModuleConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate pglite module: %w", err)
	}

	d := &Driver{mod: instance}
	d.bindExports()

	if err := d.initdb(ctx); err != nil {
		return nil, fmt.Errorf("_pgl_initdb failed: %w", err)
	}
	if err := d.useWire(ctx); err != nil {
		return nil, fmt.Errorf("_use_wire failed: %w", err)
	}
	return d, nil
}

func (d *Driver) bindExports() {
	call0 := func(name string) func(context.Context) error {
		fn := d.mod.ExportedFunction(name)
		return func(ctx context.Context) error {
			_, err := fn.Call(ctx)
			return err
		}
	}
	d.initdb = call0("_pgl_initdb")
	d.useWire = func(ctx context.Context) error {
		_, err := d.mod.ExportedFunction("_use_wire").Call(ctx, 1)
		return err
	}
	d.write = func(ctx context.Context, n int32) error {
		_, err := d.mod.ExportedFunction("_interactive_write").Call(ctx, uint64(n))
		return err
	}
	d.backend = call0("_pgl_backend")
	d.getChannel = func(ctx context.Context) (int32, error) {
		res, err := d.mod.ExportedFunction("_get_channel").Call(ctx)
		if err != nil {
			return 0, err
		}
		return int32(res[0]), nil
	}
	d.read = func(ctx context.Context) (int32, error) {
		res, err := d.mod.ExportedFunction("_interactive_read").Call(ctx)
		if err != nil {
			return 0, err
		}
		return int32(res[0]), nil
	}
}

// roundTrip writes frame to the module's input buffer and drives the
// backend until it reports ReadyForQuery, collecting every decoded
// message along the way. Transient short reads are retried on the
// spec's 50ms/5s schedule before giving up.
func (d *Driver) roundTrip(ctx context.Context, frame []byte) ([]backendMessage, error) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()

	mem := d.mod.Memory()
	if !mem.Write(inputOffset, frame) {
		return nil, fmt.Errorf("failed to write %d bytes at offset %d", len(frame), inputOffset)
	}
	if err := d.write(ctx, int32(len(frame))); err != nil {
		return nil, err
	}
	if err := d.backend(ctx); err != nil {
		return nil, err
	}

	var all []backendMessage
	deadline := time.Now().Add(retryCeiling)
	for {
		n, err := d.read(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			buf, ok := mem.Read(inputOffset, uint32(n))
			if !ok {
				return nil, fmt.Errorf("failed to read %d bytes at offset %d", n, inputOffset)
			}
			msgs, _ := readBackendMessages(buf)
			all = append(all, msgs...)
			for _, m := range msgs {
				if m.kind == 'Z' {
					return all, nil
				}
				if m.kind == 'A' {
					ch, payload := parseNotificationResponse(m.body)
					d.notifications = append(d.notifications, notification{channel: ch, payload: payload})
				}
			}
		}
		if time.Now().After(deadline) {
			return all, fmt.Errorf("timed out waiting for ReadyForQuery")
		}
		time.Sleep(retryInterval)
	}
}

func (d *Driver) Begin(ctx context.Context) (testrunner.Tx, error) {
	if _, err := d.roundTrip(ctx, simpleQuery("BEGIN")); err != nil {
		return nil, err
	}
	return &tx{driver: d}, nil
}

func (d *Driver) Exec(ctx context.Context, stmt string) error {
	msgs, err := d.roundTrip(ctx, simpleQuery(stmt))
	if err != nil {
		return err
	}
	return requireNoError(msgs)
}

func (d *Driver) Close() error {
	return d.mod.Close(context.Background())
}

type tx struct {
	driver *Driver
}

func (t *tx) Exec(ctx context.Context, stmt string) error {
	msgs, err := t.driver.roundTrip(ctx, simpleQuery(stmt))
	if err != nil {
		return err
	}
	return requireNoError(msgs)
}

func (t *tx) QueryRow(ctx context.Context, query string) (any, bool, error) {
	msgs, err := t.driver.roundTrip(ctx, simpleQuery(query))
	if err != nil {
		return nil, false, err
	}
	if err := requireNoError(msgs); err != nil {
		return nil, false, err
	}
	for _, m := range msgs {
		if m.kind == 'D' {
			r := parseDataRow(m.body)
			if len(r) == 0 || r[0] == nil {
				return nil, true, nil
			}
			return string(r[0]), true, nil
		}
	}
	return nil, false, nil
}

func (t *tx) QueryAll(ctx context.Context, query string) ([][]string, error) {
	msgs, err := t.driver.roundTrip(ctx, simpleQuery(query))
	if err != nil {
		return nil, err
	}
	if err := requireNoError(msgs); err != nil {
		return nil, err
	}
	var out [][]string
	for _, m := range msgs {
		if m.kind != 'D' {
			continue
		}
		r := parseDataRow(m.body)
		cols := make([]string, len(r))
		for i, v := range r {
			if v != nil {
				cols[i] = string(v)
			}
		}
		out = append(out, cols)
	}
	return out, nil
}

func (t *tx) Listen(ctx context.Context, channel string) error {
	return t.Exec(ctx, fmt.Sprintf("LISTEN %s", channel))
}

// AwaitNotification polls the driver's accumulated notification queue
// (populated as a side effect of every roundTrip) on the same 50ms/5s
// schedule, since pglite has no separate async notification socket to
// block on.
func (t *tx) AwaitNotification(ctx context.Context) (string, bool, error) {
	deadline := time.Now().Add(retryCeiling)
	for {
		if len(t.driver.notifications) > 0 {
			n := t.driver.notifications[0]
			t.driver.notifications = t.driver.notifications[1:]
			return n.payload, true, nil
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return "", false, nil
		}
		time.Sleep(retryInterval)
	}
}

func (t *tx) Rollback() error {
	_, err := t.driver.roundTrip(context.Background(), simpleQuery("ROLLBACK"))
	return err
}
