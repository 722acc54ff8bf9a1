package session

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/shellmenu/internal/layout"
	"github.com/atomicstack/shellmenu/internal/logging/events"
	"github.com/atomicstack/shellmenu/internal/menu"
)

const (
	// pipeMaxBufSize bounds the buffered subprocess output at 1 MiB.
	pipeMaxBufSize = 1 << 20
	// pipeTimeout is how long a pipemenu process may run before it is
	// killed.
	pipeTimeout = 4000 * time.Millisecond
	// pipeReadChunk is the per-readiness read size: two 4k pages.
	pipeReadChunk = 8192
)

// Pipemenu abort classes. None are fatal; the activation simply yields no
// subtree.
var (
	ErrPipeOverflow  = errors.New("pipemenu output exceeds buffer cap")
	ErrPipeTimeout   = errors.New("pipemenu timed out")
	ErrPipeMalformed = errors.New("pipemenu output is not menu markup")
)

// PipeResult is the outcome of one pipemenu activation, delivered on the
// engine's result channel and handed back via HandlePipeResult.
type PipeResult struct {
	ctx *pipeContext
	Buf []byte
	Err error
}

// pipeContext is the ephemeral state of one in-flight activation. Exactly
// one may be outstanding per engine; teardown runs exactly once.
type pipeContext struct {
	item    *menu.Item
	execute string

	cmd    *exec.Cmd
	stdout io.ReadCloser
	timer  *time.Timer

	timedOut atomic.Bool
	teardown sync.Once
}

func (c *pipeContext) kill() {
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	if c.stdout != nil {
		_ = c.stdout.Close()
	}
}

// release detaches the timeout watch and reaps the subprocess. Idempotent:
// the timeout callback, the reader and the engine may all race to be last.
func (c *pipeContext) release() {
	c.teardown.Do(func() {
		if c.timer != nil {
			c.timer.Stop()
		}
		c.kill()
		if c.cmd != nil {
			_ = c.cmd.Wait()
		}
	})
}

// Results delivers pipemenu outcomes. The driving loop forwards each one to
// HandlePipeResult on the control goroutine.
func (e *Engine) Results() <-chan PipeResult {
	return e.results
}

// SetPipeTimeout overrides the pipemenu deadline.
func (e *Engine) SetPipeTimeout(d time.Duration) {
	e.pipeTimeout = d
}

// startPipemenu begins an activation for a pending pipemenu item: spawn the
// generate command with an output pipe, bound its runtime and stream its
// output from a reader goroutine. Spawn failure degrades to an absent
// submenu.
func (e *Engine) startPipemenu(it *menu.Item) {
	if e.reg.Lookup(it.PipeID) != nil {
		events.Pipe.DuplicateID(it.PipeID)
		return
	}

	cmd := exec.Command("/bin/sh", "-c", it.Execute)
	stdout, err := cmd.StdoutPipe()
	if err == nil {
		err = cmd.Start()
	}
	if err != nil {
		events.Pipe.SpawnFailed(it.Execute, err)
		return
	}

	ctx := &pipeContext{item: it, execute: it.Execute, cmd: cmd, stdout: stdout}
	ctx.timer = time.AfterFunc(e.pipeTimeout, func() {
		ctx.timedOut.Store(true)
		ctx.kill()
	})
	e.pipe = ctx
	e.awaitingPipe = true
	events.Pipe.Spawned(it.PipeID, it.Execute, cmd.Process.Pid)

	go func() {
		buf, err := readPipe(ctx.stdout, it.PipeID, it.Execute, ctx.kill, &ctx.timedOut)
		e.results <- PipeResult{ctx: ctx, Buf: buf, Err: err}
	}()
}

// readPipe streams subprocess output in bounded chunks until end-of-stream,
// enforcing the buffer cap and classifying the outcome.
func readPipe(r io.Reader, id, execute string, kill func(), timedOut *atomic.Bool) ([]byte, error) {
	chunk := make([]byte, pipeReadChunk)
	var buf bytes.Buffer
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if buf.Len()+n > pipeMaxBufSize {
				events.Pipe.Overflow(id, execute, pipeMaxBufSize)
				kill()
				return nil, ErrPipeOverflow
			}
			buf.Write(chunk[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if timedOut.Load() {
				events.Pipe.Timeout(id, execute)
				return nil, ErrPipeTimeout
			}
			events.Pipe.ReadFailed(id, err)
			return nil, err
		}
	}
	if timedOut.Load() {
		events.Pipe.Timeout(id, execute)
		return nil, ErrPipeTimeout
	}
	// Guard against badly formed data such as binary output.
	if !startsWithLessThan(buf.Bytes()) {
		events.Pipe.Malformed(id)
		return nil, ErrPipeMalformed
	}
	return buf.Bytes(), nil
}

func startsWithLessThan(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// HandlePipeResult completes an activation on the control goroutine. The
// originating context is released exactly once. Results from an activation
// that is no longer outstanding (aborted, or superseded by a newer one for
// the same item) are dropped, not spliced.
func (e *Engine) HandlePipeResult(res PipeResult) {
	if res.ctx == nil {
		return
	}
	res.ctx.release()
	if e.pipe != res.ctx {
		return
	}
	e.pipe = nil
	e.awaitingPipe = false
	if res.Err != nil {
		return
	}
	e.splicePipemenu(res.ctx.item, res.Buf)
}

// abortPipe interrupts an outstanding activation during teardown. The reader
// goroutine still posts its (failed) result, which HandlePipeResult then
// discards.
func (e *Engine) abortPipe() {
	if e.pipe == nil {
		return
	}
	e.pipe.release()
	e.pipe = nil
	e.awaitingPipe = false
}

// splicePipemenu parses buffered pipemenu output into a synthetic menu (the
// output is typically a bare fragment without its own toplevel element),
// lays the subtree out with the pending item's inherited alignment and links
// it in.
func (e *Engine) splicePipemenu(it *menu.Item, buf []byte) {
	parent := it.Parent
	if parent == nil {
		events.Pipe.ParentGone(it.PipeID)
		return
	}
	if parent.Node == nil || !parent.Node.Enabled() {
		events.Pipe.ParentGone(it.PipeID)
		return
	}

	pipeMenu := e.reg.Create(it.PipeID, "", parent, true)
	pipeMenu.TriggeredBy = parent.TriggeredBy

	if err := menu.ParseFragment(e.reg, pipeMenu, bytes.NewReader(buf)); err != nil {
		e.reg.DestroyFrom(pipeMenu)
		it.Submenu = nil
		return
	}
	it.Submenu = pipeMenu

	metrics := e.reg.Metrics()
	layout.PostProcess(e.reg)
	menu.Validate(e.reg)

	align := parent.Align
	x, y := 0, 0
	if parent.Node != nil {
		x, y = parent.Node.Position()
	}
	y += it.Y
	if align&menu.OpenRight != 0 {
		x += parent.Width
	}
	layout.Configure(pipeMenu, x, y, align, e.lay, metrics, 1)

	if pipeMenu.Node != nil {
		pipeMenu.Node.SetEnabled(true)
	}
	parent.Selection.Menu = pipeMenu
	events.Pipe.Spliced(it.PipeID, len(pipeMenu.Items))
}
