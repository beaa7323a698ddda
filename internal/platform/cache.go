package platform

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/computeruseprotocol/go-sdk/internal/cuperr"
)

// HelperCache lazily compiles native helper binaries into a process-wide
// temp directory keyed by source hash. Concurrent initializations are
// safe: the binary is written to a temp file and renamed into place, so a
// second compiler racing the first produces a functionally identical
// binary and the last rename wins.
type HelperCache struct {
	dir string
}

// NewHelperCache returns a cache rooted under the OS temp directory.
func NewHelperCache(subdir string) *HelperCache {
	return &HelperCache{dir: filepath.Join(os.TempDir(), subdir)}
}

// Path returns the stable cache path for a helper identified by name and
// the hash of its source.
func (c *HelperCache) Path(name, source string) string {
	sum := sha256.Sum256([]byte(source))
	return filepath.Join(c.dir, fmt.Sprintf("%s-%s", name, hex.EncodeToString(sum[:8])))
}

// Ensure returns the path to a compiled helper, compiling it with compile
// if absent. compile receives the destination path it must produce.
func (c *HelperCache) Ensure(ctx context.Context, name, source string, compile func(ctx context.Context, dst string) error) (string, error) {
	dst := c.Path(name, source)
	if fileExecutable(dst) {
		return dst, nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", cuperr.Wrap(cuperr.PlatformFailure, err, "create helper cache dir: %v", err)
	}

	tmp := dst + fmt.Sprintf(".tmp-%d", os.Getpid())
	cctx, cancel := context.WithTimeout(ctx, CompileTimeout)
	defer cancel()
	if err := compile(cctx, tmp); err != nil {
		os.Remove(tmp)
		if cctx.Err() == context.DeadlineExceeded {
			return "", cuperr.New(cuperr.PlatformTimeout, "helper %s compilation timed out after %s", name, CompileTimeout)
		}
		return "", err
	}
	if err := os.Chmod(tmp, 0o755); err != nil {
		os.Remove(tmp)
		return "", cuperr.Wrap(cuperr.PlatformFailure, err, "chmod helper %s: %v", name, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", cuperr.Wrap(cuperr.PlatformFailure, err, "install helper %s: %v", name, err)
	}
	return dst, nil
}

// Invalidate removes a cached helper so the next Ensure recompiles it.
// Used when a cached binary fails to start within its deadline.
func (c *HelperCache) Invalidate(name, source string) {
	os.Remove(c.Path(name, source))
}

// startupProbeTimeout bounds the health check of a cached helper binary.
const startupProbeTimeout = 5 * time.Second

// Probe runs the helper with the given args and reports whether it
// started successfully within the startup deadline. A corrupt cached
// binary fails here and should be invalidated and recompiled.
func (c *HelperCache) Probe(ctx context.Context, path string, args ...string) bool {
	_, err := RunOutput(ctx, startupProbeTimeout, path, args...)
	return err == nil
}

func fileExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0o111 != 0
}
