package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/peterbourgon/diskv/v3"
	"github.com/pkg/errors"

	"tableflip.dev/bizdesk/pkg/logging"
)

// Diskv persists one file per key below a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string

	// Logger receives watcher warnings. Nil discards them.
	Logger logging.Logger
}

var _ KV = (*Diskv)(nil)

// NewDiskv opens (creating if needed) a diskv store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errors.Wrap(err, "store: ensure base path")
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func (p *Diskv) logger() logging.Logger {
	if p.Logger == nil {
		return logging.Nop()
	}
	return p.Logger
}

// BasePath is the directory holding the key files.
func (p *Diskv) BasePath() string {
	return p.basePath
}

func (p *Diskv) Get(_ context.Context, key string) (string, bool, error) {
	if !p.d.Has(key) {
		return "", false, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "store: read %q", key)
	}
	return string(val), true, nil
}

func (p *Diskv) Set(_ context.Context, key, value string) error {
	if err := p.d.Write(key, []byte(value)); err != nil {
		return errors.Wrapf(err, "store: write %q", key)
	}
	return nil
}

func (p *Diskv) Clear(_ context.Context) error {
	if err := p.d.EraseAll(); err != nil {
		return errors.Wrap(err, "store: clear")
	}
	// EraseAll removes the base directory too; later writes recreate it, but
	// Watch needs it present.
	return os.MkdirAll(p.basePath, 0o755)
}

func (p *Diskv) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (p *Diskv) Close() error { return nil }

// keyToPathTransform shards keys into 256 directories by hash and stores the
// key itself as an url-safe base64 file name, so keys like "@ssl_list" or
// "Clients/old" stay valid file names.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{shardFor(key)},
		FileName: encodeKey(key),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	key, err := decodeKey(pathKey.FileName)
	if err != nil {
		return fmt.Sprintf("pathToKeyTransform: %s", err)
	}
	return key
}

func shardFor(key string) string {
	return fmt.Sprintf("%02x", xxhash.Sum64String(key)&0xff)
}

func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func decodeKey(name string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
