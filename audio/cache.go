package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/nodegame/asset"
)

// clip is a fully decoded sound file
type clip struct {
	buf    *beep.Buffer
	length float64 // seconds
}

// clipCache decodes each project sound once
type clipCache struct {
	mu     sync.RWMutex
	opener asset.Opener
	store  map[string]*clip
}

func newClipCache(opener asset.Opener) *clipCache {
	return &clipCache{
		opener: opener,
		store:  make(map[string]*clip),
	}
}

// get returns the cached clip or decodes it on demand
func (c *clipCache) get(rel string) (*clip, error) {
	c.mu.RLock()
	if cl, ok := c.store[rel]; ok {
		c.mu.RUnlock()
		return cl, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if cl, ok := c.store[rel]; ok {
		return cl, nil
	}

	cl, err := c.decode(rel)
	if err != nil {
		return nil, err
	}
	c.store[rel] = cl
	return cl, nil
}

func (c *clipCache) decode(rel string) (*clip, error) {
	if c.opener == nil {
		return nil, fmt.Errorf("%w: %s: no opener", ErrSound, rel)
	}
	rc, err := c.opener.Open(rel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSound, err)
	}
	defer rc.Close()

	stream, format, err := wav.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSound, rel, err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSound, rel, err)
	}

	return &clip{
		buf:    buf,
		length: format.SampleRate.D(buf.Len()).Seconds(),
	}, nil
}

// count returns the number of cached clips
func (c *clipCache) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
