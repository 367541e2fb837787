package render

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	imageW = 240
	imageH = 280
)

// DefaultImageCacheSize covers every stage for the common life budgets.
const DefaultImageCacheSize = 64

type imageKey struct {
	maxFails int
	fails    int
}

// Images draws gallows PNGs and caches them by (max_fails, fails).
// Safe for concurrent use.
type Images struct {
	frames int
	cache  *lru.Cache[imageKey, []byte]
}

// NewImages builds a PNG renderer with the given number of stages
// (usually Renderer.Frames) and cache capacity.
func NewImages(frames, cacheSize int) (*Images, error) {
	if cacheSize < 1 {
		cacheSize = DefaultImageCacheSize
	}
	c, err := lru.New[imageKey, []byte](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Images{frames: frames, cache: c}, nil
}

// PNG returns the encoded gallows for the given counters.
// The returned slice is shared; callers must not modify it.
func (im *Images) PNG(maxFails, fails int) ([]byte, error) {
	k := imageKey{maxFails: maxFails, fails: fails}
	if b, ok := im.cache.Get(k); ok {
		return b, nil
	}
	b, err := drawGallows(Stage(fails, maxFails, im.frames), im.frames-1)
	if err != nil {
		return nil, err
	}
	im.cache.Add(k, b)
	return b, nil
}

// Len reports how many images are cached.
func (im *Images) Len() int { return im.cache.Len() }

// drawGallows draws the scaffold and the first stage*6/last body parts.
func drawGallows(stage, last int) ([]byte, error) {
	dc := gg.NewContext(imageW, imageH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(6)
	dc.DrawLine(20, 260, 150, 260) // base
	dc.DrawLine(50, 260, 50, 20)   // post
	dc.DrawLine(50, 20, 170, 20)   // beam
	dc.DrawLine(170, 20, 170, 50)  // rope
	dc.Stroke()

	parts := bodyParts()
	n := len(parts)
	if last > 0 {
		n = stage * len(parts) / last
	}
	if n > len(parts) {
		n = len(parts)
	}
	dc.SetRGB(0.6, 0.1, 0.1)
	dc.SetLineWidth(4)
	for _, draw := range parts[:n] {
		draw(dc)
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode gallows: %w", err)
	}
	return buf.Bytes(), nil
}

func bodyParts() []func(*gg.Context) {
	return []func(*gg.Context){
		func(dc *gg.Context) { dc.DrawCircle(170, 72, 22) },      // head
		func(dc *gg.Context) { dc.DrawLine(170, 94, 170, 170) },  // body
		func(dc *gg.Context) { dc.DrawLine(170, 110, 135, 145) }, // left arm
		func(dc *gg.Context) { dc.DrawLine(170, 110, 205, 145) }, // right arm
		func(dc *gg.Context) { dc.DrawLine(170, 170, 140, 220) }, // left leg
		func(dc *gg.Context) { dc.DrawLine(170, 170, 200, 220) }, // right leg
	}
}
