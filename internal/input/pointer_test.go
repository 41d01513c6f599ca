package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		px, py float32
		x, y   float32
	}{
		{"top left", 0, 0, -1, 1},
		{"bottom right", 800, 600, 1, -1},
		{"center", 400, 300, 0, 0},
		{"quarter", 200, 450, -0.5, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := Normalize(tt.px, tt.py, 800, 600)
			assert.True(t, ok)
			assert.InDelta(t, tt.x, x, 1e-6)
			assert.InDelta(t, tt.y, y, 1e-6)
		})
	}

	_, _, ok := Normalize(10, 10, 0, 600)
	assert.False(t, ok)
}

func TestPointerZeroValue(t *testing.T) {
	var p Pointer
	x, y := p.Get()
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.False(t, p.Seen())
}

func TestPointerSetPixels(t *testing.T) {
	var p Pointer
	p.SetPixels(800, 0, 800, 600)
	x, y := p.Get()
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(1), y)
	assert.True(t, p.Seen())

	p.SetPixels(0, 0, 0, 0)
	x, y = p.Get()
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(1), y)
}

func TestPointerPairIsNeverTorn(t *testing.T) {
	var p Pointer
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			if i%2 == 0 {
				p.Set(1, 1)
			} else {
				p.Set(-1, -1)
			}
		}
	}()
	for i := 0; i < 10000; i++ {
		x, y := p.Get()
		assert.Equal(t, x, y)
	}
	wg.Wait()
}
