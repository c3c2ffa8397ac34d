package box

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rigidsim/internal/particle"
)

func TestWrap(t *testing.T) {
	b := New(10, 10, 10)

	tests := []struct {
		name    string
		pos     particle.Vec3
		img     [3]int
		wantPos particle.Vec3
		wantImg [3]int
	}{
		{"inside", particle.Vec3{1, -2, 3}, [3]int{0, 0, 0}, particle.Vec3{1, -2, 3}, [3]int{0, 0, 0}},
		{"past +x", particle.Vec3{5.3, 0, 0}, [3]int{0, 0, 0}, particle.Vec3{-4.7, 0, 0}, [3]int{1, 0, 0}},
		{"past -y", particle.Vec3{0, -5.1, 0}, [3]int{0, 0, 0}, particle.Vec3{0, 4.9, 0}, [3]int{0, -1, 0}},
		{"two boxes out", particle.Vec3{0, 0, 24}, [3]int{0, 0, 0}, particle.Vec3{0, 0, 4}, [3]int{0, 0, 2}},
		{"existing image", particle.Vec3{5.5, 0, 0}, [3]int{4, 1, -2}, particle.Vec3{-4.5, 0, 0}, [3]int{5, 1, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, img := b.Wrap(tt.pos, tt.img)
			for a := 0; a < 3; a++ {
				assert.InDelta(t, tt.wantPos[a], pos[a], 1e-12, "axis %d", a)
			}
			assert.Equal(t, tt.wantImg, img)
		})
	}
}

func TestWrapNonPeriodicAxis(t *testing.T) {
	b := New(10, 10, 10)
	b.Periodic[2] = false

	pos, img := b.Wrap(particle.Vec3{0, 0, 17}, [3]int{0, 0, 0})
	assert.Equal(t, 17.0, pos[2])
	assert.Equal(t, [3]int{0, 0, 0}, img)
}

func TestUnwrapRoundTrip(t *testing.T) {
	b := New(8, 12, 20)

	orig := particle.Vec3{13.5, -30.25, 7}
	pos, img := b.Wrap(orig, [3]int{0, 0, 0})
	back := b.Unwrap(pos, img)
	for a := 0; a < 3; a++ {
		assert.InDelta(t, orig[a], back[a], 1e-12)
	}
}

func TestMinImage(t *testing.T) {
	b := New(10, 10, 10)

	dr := b.MinImage(particle.Vec3{9, 0, -9})
	assert.InDelta(t, -1.0, dr[0], 1e-12)
	assert.InDelta(t, 1.0, dr[2], 1e-12)
}

func TestValidate(t *testing.T) {
	require.NoError(t, New(1, 2, 3).Validate())
	require.Error(t, New(0, 2, 3).Validate())
	require.Error(t, New(1, -2, 3).Validate())
}
