package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundingBoxCenter(t *testing.T) {
	b := BoundingBox{X: 10, Y: 20, Width: 8, Height: 6}
	x, y := b.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestNewDetection(t *testing.T) {
	d, err := NewDetection("pothole", 0.87, BoundingBox{X: 10, Y: 10, Width: 50, Height: 50})
	require.NoError(t, err)
	require.Equal(t, "pothole", d.Label)
	require.Equal(t, "pothole (0.87)", d.String())
}

func TestNewDetectionRejectsBadInput(t *testing.T) {
	_, err := NewDetection("", 0.5, BoundingBox{Width: 10, Height: 10})
	require.Error(t, err)

	_, err = NewDetection("crack", 1.5, BoundingBox{Width: 10, Height: 10})
	require.Error(t, err)

	_, err = NewDetection("crack", 0.5, BoundingBox{Width: 0, Height: 10})
	require.Error(t, err)
}
