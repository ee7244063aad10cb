package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/require"

	"roadscan/internal/domain/entity"
)

func testImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 120, B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestAnnotateDrawsBoxes(t *testing.T) {
	src := testImage(t)
	original := append([]byte(nil), src...)

	det, err := entity.NewDetection("pothole", 0.87, entity.BoundingBox{X: 10, Y: 10, Width: 50, Height: 50})
	require.NoError(t, err)

	out, err := NewBoxAnnotator().Annotate(src, []entity.Detection{det})
	require.NoError(t, err)
	require.NotEqual(t, src, out)

	// Исходные байты не изменились.
	require.Equal(t, original, src)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())
}

func TestAnnotateDeterministic(t *testing.T) {
	src := testImage(t)
	det, err := entity.NewDetection("crack", 0.61, entity.BoundingBox{X: 5, Y: 5, Width: 30, Height: 20})
	require.NoError(t, err)

	annotator := NewBoxAnnotator()
	first, err := annotator.Annotate(src, []entity.Detection{det})
	require.NoError(t, err)
	second, err := annotator.Annotate(src, []entity.Detection{det})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAnnotateNoDetections(t *testing.T) {
	src := testImage(t)

	out, err := NewBoxAnnotator().Annotate(src, nil)
	require.NoError(t, err)

	_, _, err = image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
}

func TestAnnotateMalformedImage(t *testing.T) {
	_, err := NewBoxAnnotator().Annotate([]byte("not an image"), nil)
	var malformed *entity.MalformedImageError
	require.ErrorAs(t, err, &malformed)
}
