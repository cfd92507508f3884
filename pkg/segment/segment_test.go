package segment

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePage writes a 20x10 PNG whose left half is red and right half blue.
func writePage(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 10 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func setup(t *testing.T) (Request, Config) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "alto"), 0o755))
	writePage(t, dir, filepath.Join("alto", "0001.png"))

	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(out, 0o755))

	req := Request{
		Coords:      "12,2,18,8",
		PageName:    "alto/0001.xml",
		ArchivePath: filepath.Join(dir, "issue.zip"),
		Year:        1847,
		Keyword:     "whale",
	}
	return req, Config{ImageExt: ".png", OutputDir: out}
}

func decodeJPEG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	return img
}

func TestCrop(t *testing.T) {
	req, cfg := setup(t)

	path, err := Crop(req, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "crop_0001_1847_whale_12,2,18,8.jpg"), path)

	img := decodeJPEG(t, path)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
	r, _, b, _ := img.At(3, 3).RGBA()
	assert.Greater(t, b, r)
}

func TestCrop_ClipsToImage(t *testing.T) {
	req, cfg := setup(t)
	req.Coords = "15,5,100,100"

	path, err := Crop(req, cfg)
	require.NoError(t, err)
	img := decodeJPEG(t, path)
	assert.Equal(t, 5, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())
}

func TestCrop_Errors(t *testing.T) {
	req, cfg := setup(t)

	bad := req
	bad.Coords = "1,2,3"
	_, err := Crop(bad, cfg)
	assert.Error(t, err)

	outside := req
	outside.Coords = "30,30,40,40"
	_, err = Crop(outside, cfg)
	assert.ErrorIs(t, err, ErrEmptyRegion)

	empty := req
	empty.Coords = "5,5,5,9"
	_, err = Crop(empty, cfg)
	assert.ErrorIs(t, err, ErrEmptyRegion)

	missing := req
	missing.PageName = "alto/0002.xml"
	_, err = Crop(missing, cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImagePath(t *testing.T) {
	req := Request{PageName: "alto/0001.xml", ArchivePath: "/data/issue/issue.zip"}
	assert.Equal(t, "/data/issue/alto/0001.tif", ImagePath(req, Config{}))
	assert.Equal(t, "crop_0001_0_a_b_1,2,3,4.jpg", OutputName(Request{PageName: "alto/0001.xml", Keyword: "a/b", Coords: "1,2,3,4"}))
}

func TestDefaultConfig(t *testing.T) {
	cfg := Config{Quality: 500}.withDefaults()
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestContactSheet(t *testing.T) {
	req, cfg := setup(t)
	first, err := Crop(req, cfg)
	require.NoError(t, err)
	req.Coords = "0,0,10,10"
	second, err := Crop(req, cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ContactSheet(&buf, []Sheet{
		{Path: first, Caption: "1847 whale"},
		{Path: second, Caption: "1847 whale"},
	}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	err = ContactSheet(&bytes.Buffer{}, []Sheet{{Path: filepath.Join(cfg.OutputDir, "nope.jpg")}})
	assert.Error(t, err)
}
