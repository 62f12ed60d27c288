package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	_ "github.com/jbuchbinder/gopnm" // PPM/PGM/PBM decoder
	_ "golang.org/x/image/bmp"       // BMP decoder
	_ "golang.org/x/image/tiff"      // TIFF decoder
)

// LoadImage decodes a PNG, JPEG, BMP, TIFF or PNM image into width*height*3
// bytes of 8-bit RGB. Rows are stored bottom-up, so row 0 is the lower edge
// of the picture and maps to v=0. Failures are *core.TextureLoadError.
func LoadImage(filename string) ([]byte, int, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, 0, &core.TextureLoadError{Path: filename, Err: err}
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, 0, 0, &core.TextureLoadError{Path: filename, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	data, width, height := imageToRGB(img)
	if width == 0 || height == 0 {
		return nil, 0, 0, &core.TextureLoadError{Path: filename, Err: errors.New("image has no pixels")}
	}
	return data, width, height, nil
}

// imageToRGB flattens img into bottom-up 8-bit RGB rows
func imageToRGB(img image.Image) ([]byte, int, int) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	data := make([]byte, width*height*3)

	for y := 0; y < height; y++ {
		row := height - 1 - y
		for x := 0; x < width; x++ {
			// RGBA returns premultiplied 16-bit channels
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			i := (x + row*width) * 3
			data[i] = safecast.MustConv[byte](r >> 8)
			data[i+1] = safecast.MustConv[byte](g >> 8)
			data[i+2] = safecast.MustConv[byte](b >> 8)
		}
	}
	return data, width, height
}

// LoadTexture loads an image file as a texture that materials can share
func LoadTexture(filename string) (*material.Texture, error) {
	data, width, height, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return newFileTexture(filename, width, height, data)
}

// newFileTexture builds a texture from decoded pixels, naming filename in
// any error
func newFileTexture(filename string, width, height int, data []byte) (*material.Texture, error) {
	texture, err := material.NewTexture(width, height, data)
	var loadErr *core.TextureLoadError
	switch {
	case errors.As(err, &loadErr):
		loadErr.Path = filename
		return nil, loadErr
	case err != nil:
		return nil, &core.TextureLoadError{Path: filename, Err: err}
	}
	return texture, nil
}

// CubeMapFaceNames are the base file names LoadCubeMapDir looks for, in
// face order
var CubeMapFaceNames = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

// LoadCubeMap loads one image per face. An empty path leaves that face
// unset, which renders white.
func LoadCubeMap(paths [6]string) (*material.CubeMap, error) {
	var faces [6]*material.Texture
	for i, path := range paths {
		if path == "" {
			continue
		}
		texture, err := LoadTexture(path)
		if err != nil {
			return nil, err
		}
		faces[i] = texture
	}
	return material.NewCubeMap(faces), nil
}

// LoadCubeMapDir loads a cube map from dir, where each face is a file named
// after CubeMapFaceNames with any supported image extension (posx.png,
// negy.bmp, ...). Missing faces render white; a directory with no faces at
// all is an error.
func LoadCubeMapDir(dir string) (*material.CubeMap, error) {
	var paths [6]string
	found := 0
	for i, name := range CubeMapFaceNames {
		matches, err := filepath.Glob(filepath.Join(dir, name+".*"))
		if err != nil {
			return nil, &core.TextureLoadError{Path: dir, Err: err}
		}
		if len(matches) > 0 {
			paths[i] = matches[0]
			found++
		}
	}
	if found == 0 {
		return nil, &core.TextureLoadError{Path: dir, Err: errors.New("no cube map faces found")}
	}
	return LoadCubeMap(paths)
}
