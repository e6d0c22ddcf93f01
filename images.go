package blog

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	uploadsSubdir = "uploads"
)

// ImagePipeline converts images from the content directory into web-ready
// JPEGs under the static dir. Posts reference the output files as
// /public/uploads/<name>.jpg. Unchanged sources are skipped by mod time.
type ImagePipeline struct {
	srcDir string // content/images
	dstDir string // public/uploads
}

// NewImagePipeline creates a pipeline reading from contentDir/images and
// writing to staticDir/uploads.
func NewImagePipeline(contentDir, staticDir string) *ImagePipeline {
	return &ImagePipeline{
		srcDir: filepath.Join(contentDir, "images"),
		dstDir: filepath.Join(staticDir, uploadsSubdir),
	}
}

// Run processes every image in the source directory. A missing source
// directory is not an error: most syncs have no images to do.
func (p *ImagePipeline) Run() error {
	entries, err := os.ReadDir(p.srcDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}
		if err := p.processFile(e); err != nil {
			log.Printf("images: skipping %s: %v", e.Name(), err)
		}
	}
	return nil
}

func (p *ImagePipeline) processFile(e fs.DirEntry) error {
	srcPath := filepath.Join(p.srcDir, e.Name())
	dstPath := filepath.Join(p.dstDir, outputName(e.Name()))

	srcInfo, err := e.Info()
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dstPath); err == nil && !dstInfo.ModTime().Before(srcInfo.ModTime()) {
		return nil
	}

	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := encodeWebImage(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.dstDir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// encodeWebImage decodes an image from src, resizes it to maxImageWidth if
// wider, and encodes it as JPEG.
func encodeWebImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

// outputName slugifies the base name and forces a .jpg extension.
func outputName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return Slugify(base) + ".jpg"
}
