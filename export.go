package halftone

import (
	"fmt"
	"image/png"
	"io"
	"os"
)

// EncodePNG reads the current output back and writes it as a lossless PNG
// stream. Export encoding is the only byte format the module ships; callers
// wanting other formats use Output and encode themselves.
func (p *Pipeline) EncodePNG(w io.Writer) error {
	img, err := p.Output()
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG writes the current output to a PNG file at the given path.
func (p *Pipeline) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := p.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
