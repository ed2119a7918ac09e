package pdf

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/sahintepesi/donation-api/internal/core/domain"
)

// requiredRunes are the Turkish letters used by the receipt labels and
// addresses; a font without them renders blank boxes.
const requiredRunes = "ğĞıİşŞçÇöÖüÜ"

// LoadFont reads a TrueType font and checks it covers the receipt alphabet.
// An empty path selects the embedded Go Regular font.
func LoadFont(path string) ([]byte, error) {
	if path == "" {
		return goregular.TTF, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFontUnavailable, err)
	}

	if err := checkCoverage(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFontUnavailable, path, err)
	}

	return data, nil
}

// checkCoverage parses the font and reports the first missing glyph.
func checkCoverage(data []byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return err
	}
	for _, r := range requiredRunes {
		if f.Index(r) == 0 {
			return fmt.Errorf("no glyph for %q", r)
		}
	}
	return nil
}

// FontName returns the family name stored in a font file, for diagnostics.
func FontName(data []byte) string {
	f, err := truetype.Parse(data)
	if err != nil {
		return ""
	}
	return f.Name(truetype.NameIDFontFamily)
}
