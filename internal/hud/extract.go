package hud

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"riftscope/internal/frame"
	"riftscope/internal/logging"
	"riftscope/internal/roi"
)

// creepPadding widens creep score regions horizontally; the counter digits
// regularly overflow the authored box by a few pixels.
const creepPadding = 6

// Extractor OCRs scoreboard fields. It owns one tesseract client, which is
// not goroutine-safe: give each worker its own Extractor.
type Extractor struct {
	client *gosseract.Client
	log    *slog.Logger
}

// NewExtractor starts a tesseract client. tessdataDir may be empty to use
// the system default; language is a tesseract language code like "eng".
func NewExtractor(tessdataDir, language string, log *slog.Logger) (*Extractor, error) {
	if log == nil {
		log = logging.NewNop()
	}
	client := gosseract.NewClient()
	if tessdataDir != "" {
		if err := client.SetTessdataPrefix(tessdataDir); err != nil {
			client.Close()
			return nil, fmt.Errorf("hud: tessdata prefix: %w", err)
		}
	}
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("hud: language %q: %w", language, err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		client.Close()
		return nil, fmt.Errorf("hud: page seg mode: %w", err)
	}
	return &Extractor{client: client, log: log}, nil
}

// Close releases the tesseract client.
func (e *Extractor) Close() error {
	return e.client.Close()
}

// Extract reads every region of the overlay template. A region that fails
// to crop, binarize or OCR yields an empty Value under its name; only a
// template with no usable regions at all is an error.
func (e *Extractor) Extract(img gocv.Mat, tpl *roi.Template) (map[string]Value, error) {
	names := tpl.RegionNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty overlay template", roi.ErrMissingRegion)
	}

	out := make(map[string]Value, len(names))
	for _, name := range names {
		kind := ClassifyField(name)
		box, err := tpl.ResolveRegion(name, img.Cols(), img.Rows())
		if err != nil {
			out[name] = Value{Kind: kind}
			continue
		}
		value, err := e.readField(img, name, kind, box)
		if err != nil {
			e.log.Debug("hud field unreadable", "field", name, "error", err)
			out[name] = Value{Kind: kind}
			continue
		}
		out[name] = value
	}
	return out, nil
}

func (e *Extractor) readField(img gocv.Mat, name string, kind FieldKind, box image.Rectangle) (Value, error) {
	if kind == FieldCreeps {
		box.Min.X = max(0, box.Min.X-creepPadding)
		box.Max.X = min(img.Cols(), box.Max.X+creepPadding)
	}

	crop, err := frame.Crop(img, box)
	if err != nil {
		return Value{}, err
	}
	defer crop.Close()

	mask := binarize(crop, kind)
	defer mask.Close()

	raw, err := e.recognize(mask, kind.whitelist())
	if err != nil {
		return Value{}, err
	}
	return parse(kind, raw), nil
}

func (e *Extractor) recognize(mask gocv.Mat, whitelist string) (string, error) {
	buf, err := gocv.IMEncode(".png", mask)
	if err != nil {
		return "", fmt.Errorf("encode mask: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetVariable("tessedit_char_whitelist", whitelist); err != nil {
		return "", fmt.Errorf("set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}
