//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

// testPNG renders a white page with a black bar, enough for Tesseract to
// accept the image without necessarily finding text on it.
func testPNG(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 10; x < 60; x++ {
		for y := 10; y < 25; y++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func TestNewUnknownLanguage(t *testing.T) {
	if _, err := New("eng"); err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}

	_, err := New("zzz-no-such-language")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable for unknown language, got: %v", err)
	}
}

func TestRecognize(t *testing.T) {
	engine, err := New("eng")
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer engine.Close()

	_, err = engine.Recognize(context.Background(), testPNG(200, 80))
	if err != nil {
		t.Errorf("Recognize failed: %v", err)
	}
}

func TestRecognizeAfterTimeout(t *testing.T) {
	engine, err := New("eng")
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer engine.Close()

	// An already-expired deadline must yield a timeout outcome, and the
	// engine must still recognize the next page.
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err = engine.Recognize(ctx, testPNG(200, 80))
	if err == nil {
		t.Fatal("Expected error from expired deadline")
	}

	_, err = engine.Recognize(context.Background(), testPNG(200, 80))
	if err != nil {
		t.Errorf("Recognize after timeout failed: %v", err)
	}
}

func TestCloseTwice(t *testing.T) {
	engine, err := New("eng")
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Errorf("First Close failed: %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
}
