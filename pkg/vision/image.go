// FILE: pkg/vision/image.go
// PURPOSE: Image preparation before the vision model sees it: scale to fit the
//          configured bound, force RGB, re-encode as inline base64 JPEG.

package vision

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"ai-assistant-be/pkg/fault"
)

const (
	// MaxDimension bounds both sides of the transported image.
	MaxDimension = 800
	// JPEGQuality is the fixed re-encode quality.
	JPEGQuality = 85
)

// EncodeInline decodes raw image bytes, scales them so both dimensions fit
// MaxDimension while preserving aspect ratio, and returns a base64 JPEG.
func EncodeInline(raw []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fault.Wrap(fault.Input, "cannot decode image", err)
	}

	scaled := scaleToFit(src, MaxDimension, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", fault.Wrap(fault.Input, "cannot encode image", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// scaleToFit resizes src so it exactly fits maxW x maxH, keeping aspect ratio.
// Catmull-Rom gives the high-quality resampling the pipeline requires. The
// destination is NRGBA, which also normalizes grayscale or paletted sources
// to a 3-channel form once JPEG-encoded.
func scaleToFit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	ratioW := float64(maxW) / float64(w)
	ratioH := float64(maxH) / float64(h)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	// Never upscale; the bound is a maximum, not a target.
	if ratio > 1 {
		ratio = 1
	}

	newW := int(float64(w) * ratio)
	newH := int(float64(h) * ratio)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
