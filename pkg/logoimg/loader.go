// Package logoimg fetches institution logos and normalises them for PDF
// embedding. Every failure path degrades to a nil image; a missing logo must
// never abort document generation.
package logoimg

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-records-api/pkg/pdf"
)

const (
	maxEdge     = 320
	jpegQuality = 86
	maxBodySize = 8 << 20
)

// Loader resolves logo references (data URIs or http(s) URLs) into baseline
// JPEG images sized for embedding.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// New constructs a Loader. A non-positive timeout falls back to 4 seconds.
func New(timeout time.Duration, logger *zap.Logger) *Loader {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

// Load resolves ref into an embeddable image, or nil when the reference is
// empty, unreachable, or undecodable.
func (l *Loader) Load(ctx context.Context, ref string) *pdf.Image {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	var raw []byte
	switch {
	case strings.HasPrefix(ref, "data:"):
		raw = decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		raw = l.fetch(ctx, ref)
	default:
		l.logger.Debug("unsupported logo reference scheme")
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	img, err := transcode(raw)
	if err != nil {
		l.logger.Warn("logo decode failed", zap.Error(err))
		return nil
	}
	return img
}

func (l *Loader) fetch(ctx context.Context, url string) []byte {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Warn("logo fetch failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("logo fetch returned non-OK status", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil
	}
	return body
}

func decodeDataURI(uri string) []byte {
	idx := strings.Index(uri, ";base64,")
	if idx < 0 {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(uri[idx+len(";base64,"):])
	if err != nil {
		return nil
	}
	return raw
}

// transcode flattens transparency onto white, fits the picture within
// maxEdge×maxEdge without upscaling, and re-encodes as baseline JPEG.
func transcode(raw []byte) (*pdf.Image, error) {
	src, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxEdge || bounds.Dy() > maxEdge {
		src = imaging.Fit(src, maxEdge, maxEdge, imaging.Lanczos)
	}

	flat := imaging.New(src.Bounds().Dx(), src.Bounds().Dy(), color.White)
	flat = imaging.Overlay(flat, src, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return &pdf.Image{
		Data:   buf.Bytes(),
		Width:  flat.Bounds().Dx(),
		Height: flat.Bounds().Dy(),
	}, nil
}
