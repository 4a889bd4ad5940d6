package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/threekst/storefront-gateway/internal/metrics"
	"github.com/threekst/storefront-gateway/internal/core/domain"
)

// MediaClient implements ports.MediaAPI. Uploads are buffered so the shared
// refresh-retry path can resend the multipart body.
type MediaClient struct {
	c *Client
}

func NewMediaClient(c *Client) *MediaClient {
	return &MediaClient{c: c}
}

func (mc *MediaClient) Upload(ctx context.Context, sess *domain.Session, filename, contentType string, r io.Reader) (*domain.Media, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("upstream: multipart part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upstream: buffer upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upstream: finalize multipart: %w", err)
	}

	start := time.Now()
	status, raw, err := mc.c.send(ctx, sess, http.MethodPost, "/media/upload", nil, buf.Bytes(), mw.FormDataContentType(), false)
	metrics.UpstreamRequestDuration.WithLabelValues(http.MethodPost).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(http.MethodPost, strconv.Itoa(status)).Inc()

	var media domain.Media
	if err := decode(status, raw, &media); err != nil {
		return nil, err
	}
	return &media, nil
}
