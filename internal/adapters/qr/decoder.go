package qr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
)

// DefaultRemoteEndpoint is the public decode API used when local decoding
// finds nothing.
const DefaultRemoteEndpoint = "https://api.qrserver.com/v1/read-qr-code/"

// Decoder extracts QR payloads: local gozxing decode first, then a
// multipart upload to the remote decode API. Decode never returns an
// error; failure is reported in the result.
type Decoder struct {
	httpClient *http.Client
	endpoint   string
	logger     *zap.Logger
}

// NewDecoder creates a QR decoder with the given remote fallback endpoint
// and timeout.
func NewDecoder(endpoint string, timeout time.Duration, logger *zap.Logger) *Decoder {
	if endpoint == "" {
		endpoint = DefaultRemoteEndpoint
	}
	return &Decoder{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

// Decode attempts a local decode, then the remote API.
func (d *Decoder) Decode(ctx context.Context, imageBytes []byte) core.QRDecodeResult {
	if data, ok := d.decodeLocal(imageBytes); ok {
		return core.QRDecodeResult{OK: true, Data: data, Source: "local"}
	}
	if data, ok := d.decodeRemote(ctx, imageBytes); ok {
		return core.QRDecodeResult{OK: true, Data: data, Source: "qrserver"}
	}
	return core.QRDecodeResult{OK: false, Error: "No QR code found / decoding failed"}
}

func (d *Decoder) decodeLocal(imageBytes []byte) (string, bool) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		d.logger.Debug("Image decode failed", zap.Error(err))
		return "", false
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		d.logger.Debug("Bitmap conversion failed", zap.Error(err))
		return "", false
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		d.logger.Debug("Local QR decode found nothing", zap.Error(err))
		return "", false
	}

	return result.GetText(), true
}

func (d *Decoder) decodeRemote(ctx context.Context, imageBytes []byte) (string, bool) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "qr.png")
	if err != nil {
		return "", false
	}
	if _, err := part.Write(imageBytes); err != nil {
		return "", false
	}
	if err := writer.Close(); err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, &body)
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logger.Debug("Remote QR decode failed", zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.logger.Debug("Remote QR decode rejected", zap.Int("status", resp.StatusCode))
		return "", false
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}

	return parseRemoteResponse(raw)
}

// parseRemoteResponse pulls the first non-empty symbol payload from the
// decode API's response list.
func parseRemoteResponse(raw []byte) (string, bool) {
	var results []struct {
		Symbol []struct {
			Data  *string `json:"data"`
			Error *string `json:"error"`
		} `json:"symbol"`
	}
	if err := json.Unmarshal(raw, &results); err != nil {
		return "", false
	}

	for _, r := range results {
		for _, s := range r.Symbol {
			if s.Data != nil && *s.Data != "" {
				return *s.Data, true
			}
		}
	}
	return "", false
}

var _ core.QRDecoder = (*Decoder)(nil)

// Describe returns the remote endpoint, for startup logging.
func (d *Decoder) Describe() string {
	return fmt.Sprintf("local+remote(%s)", d.endpoint)
}
