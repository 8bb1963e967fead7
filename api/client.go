package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dstockto/spoolscale/models"
)

// Client talks to the Spool Analyzer backend. Calls are one-shot: a non-2xx
// response becomes an error carrying the status and body, never a retry.
type Client struct {
	base       string // base API endpoint
	httpClient http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base:       strings.TrimRight(base, "/"),
		httpClient: http.Client{},
	}
}

// Health checks the backend's GET /health endpoint.
func (c Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/health", nil)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// AnalyzeSpoolImage uploads an image to POST /analyze/spool-image and returns
// the backend's analysis. The file goes up as multipart field "file".
func (c Client) AnalyzeSpoolImage(ctx context.Context, imagePath string) (*models.SpoolAnalysis, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	if err := attachFile(form, "file", imagePath); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/analyze/spool-image", body)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp)
	}

	var out models.SpoolAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// ContribRequest is a spool definition submission. Brand, Type, and
// ImagePath are required by the backend; nil numerics are omitted from the
// form entirely.
type ContribRequest struct {
	Brand                 string
	Type                  string
	Description           string
	FilamentDiameterMm    *float64
	FilamentWeightGrams   *float64
	EmptySpoolWeightGrams *float64
	Refillable            bool
	ImagePath             string
}

// ContribSpool submits a new spool definition to POST /contrib/spool and
// returns the backend's receipt.
func (c Client) ContribSpool(ctx context.Context, cr ContribRequest) (*models.SpoolContribution, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	if err := form.WriteField("brand", cr.Brand); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	if err := form.WriteField("type", cr.Type); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	if cr.Description != "" {
		if err := form.WriteField("description", cr.Description); err != nil {
			return nil, fmt.Errorf("write form field: %w", err)
		}
	}
	writeFloatField(form, "filament_diameter_mm", cr.FilamentDiameterMm)
	writeFloatField(form, "filament_weight_grams", cr.FilamentWeightGrams)
	writeFloatField(form, "empty_spool_weight_grams", cr.EmptySpoolWeightGrams)
	if cr.Refillable {
		_ = form.WriteField("refillable", "true")
	}
	if err := attachFile(form, "image", cr.ImagePath); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/contrib/spool", body)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp)
	}

	var out models.SpoolContribution
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

func attachFile(form *multipart.Writer, field string, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	part, err := form.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func writeFloatField(form *multipart.Writer, field string, v *float64) {
	if v == nil {
		return
	}
	_ = form.WriteField(field, strconv.FormatFloat(*v, 'f', -1, 64))
}

func apiError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	msg := strings.TrimSpace(string(b))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("api error: status %d: %s", resp.StatusCode, msg)
}

func closeBody(resp *http.Response) {
	if closeErr := resp.Body.Close(); closeErr != nil {
		fmt.Printf("failed to close response body: %v\n", closeErr)
	}
}
