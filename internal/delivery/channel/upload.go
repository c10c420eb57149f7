package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smallbiznis/shiftcount/internal/delivery"
	reportdomain "github.com/smallbiznis/shiftcount/internal/report/domain"
)

var ErrUploadUnconfigured = errors.New("upload_unconfigured")

const maxReplyBytes = 64 << 10

type uploadPayload struct {
	Items      []reportdomain.Row `json:"items"`
	GrandTotal int                `json:"grandTotal"`
	Timestamp  string             `json:"timestamp"`
}

type uploadReply struct {
	URL string `json:"url"`
}

// Upload posts the report to the remote report endpoint. A JSON reply with
// a url becomes the dispatch locator.
type Upload struct {
	url    string
	client *http.Client
}

func NewUpload(url string, client *http.Client) *Upload {
	return &Upload{url: strings.TrimSpace(url), client: client}
}

func (u *Upload) Name() string        { return NameUpload }
func (u *Upload) Kind() delivery.Kind { return delivery.KindRemote }

func (u *Upload) Deliver(ctx context.Context, d *delivery.Dispatch) error {
	if u.url == "" {
		return ErrUploadUnconfigured
	}

	items := d.Report.Rows
	if items == nil {
		items = []reportdomain.Row{}
	}
	body, err := json.Marshal(uploadPayload{
		Items:      items,
		GrandTotal: d.Report.GrandTotal,
		Timestamp:  d.Timestamp.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("encode upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload report: status %d", resp.StatusCode)
	}

	var reply uploadReply
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if json.Unmarshal(raw, &reply) == nil {
		d.Locator = strings.TrimSpace(reply.URL)
	}
	return nil
}
