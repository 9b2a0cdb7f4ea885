package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	xerrors "github.com/daytrack/daytrack/client/internal/errors"
	"github.com/daytrack/daytrack/client/internal/types"
)

// CreateReport persists report metadata: the narrative summary and the
// completed-task count. The report's row table stays client-side.
func CreateReport(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateReportRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/reports", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return xerrors.NewNetworkError("persist report", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return failure(resp, "persist report")
	}
	return nil
}
