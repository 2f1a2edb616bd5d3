// internal/catalog/index.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"career-workers/internal/recommendation"

	"github.com/elastic/go-elasticsearch/v8"
)

// IndexAll writes careers into the search index and deletes the removed
// ids with one bulk request.
func IndexAll(ctx context.Context, es *elasticsearch.Client, index string, careers []recommendation.Career, removed ...string) error {
	if len(careers) == 0 && len(removed) == 0 {
		return nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, c := range careers {
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": index, "_id": c.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	for _, id := range removed {
		meta := map[string]interface{}{"delete": map[string]interface{}{"_index": index, "_id": id}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
	}

	res, err := es.Bulk(&body, es.Bulk.WithContext(ctx), es.Bulk.WithRefresh("wait_for"))
	if err != nil {
		return fmt.Errorf("bulk index careers: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("bulk index careers: %s: %s", res.Status(), msg)
	}

	var summary struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID    string          `json:"_id"`
			Error json.RawMessage `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&summary); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if summary.Errors {
		for _, item := range summary.Items {
			for _, op := range item {
				if len(op.Error) > 0 {
					return fmt.Errorf("bulk index career %s: %s", op.ID, op.Error)
				}
			}
		}
	}
	return nil
}
