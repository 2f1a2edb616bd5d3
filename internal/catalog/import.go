// internal/catalog/import.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"career-workers/internal/common/validation"
	"career-workers/internal/recommendation"
)

// Writer persists a validated catalog.
type Writer interface {
	Replace(ctx context.Context, careers []recommendation.Career) ([]string, error)
}

// Decode reads a JSON array of careers.
func Decode(r io.Reader) ([]recommendation.Career, error) {
	var careers []recommendation.Career
	dec := json.NewDecoder(r)
	if err := dec.Decode(&careers); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return careers, nil
}

// Validate checks every record and rejects duplicate ids. An empty catalog
// is rejected since importing it would delete every stored career.
func Validate(careers []recommendation.Career) error {
	if len(careers) == 0 {
		return fmt.Errorf("invalid catalog: no careers")
	}
	seen := make(map[string]int, len(careers))
	var problems []string

	for i, c := range careers {
		if err := validation.Struct(c); err != nil {
			problems = append(problems, fmt.Sprintf("career[%d] %q: %v", i, c.ID, err))
		}
		if prev, dup := seen[c.ID]; dup && c.ID != "" {
			problems = append(problems, fmt.Sprintf("career[%d]: duplicate id %q (first at %d)", i, c.ID, prev))
			continue
		}
		seen[c.ID] = i
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Import validates careers, makes them the stored catalog and drops the
// cached snapshot along with every written or removed career. It returns
// the ids of the careers the import removed.
func Import(ctx context.Context, w Writer, repo *Repository, careers []recommendation.Career) ([]string, error) {
	if err := Validate(careers); err != nil {
		return nil, err
	}
	removed, err := w.Replace(ctx, careers)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return removed, nil
	}

	ids := make([]string, 0, len(careers)+len(removed))
	for _, c := range careers {
		ids = append(ids, c.ID)
	}
	if err := repo.Invalidate(ctx, append(ids, removed...)...); err != nil {
		return nil, err
	}
	return removed, nil
}
