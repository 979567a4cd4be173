// Package seed loads menu and review fixtures from a local file or a URL.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"foodparadise/internal/model"
)

// Data is the fixture document: {"menu": [...], "reviews": [...]}.
type Data struct {
	Menu    []MenuEntry   `json:"menu"`
	Reviews []ReviewEntry `json:"reviews"`
}

// MenuEntry is one menu item in a fixture.
type MenuEntry struct {
	Name     string          `json:"name"`
	Recipe   string          `json:"recipe"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
}

// ReviewEntry is one review in a fixture.
type ReviewEntry struct {
	Name    string  `json:"name"`
	Details string  `json:"details"`
	Rating  float64 `json:"rating"`
}

// Load reads fixtures from src, an http(s) URL or a file path.
func Load(ctx context.Context, src string) (*Data, error) {
	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		body, err = fetch(ctx, src)
	} else {
		body, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}
	return Parse(body)
}

// Parse decodes a fixture document.
func Parse(body []byte) (*Data, error) {
	var data Data
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &data, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixtures: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture source returned status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// Models converts the fixtures, dropping menu entries without a name or category or with a
// negative price. skipped counts the dropped entries.
func (d *Data) Models() (items []model.MenuItem, reviews []model.Review, skipped int) {
	items = make([]model.MenuItem, 0, len(d.Menu))
	for _, m := range d.Menu {
		if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Category) == "" || m.Price.IsNegative() {
			skipped++
			continue
		}
		items = append(items, model.MenuItem{
			Name:     m.Name,
			Recipe:   m.Recipe,
			Image:    m.Image,
			Category: strings.ToLower(m.Category),
			Price:    m.Price,
		})
	}
	reviews = make([]model.Review, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		reviews = append(reviews, model.Review{Name: r.Name, Details: r.Details, Rating: r.Rating})
	}
	return items, reviews, skipped
}
