// Package dataset reads and writes the JSON artifacts a run consumes and
// produces: the URL list, the logo map, per-page raw results, and the merged
// company dataset.
package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/sarjtakip/tarife-cli/internal/model"
)

func init() {
	// Prices serialize as plain JSON numbers, matching what the upstream API
	// and the dashboard expect.
	decimal.MarshalJSONWithoutQuotes = true
}

// Load reads a company dataset. A missing file is not an error; first runs
// start from an empty dataset.
func Load(path string) ([]model.CompanyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}
	var records []model.CompanyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrapf(err, "dataset: parse %s", path)
	}
	return records, nil
}

// Save writes a company dataset, creating parent directories as needed.
func Save(path string, records []model.CompanyRecord) error {
	return writeJSON(path, records)
}

// SaveResults writes the raw per-page results next to the merged dataset for
// debugging extraction behavior.
func SaveResults(path string, results []model.PageResult) error {
	return writeJSON(path, results)
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "dataset: create dir %s", dir)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "dataset: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "dataset: write %s", path)
	}
	return nil
}

// LoadLogoMap reads the domain-to-logo-URL map. Keys are normalized so raw
// URLs and bare domains both work. A missing file yields an empty map.
func LoadLogoMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, eris.Wrapf(err, "dataset: read logo map %s", path)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrapf(err, "dataset: parse logo map %s", path)
	}
	logos := make(map[string]string, len(raw))
	for k, v := range raw {
		logos[model.NormalizeDomain(k)] = v
	}
	return logos, nil
}

// LoadURLs reads the target URL list, one URL per line. Blank lines and lines
// starting with # are skipped; duplicates collapse; output is sorted so runs
// are deterministic.
func LoadURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read url list %s", path)
	}
	lines := strings.Split(string(data), "\n")
	urls := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			return "", false
		}
		return line, true
	})
	urls = lo.Uniq(urls)
	sort.Strings(urls)
	return urls, nil
}
