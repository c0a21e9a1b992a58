// Package dataset loads the UCI wine dataset and provides train/test
// splitting. The wine data is a headerless CSV with 178 rows: a class
// label in {1, 2, 3} followed by 13 numeric features per row.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/vinum/pkg/errors"
	vlog "github.com/YuminosukeSato/vinum/pkg/log"
)

// DefaultWineURL is the canonical location of the UCI wine dataset.
const DefaultWineURL = "https://archive.ics.uci.edu/ml/machine-learning-databases/wine/wine.data"

// wineColumns is 1 class label + 13 features.
const wineColumns = 14

// wineFeatureNames are the 13 feature names from the UCI description,
// in column order.
var wineFeatureNames = []string{
	"Alcohol",
	"Malic acid",
	"Ash",
	"Alcalinity of ash",
	"Magnesium",
	"Total phenols",
	"Flavanoids",
	"Nonflavanoid phenols",
	"Proanthocyanins",
	"Color intensity",
	"Hue",
	"OD280/OD315 of diluted wines",
	"Proline",
}

// Table is an immutable in-memory copy of the wine samples.
type Table struct {
	features *mat.Dense // n x 13
	labels   *mat.Dense // n x 1
	source   string
}

// NumRows returns the number of samples.
func (t *Table) NumRows() int {
	r, _ := t.features.Dims()
	return r
}

// NumFeatures returns the number of feature columns.
func (t *Table) NumFeatures() int {
	_, c := t.features.Dims()
	return c
}

// Features returns the n x 13 feature matrix. The caller must not
// mutate it.
func (t *Table) Features() *mat.Dense {
	return t.features
}

// Labels returns the n x 1 class label column. The caller must not
// mutate it.
func (t *Table) Labels() *mat.Dense {
	return t.labels
}

// FeatureNames returns the 13 feature names in column order.
func (t *Table) FeatureNames() []string {
	names := make([]string, len(wineFeatureNames))
	copy(names, wineFeatureNames)
	return names
}

// Source returns the URL or path the table was loaded from, if known.
func (t *Table) Source() string {
	return t.source
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	url    string
	client *http.Client
}

// WithURL overrides the dataset URL.
func WithURL(url string) LoadOption {
	return func(c *loadConfig) {
		c.url = url
	}
}

// WithHTTPClient sets the HTTP client used for the download.
func WithHTTPClient(client *http.Client) LoadOption {
	return func(c *loadConfig) {
		c.client = client
	}
}

// Load fetches the wine dataset with a single HTTP GET and parses it.
// There is no retry or caching: the walkthrough is one-shot, and a
// failed download simply ends the run.
func Load(ctx context.Context, opts ...LoadOption) (*Table, error) {
	cfg := loadConfig{
		url:    DefaultWineURL,
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.url, nil)
	if err != nil {
		return nil, errors.NewDataError("dataset.Load", cfg.url, err)
	}

	resp, err := cfg.client.Do(req)
	if err != nil {
		return nil, errors.NewDataError("dataset.Load", cfg.url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing dataset response body", vlog.ErrAttr(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewDataError("dataset.Load", cfg.url,
			errors.Newf("unexpected status %s", resp.Status))
	}

	table, err := Read(resp.Body)
	if err != nil {
		return nil, errors.NewDataError("dataset.Load", cfg.url, err)
	}
	table.source = cfg.url

	slog.Info("wine dataset loaded",
		slog.String(vlog.SourceKey, cfg.url),
		slog.Int(vlog.SamplesKey, table.NumRows()),
		slog.Int(vlog.FeaturesKey, table.NumFeatures()),
	)
	return table, nil
}

// LoadFile parses the wine dataset from a local file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataError("dataset.LoadFile", path, err)
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		return nil, errors.NewDataError("dataset.LoadFile", path, err)
	}
	table.source = path
	return table, nil
}

// Read parses wine-format CSV from r: no header, 14 comma-separated
// columns per row, class label first. A malformed row is an error, not
// a skip; silently dropping rows would bias the class proportions.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = wineColumns

	var (
		features []float64
		labels   []float64
		n        int
	)

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading CSV record")
		}

		label, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing class label on row %d", n+1)
		}
		labels = append(labels, label)

		for j := 1; j < wineColumns; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing feature %d on row %d", j, n+1)
			}
			features = append(features, v)
		}
		n++
	}

	if n == 0 {
		return nil, errors.ErrEmptyData
	}

	return &Table{
		features: mat.NewDense(n, wineColumns-1, features),
		labels:   mat.NewDense(n, 1, labels),
	}, nil
}
