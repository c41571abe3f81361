// Package dataset bundles the sample datasets used by the course pipelines.
//
// Both datasets ship inside the binary via go:embed and load into gonum
// matrices. They are small and static; loading happens once per run.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/gostatlab/statkit/pkg/errors"
)

//go:embed data/wine.csv
var wineCSV []byte

//go:embed data/houses.csv
var housesCSV []byte

// Wine is a three-class classification sample: 178 wines, 13 chemical
// measurements per wine, labeled by cultivar (0, 1, 2).
type Wine struct {
	FeatureNames []string
	X            *mat.Dense // n x 13 feature matrix
	Y            []int      // cultivar labels
}

// NumClasses returns the number of distinct cultivars.
func (w *Wine) NumClasses() int {
	seen := map[int]bool{}
	for _, y := range w.Y {
		seen[y] = true
	}
	return len(seen)
}

// YMatrix returns the labels as an n x 1 matrix for estimator APIs.
func (w *Wine) YMatrix() *mat.Dense {
	n := len(w.Y)
	out := mat.NewDense(n, 1, nil)
	for i, y := range w.Y {
		out.Set(i, 0, float64(y))
	}
	return out
}

// LoadWine parses the bundled wine dataset.
func LoadWine() (*Wine, error) {
	records, err := readCSV(wineCSV)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: wine")
	}
	if len(records) < 2 {
		return nil, errors.NewModelError("dataset.LoadWine", "no data rows", errors.ErrEmptyData)
	}

	header := records[0]
	featureNames := header[1:] // first column is the class label
	nFeatures := len(featureNames)
	nSamples := len(records) - 1

	X := mat.NewDense(nSamples, nFeatures, nil)
	Y := make([]int, nSamples)

	for i, record := range records[1:] {
		if len(record) != nFeatures+1 {
			return nil, errors.NewDimensionError("dataset.LoadWine", nFeatures+1, len(record), 1)
		}
		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: wine: bad class label at row %d", i+2)
		}
		Y[i] = label
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset: wine: bad value at row %d column %q", i+2, header[j])
			}
			X.Set(i, j-1, v)
		}
	}

	return &Wine{FeatureNames: featureNames, X: X, Y: Y}, nil
}

// Houses is a real-estate sample: numeric predictors, one categorical
// district column, and the sale price (in thousands) as target.
type Houses struct {
	FeatureNames []string   // numeric predictor names, in column order
	X            *mat.Dense // n x 4 numeric predictors
	District     []string   // categorical predictor, one value per row
	Price        *mat.VecDense
}

// PriceMatrix returns the target as an n x 1 matrix for estimator APIs.
func (h *Houses) PriceMatrix() *mat.Dense {
	n := h.Price.Len()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, h.Price.AtVec(i))
	}
	return out
}

// Column returns a copy of the named numeric predictor as an n x 1 matrix.
func (h *Houses) Column(name string) (*mat.Dense, error) {
	for j, fn := range h.FeatureNames {
		if fn == name {
			n, _ := h.X.Dims()
			out := mat.NewDense(n, 1, nil)
			for i := 0; i < n; i++ {
				out.Set(i, 0, h.X.At(i, j))
			}
			return out, nil
		}
	}
	return nil, errors.NewValueError("Houses.Column", "unknown column "+name)
}

// LoadHouses parses the bundled real-estate dataset.
func LoadHouses() (*Houses, error) {
	records, err := readCSV(housesCSV)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: houses")
	}
	if len(records) < 2 {
		return nil, errors.NewModelError("dataset.LoadHouses", "no data rows", errors.ErrEmptyData)
	}

	// Layout: area_sqm, age_years, dist_center_km, rooms, district, price_k
	header := records[0]
	const nNumeric = 4
	if len(header) != nNumeric+2 {
		return nil, errors.NewDimensionError("dataset.LoadHouses", nNumeric+2, len(header), 1)
	}

	nSamples := len(records) - 1
	X := mat.NewDense(nSamples, nNumeric, nil)
	district := make([]string, nSamples)
	price := mat.NewVecDense(nSamples, nil)

	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, errors.NewDimensionError("dataset.LoadHouses", len(header), len(record), 1)
		}
		for j := 0; j < nNumeric; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset: houses: bad value at row %d column %q", i+2, header[j])
			}
			X.Set(i, j, v)
		}
		district[i] = record[nNumeric]
		p, err := strconv.ParseFloat(record[nNumeric+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: houses: bad price at row %d", i+2)
		}
		price.SetVec(i, p)
	}

	return &Houses{
		FeatureNames: header[:nNumeric],
		X:            X,
		District:     district,
		Price:        price,
	}, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // row widths validated by the callers
	return reader.ReadAll()
}
