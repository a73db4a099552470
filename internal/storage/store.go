// Package storage persists analysis runs: one directory per run holding
// metadata.json plus CSV artifacts for the curves and the diagram. The
// sampled point cloud is gzip-compressed; it is the only artifact that
// grows with the sample size.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/san-kum/chaoscope/internal/cloud"
	"github.com/san-kum/chaoscope/internal/pipeline"
	"github.com/san-kum/chaoscope/internal/rips"
	"github.com/san-kum/chaoscope/internal/series"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	Length     int       `json:"length"`
	Dt         float64   `json:"dt"`
	Seed       int64     `json:"seed"`
	Tau        int       `json:"tau"`
	Exponent   float64   `json:"exponent"`
	SampleSize int       `json:"sample_size"`
	MaxScale   float64   `json:"max_scale"`
	Pairs      int       `json:"pairs"`
	Degenerate bool      `json:"degenerate"`
}

// Save writes one run's metadata and artifacts and returns the run ID.
func (s *Store) Save(source string, sig series.Signal, cfg pipeline.Config, report *pipeline.Report) (string, error) {
	// nanosecond resolution: batch saves of the same source land in the
	// same second and must not share a directory
	runID := fmt.Sprintf("%s_%d", source, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Source:     source,
		Timestamp:  time.Now(),
		Length:     sig.Len(),
		Dt:         sig.Dt,
		Seed:       cfg.Seed,
		Tau:        report.Tau,
		Exponent:   report.Exponent,
		SampleSize: len(report.Sampled),
		MaxScale:   cfg.MaxScale,
		Pairs:      len(report.Diagram),
		Degenerate: report.Degenerate,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := writeCurve(filepath.Join(runDir, "signal.csv"), "value", sig.Samples); err != nil {
		return "", err
	}
	if err := writeCurve(filepath.Join(runDir, "ami.csv"), "ami", report.AMI); err != nil {
		return "", err
	}
	if err := writeCurve(filepath.Join(runDir, "divergence.csv"), "log_divergence", report.Divergence); err != nil {
		return "", err
	}
	if err := writeDiagram(filepath.Join(runDir, "diagram.csv"), report.Diagram); err != nil {
		return "", err
	}
	if err := writeCloud(filepath.Join(runDir, "cloud.csv.gz"), report.Sampled); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCurve(path, name string, data []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"index", name}); err != nil {
		return err
	}
	for i, v := range data {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeDiagram(path string, diag rips.Diagram) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"dimension", "birth", "death"}); err != nil {
		return err
	}
	for _, p := range diag {
		death := "inf"
		if !p.Immortal() {
			death = strconv.FormatFloat(p.Death, 'g', -1, 64)
		}
		row := []string{
			strconv.Itoa(p.Dim),
			strconv.FormatFloat(p.Birth, 'g', -1, 64),
			death,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeCloud(path string, pc cloud.PointCloud) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	w := csv.NewWriter(gz)
	defer w.Flush()

	dim := pc.Dim()
	header := make([]string, 0, dim+1)
	header = append(header, "t")
	for j := 0; j < dim; j++ {
		header = append(header, fmt.Sprintf("x%d", j))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, p := range pc {
		row := make([]string, 0, dim+1)
		row = append(row, strconv.Itoa(i))
		for _, v := range p {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadCurve reads one of the single-column CSV artifacts (signal.csv,
// ami.csv, divergence.csv) back into a value slice.
func (s *Store) LoadCurve(runID, name string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Store) LoadDiagram(runID string) (rips.Diagram, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "diagram.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	diag := make(rips.Diagram, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 3 {
			continue
		}
		dim, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		birth, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		death := math.Inf(1)
		if rec[2] != "inf" {
			death, err = strconv.ParseFloat(rec[2], 64)
			if err != nil {
				continue
			}
		}
		diag = append(diag, rips.Pair{Dim: dim, Birth: birth, Death: death})
	}
	return diag, nil
}

func (s *Store) LoadCloud(runID string) (cloud.PointCloud, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "cloud.csv.gz"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	records, err := csv.NewReader(gz).ReadAll()
	if err != nil {
		return nil, err
	}

	pc := make(cloud.PointCloud, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		p := make(cloud.Point, 0, len(rec)-1)
		for _, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				break
			}
			p = append(p, v)
		}
		if len(p) == len(rec)-1 {
			pc = append(pc, p)
		}
	}
	return pc, nil
}
