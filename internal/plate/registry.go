package plate

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/MoosaTae/license-plate-ocr/internal/logger"
)

// Record is one known license plate in the registry. Extra keeps any
// additional CSV columns so a rewrite preserves them.
type Record struct {
	PlateNumber string            `json:"plate_number"`
	Province    string            `json:"province"`
	VehicleType string            `json:"vehicle_type"`
	Status      string            `json:"status"`
	Extra       map[string]string `json:"extra,omitempty"`
}

var baseColumns = []string{"plate_number", "province", "vehicle_type", "status"}

// Statistics summarizes the registry contents, computed by a single scan
type Statistics struct {
	Total         int            `json:"total"`
	ByProvince    map[string]int `json:"by_province"`
	ByVehicleType map[string]int `json:"by_vehicle_type"`
	ByStatus      map[string]int `json:"by_status"`
}

// Registry is the in-memory view of the plate registry CSV.
// Records keep file order; plate_number is not unique and the earliest
// record wins on lookup ties. Add is the only mutation path and rewrites
// the backing file in full, so it runs under an exclusive lock.
type Registry struct {
	mu      sync.RWMutex
	path    string
	header  []string
	records []*Record
}

// LoadRegistry reads the registry CSV. A missing file degrades to an empty
// registry with a warning; Add will create the file later.
func LoadRegistry(path string) (*Registry, error) {
	r := &Registry{
		path:   path,
		header: baseColumns,
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warningf("Registry %s not found, starting with an empty database", path)
			return r, nil
		}
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	if len(rows) == 0 {
		return r, nil
	}

	header := rows[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	r.header = header

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for _, row := range rows[1:] {
		rec := &Record{
			PlateNumber: field(row, "plate_number"),
			Province:    field(row, "province"),
			VehicleType: field(row, "vehicle_type"),
			Status:      field(row, "status"),
		}
		for i, name := range header {
			if isBaseColumn(name) || i >= len(row) {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[name] = row[i]
		}
		r.records = append(r.records, rec)
	}

	logger.Infof("Loaded %d license plates from %s", len(r.records), path)
	return r, nil
}

func isBaseColumn(name string) bool {
	for _, c := range baseColumns {
		if name == c {
			return true
		}
	}
	return false
}

// Len returns the number of records
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Records returns the records in registry order
func (r *Registry) Records() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Record, len(r.records))
	copy(out, r.records)
	return out
}

// ExactMatch returns the first record whose normalized plate equals the
// normalized detected text, or nil
func (r *Registry) ExactMatch(detected string) *Record {
	normalized := NormalizePlate(detected)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if normalized == NormalizePlate(rec.PlateNumber) {
			return rec
		}
	}
	return nil
}

// FuzzyMatch returns the best fuzzy candidate at or above the threshold,
// with its similarity score, or (nil, 0). A candidate replaces the current
// best only on a strictly greater score, so the earliest record keeps ties.
func (r *Registry) FuzzyMatch(detected string, threshold float64) (*Record, float64) {
	normalized := NormalizePlate(detected)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var bestMatch *Record
	bestScore := 0.0

	for _, rec := range r.records {
		similarity := Similarity(normalized, NormalizePlate(rec.PlateNumber))
		if similarity >= threshold && similarity > bestScore {
			bestScore = similarity
			bestMatch = rec
		}
	}

	if bestMatch == nil {
		return nil, 0
	}
	return bestMatch, bestScore
}

// Add appends a record and rewrites the backing CSV in full, header
// included. Empty vehicle type and status take defaults; the stored
// record is returned. Exclusive access for the whole append+rewrite: a
// concurrent append without it could lose records.
func (r *Registry) Add(rec Record) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.VehicleType == "" {
		rec.VehicleType = "private"
	}
	if rec.Status == "" {
		rec.Status = "active"
	}
	r.records = append(r.records, &rec)

	if err := r.saveLocked(); err != nil {
		// Keep memory and disk consistent on failure
		r.records = r.records[:len(r.records)-1]
		return nil, err
	}

	logger.Infof("Added %s to registry (%d records)", rec.PlateNumber, len(r.records))
	return &rec, nil
}

// saveLocked rewrites the full CSV. Caller must hold the write lock.
func (r *Registry) saveLocked() error {
	tmpPath := r.path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create registry file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(r.header); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}

	for _, rec := range r.records {
		row := make([]string, len(r.header))
		for i, name := range r.header {
			switch name {
			case "plate_number":
				row[i] = rec.PlateNumber
			case "province":
				row[i] = rec.Province
			case "vehicle_type":
				row[i] = rec.VehicleType
			case "status":
				row[i] = rec.Status
			default:
				row[i] = rec.Extra[name]
			}
		}
		if err := w.Write(row); err != nil {
			f.Close()
			os.Remove(tmpPath)
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace registry file: %w", err)
	}
	return nil
}

// SearchByProvince returns records whose province contains the query,
// case-insensitively
func (r *Registry) SearchByProvince(province string) []*Record {
	q := strings.ToLower(province)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*Record
	for _, rec := range r.records {
		if strings.Contains(strings.ToLower(rec.Province), q) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// Stats computes registry statistics in a single scan
func (r *Registry) Stats() Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Statistics{
		Total:         len(r.records),
		ByProvince:    make(map[string]int),
		ByVehicleType: make(map[string]int),
		ByStatus:      make(map[string]int),
	}

	for _, rec := range r.records {
		stats.ByProvince[orUnknown(rec.Province)]++
		stats.ByVehicleType[orUnknown(rec.VehicleType)]++
		stats.ByStatus[orUnknown(rec.Status)]++
	}

	return stats
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
