package plate

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/MoosaTae/license-plate-ocr/internal/logger"
)

// DefaultFuzzyThreshold is the minimum similarity ratio accepted by the
// fuzzy tiers of both the province recognizer and the registry matcher
const DefaultFuzzyThreshold = 0.8

// ProvinceList holds the known Thai province names in file order.
// File order matters: the substring and fuzzy tiers resolve ties by
// returning the first province in load order.
type ProvinceList struct {
	names []string
}

// LoadProvinceList reads province names from a line-oriented file, one name
// per line, blank lines ignored. A missing file degrades to an empty list
// with a warning rather than an error.
func LoadProvinceList(path string) (*ProvinceList, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warningf("Province list %s not found, province matching disabled", path)
			return &ProvinceList{}, nil
		}
		return nil, fmt.Errorf("failed to open province list: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read province list: %w", err)
	}

	logger.Infof("Loaded %d Thai provinces for validation", len(names))
	return &ProvinceList{names: names}, nil
}

// Names returns the province names in load order
func (p *ProvinceList) Names() []string {
	return p.names
}

// Len returns the number of loaded provinces
func (p *ProvinceList) Len() int {
	return len(p.names)
}

// Match reports whether the text fragment denotes a known province.
// Tiers are checked in order and the first hit wins:
//  1. exact equality after trimming
//  2. substring in either direction
//  3. fuzzy similarity at or above the threshold
//
// The returned reason identifies the matched province, or explains the miss.
func (p *ProvinceList) Match(fragment string, threshold float64) (bool, string) {
	cleaned := strings.TrimSpace(fragment)

	// First pass: exact matches
	for _, province := range p.names {
		if cleaned == province {
			return true, fmt.Sprintf("Exact province match: %s", province)
		}
	}

	// Second pass: partial matches
	for _, province := range p.names {
		if strings.Contains(province, cleaned) || strings.Contains(cleaned, province) {
			return true, fmt.Sprintf("Partial province match: %s", province)
		}
	}

	// Third pass: fuzzy matches, strictly-greater update so the first
	// province reaching the best score keeps it
	bestMatch := ""
	bestScore := 0.0
	for _, province := range p.names {
		similarity := Similarity(cleaned, province)
		if similarity >= threshold && similarity > bestScore {
			bestScore = similarity
			bestMatch = province
		}
	}

	if bestMatch != "" {
		return true, fmt.Sprintf("Fuzzy province match: %s (%.2f)", bestMatch, bestScore)
	}

	return false, "Not a recognized Thai province"
}
