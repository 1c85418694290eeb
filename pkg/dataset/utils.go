package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// validateFileNotExist checks that no output file already exists at the given
// path, so a run never silently overwrites earlier results
func validateFileNotExist(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("output file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		// Some other error occurred (permissions, etc.)
		return fmt.Errorf("error checking output file: %w", err)
	}
	return nil
}

// ensureOutputDir creates the output directory (and parents) if absent
func ensureOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// parseSourceRecords parses the given json into an array of rawRecord.
// Missing "conversations" or "response" keys are tolerated (they unmarshal to
// empty values and the normalizer emits nothing for them); a missing or null
// "images" key is an error since grouping needs the image list, and the
// record index is reported for diagnosis.
func parseSourceRecords(data []byte) ([]rawRecord, error) {
	var records []rawRecord

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal: %v", err)
	}

	for i, rec := range records {
		if rec.Images == nil {
			return nil, fmt.Errorf("record %d (id %d) has no images key", i, rec.ID)
		}
	}

	return records, nil
}

// loadLocalFile loads file
func loadLocalFile(fullPath string) ([]byte, error) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, errors.Join(err, fmt.Errorf("failed to read file %s", fullPath))
	}
	return data, nil
}
