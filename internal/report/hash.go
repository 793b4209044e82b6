package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/wonny/scorecard/internal/contracts"
)

// DatasetHash fingerprints a dataset by its canonical JSON.
// Raw numeric values are preserved, so "2" and 2 hash differently.
func DatasetHash(data *contracts.Dataset) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("hash dataset: %w", err)
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
