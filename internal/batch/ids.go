package batch

import (
	"fmt"

	"github.com/google/uuid"
)

// reportIDs issues UUIDv7 report IDs, which sort by batch start time.
type reportIDs struct{}

func (reportIDs) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate report id: %w", err)
	}
	return id.String(), nil
}
