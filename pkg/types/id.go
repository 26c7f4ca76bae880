package types

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// GenerateInsightID generates a unique insight request ID with prefix
func GenerateInsightID() string {
	return fmt.Sprintf("ins_%s", ksuid.New().String())
}
