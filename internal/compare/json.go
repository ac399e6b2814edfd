package compare

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

func WriteJSON(r *Result, path string) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal comparison: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write comparison: %w", err)
	}
	return nil
}
