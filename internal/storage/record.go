package storage

import (
	"fmt"
	"strconv"

	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/DjordjeVuckovic/bench-history/run"))

// RunID is the stable identity of a run within a suite. Backends that key
// documents by id use it so that a repeated append collides.
func RunID(suite string, run domain.CommitRun) uuid.UUID {
	key := suite + "/" + run.Commit.ID + "/" + strconv.FormatInt(run.Date, 10)
	return uuid.NewSHA1(runNamespace, []byte(key))
}

// MarshalRun encodes a run for backends that keep it as a JSON column or document.
func MarshalRun(run domain.CommitRun) ([]byte, error) {
	b, err := json.Marshal(run)
	if err != nil {
		return nil, fmt.Errorf("marshal run %s: %w", run.Commit.ID, err)
	}
	return b, nil
}

func UnmarshalRun(b []byte) (domain.CommitRun, error) {
	var run domain.CommitRun
	if err := json.Unmarshal(b, &run); err != nil {
		return domain.CommitRun{}, fmt.Errorf("unmarshal run: %w", err)
	}
	return run, nil
}

// Validate checks a run and suite name before a backend writes them.
func Validate(suite string, run domain.CommitRun) error {
	if err := domain.ValidateSuiteName(suite); err != nil {
		return err
	}
	return run.Validate()
}
