// Package extract turns benchmark tool output into BenchResults.
package extract

import (
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	jsoniter "github.com/json-iterator/go"
)

type Extractor interface {
	Extract(r io.Reader) ([]domain.BenchResult, error)
}

type ExtractorFunc func(r io.Reader) ([]domain.BenchResult, error)

func (f ExtractorFunc) Extract(r io.Reader) ([]domain.BenchResult, error) {
	return f(r)
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var extractors = map[domain.Tool]Extractor{
	domain.ToolPytest:                ExtractorFunc(extractPytest),
	domain.ToolGo:                    ExtractorFunc(extractGo),
	domain.ToolCustomBiggerIsBetter:  ExtractorFunc(extractCustom),
	domain.ToolCustomSmallerIsBetter: ExtractorFunc(extractCustom),
}

func For(tool domain.Tool) (Extractor, error) {
	e, ok := extractors[tool]
	if !ok {
		return nil, apperr.NewValidation(fmt.Sprintf("no extractor for tool %q", tool))
	}
	return e, nil
}

func Supported() []domain.Tool {
	return []domain.Tool{
		domain.ToolPytest,
		domain.ToolGo,
		domain.ToolCustomBiggerIsBetter,
		domain.ToolCustomSmallerIsBetter,
	}
}

func noResults(tool domain.Tool) error {
	return apperr.NewValidation(fmt.Sprintf("no benchmark results found in %s output", tool))
}
