package domain

import "fmt"

type Tool string

const (
	ToolPytest                Tool = "pytest"
	ToolGo                    Tool = "go"
	ToolCustomBiggerIsBetter  Tool = "customBiggerIsBetter"
	ToolCustomSmallerIsBetter Tool = "customSmallerIsBetter"

	// Recorded by other producers of the same data.js format. They can be
	// stored and compared but have no extractor here.
	ToolCargo           Tool = "cargo"
	ToolBenchmarkJS     Tool = "benchmarkjs"
	ToolBenchmarkLuau   Tool = "benchmarkluau"
	ToolGoogleCpp       Tool = "googlecpp"
	ToolCatch2          Tool = "catch2"
	ToolJulia           Tool = "julia"
	ToolJMH             Tool = "jmh"
	ToolBenchmarkDotnet Tool = "benchmarkdotnet"
)

var Tools = []Tool{
	ToolPytest, ToolGo, ToolCustomBiggerIsBetter, ToolCustomSmallerIsBetter,
	ToolCargo, ToolBenchmarkJS, ToolBenchmarkLuau, ToolGoogleCpp, ToolCatch2,
	ToolJulia, ToolJMH, ToolBenchmarkDotnet,
}

func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q, expected one of %v", s, Tools)
}

// BiggerIsBetter reports whether a larger value means a faster result.
// pytest and benchmark.js report throughput, the rest report time per op.
func (t Tool) BiggerIsBetter() bool {
	switch t {
	case ToolPytest, ToolBenchmarkJS, ToolCustomBiggerIsBetter:
		return true
	default:
		return false
	}
}
