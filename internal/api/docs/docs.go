// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/data.js": {
            "get": {
                "description": "Returns the whole history in the window.BENCHMARK_DATA form loaded by the chart page.",
                "produces": ["application/javascript"],
                "tags": ["history"],
                "summary": "Published data.js",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/api/v1/benchmarks": {
            "get": {
                "description": "Returns the whole history as JSON.",
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Benchmark history",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.BenchmarkData"}}
                }
            }
        },
        "/api/v1/suites": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "List suites",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.SuitesResponse"}}
                }
            }
        },
        "/api/v1/suites/{suite}/runs": {
            "get": {
                "description": "Returns the newest runs of a suite, oldest first.",
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Runs of a suite",
                "parameters": [
                    {"type": "string", "description": "Suite name", "name": "suite", "in": "path", "required": true},
                    {"type": "integer", "description": "Number of newest runs to return, all when omitted", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CommitRun"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "post": {
                "description": "Appends a run to a suite and compares it with the previous run.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Append a run",
                "parameters": [
                    {"type": "string", "description": "Suite name", "name": "suite", "in": "path", "required": true},
                    {"description": "Run to append", "name": "run", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CommitRun"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/router.AppendResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/v1/suites/{suite}/history": {
            "get": {
                "description": "Pages through the runs of a suite, newest first.",
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Paged run history of a suite",
                "parameters": [
                    {"type": "string", "description": "Suite name", "name": "suite", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number, starting at 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pagination.OffsetResult-domain_CommitRun"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/v1/suites/{suite}/latest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Latest run of a suite",
                "parameters": [
                    {"type": "string", "description": "Suite name", "name": "suite", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CommitRun"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/v1/suites/{suite}/compare": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Compare the latest run with the previous one",
                "parameters": [
                    {"type": "string", "description": "Suite name", "name": "suite", "in": "path", "required": true},
                    {"type": "string", "description": "Alert threshold such as 200% or 1.5", "name": "threshold", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/compare.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/api/v1/suites/{suite}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Per-bench statistics of a suite",
                "parameters": [
                    {"type": "string", "description": "Suite name", "name": "suite", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.StatsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "title": {"type": "string"}}
        },
        "domain.Identity": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "domain.Commit": {
            "type": "object",
            "properties": {
                "author": {"$ref": "#/definitions/domain.Identity"},
                "committer": {"$ref": "#/definitions/domain.Identity"},
                "distinct": {"type": "boolean"},
                "id": {"type": "string"},
                "message": {"type": "string"},
                "timestamp": {"type": "string"},
                "tree_id": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "domain.BenchResult": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "value": {"type": "number"},
                "unit": {"type": "string"},
                "range": {"type": "string"},
                "extra": {"type": "string"}
            }
        },
        "domain.CommitRun": {
            "type": "object",
            "properties": {
                "commit": {"$ref": "#/definitions/domain.Commit"},
                "date": {"type": "integer"},
                "tool": {"type": "string", "enum": ["pytest", "go", "customBiggerIsBetter", "customSmallerIsBetter"]},
                "benches": {"type": "array", "items": {"$ref": "#/definitions/domain.BenchResult"}}
            }
        },
        "domain.BenchmarkData": {
            "type": "object",
            "properties": {
                "lastUpdate": {"type": "integer"},
                "repoUrl": {"type": "string"},
                "entries": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/domain.CommitRun"}}
                }
            }
        },
        "compare.Comparison": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "unit": {"type": "string"},
                "previous": {"type": "number"},
                "current": {"type": "number"},
                "ratio": {"type": "number"},
                "comparable": {"type": "boolean"},
                "regression": {"type": "boolean"}
            }
        },
        "compare.Result": {
            "type": "object",
            "properties": {
                "suite": {"type": "string"},
                "tool": {"type": "string"},
                "bigger_is_better": {"type": "boolean"},
                "previous_commit": {"type": "string"},
                "current_commit": {"type": "string"},
                "threshold": {"type": "number"},
                "comparisons": {"type": "array", "items": {"$ref": "#/definitions/compare.Comparison"}}
            }
        },
        "stats.Summary": {
            "type": "object",
            "properties": {
                "min": {"type": "number"},
                "max": {"type": "number"},
                "mean": {"type": "number"},
                "median": {"type": "number"},
                "stddev": {"type": "number"},
                "percentiles": {"type": "object", "additionalProperties": {"type": "number"}},
                "sample_count": {"type": "integer"}
            }
        },
        "stats.Series": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "unit": {"type": "string"},
                "first_commit": {"type": "string"},
                "last_commit": {"type": "string"},
                "latest": {"type": "number"},
                "values": {"type": "array", "items": {"type": "number"}},
                "summary": {"$ref": "#/definitions/stats.Summary"}
            }
        },
        "router.SuitesResponse": {
            "type": "object",
            "properties": {"suites": {"type": "array", "items": {"type": "string"}}}
        },
        "router.AppendResponse": {
            "type": "object",
            "properties": {
                "suite": {"type": "string"},
                "run": {"$ref": "#/definitions/domain.CommitRun"},
                "comparison": {"$ref": "#/definitions/compare.Result"}
            }
        },
        "router.StatsResponse": {
            "type": "object",
            "properties": {
                "suite": {"type": "string"},
                "runs": {"type": "integer"},
                "series": {"type": "array", "items": {"$ref": "#/definitions/stats.Series"}}
            }
        },
        "pagination.OffsetResult-domain_CommitRun": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.CommitRun"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "has_more": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bench History API",
	Description:      "Append-only history of benchmark runs per commit, published as data.js",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
