package releases

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed releases.json
var embeddedCatalog []byte

//go:embed schema/releases.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Release is one known toolkit release.
type Release struct {
	// Version is the toolkit release as major.minor, e.g. "12.1".
	Version string `json:"version"`
	// MinDriver is the minimum driver version this release runs on.
	MinDriver string `json:"min_driver"`
}

// Catalog maps toolkit releases to driver requirements.
type Catalog struct {
	Releases []Release `json:"releases"`
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/releases/0/version")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("releases.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("releases.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Load returns the embedded catalog, schema-validated and parsed.
func Load() (*Catalog, error) {
	return parse(embeddedCatalog, "embedded catalog")
}

// LoadFile parses and validates a user-supplied catalog file, for machines
// tracking toolkit releases newer than this binary knows about.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Catalog, error) {
	issues, err := validate(data)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "invalid catalog %s:", source)
		for _, issue := range issues {
			fmt.Fprintf(&b, "\n  %s: %s", issue.Path, issue.Message)
		}
		return nil, fmt.Errorf("%s", b.String())
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", source, err)
	}
	return &c, nil
}

// validate checks raw JSON against the catalog schema and returns the
// validation issues found. The error return is for schema compilation or
// malformed JSON only.
func validate(data []byte) ([]ValidationIssue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return extractIssues(validationErr), nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return issues
}

// collectValidationIssues recursively walks the error tree to find leaf
// errors with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// MinDriver returns the minimum driver version for a toolkit release. The
// lookup matches on major.minor, so "12.1" matches an installed "12.1"
// directory regardless of patch suffixes in either.
func (c *Catalog) MinDriver(toolkitVersion string) (string, bool) {
	want, err := semver.NewVersion(toolkitVersion)
	if err != nil {
		return "", false
	}
	for _, r := range c.Releases {
		have, err := semver.NewVersion(r.Version)
		if err != nil {
			continue
		}
		if have.Major() == want.Major() && have.Minor() == want.Minor() {
			return r.MinDriver, true
		}
	}
	return "", false
}

// DriverSatisfies reports whether the installed driver meets the minimum for
// the given toolkit release. The second return value is false when the
// release is not in the catalog or a version fails to parse; callers should
// treat that as "unknown", not "incompatible".
func (c *Catalog) DriverSatisfies(toolkitVersion, driverVersion string) (ok bool, known bool) {
	required, found := c.MinDriver(toolkitVersion)
	if !found {
		return false, false
	}
	minV, err := semver.NewVersion(required)
	if err != nil {
		return false, false
	}
	driverV, err := semver.NewVersion(driverVersion)
	if err != nil {
		return false, false
	}
	return !driverV.LessThan(minV), true
}
