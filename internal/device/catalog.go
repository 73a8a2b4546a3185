package device

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

//go:embed default.yaml
var defaultCatalog []byte

// Catalog describes a simulated device.
type Catalog struct {
	CurrentProfile  string        `yaml:"current_profile"`
	DefaultLauncher bool          `yaml:"default_launcher"`
	Profiles        []ProfileSpec `yaml:"profiles"`
	LaunchFailures  []FailureSpec `yaml:"launch_failures,omitempty"`
}

// ProfileSpec is one user profile and its installed apps.
type ProfileSpec struct {
	ID string `yaml:"id"`

	// Unavailable profiles fail enumeration (e.g. a paused work profile).
	Unavailable bool      `yaml:"unavailable,omitempty"`
	Apps        []AppSpec `yaml:"apps,omitempty"`
}

// AppSpec is one installed package. Without activities the package gets a
// single "<package>.MainActivity".
type AppSpec struct {
	Label      string   `yaml:"label"`
	Package    string   `yaml:"package"`
	Activities []string `yaml:"activities,omitempty"`
	System     bool     `yaml:"system,omitempty"`
	New        bool     `yaml:"new,omitempty"`
}

// FailureSpec makes every launch of a package under a profile fail.
type FailureSpec struct {
	Package string `yaml:"package"`
	Profile string `yaml:"profile"`
}

// Catalog validation error codes.
const (
	ErrSchema           = "E201" // catalog does not match the CUE schema
	ErrDuplicateProfile = "E202" // profile id listed twice
	ErrUnknownCurrent   = "E203" // current_profile not among profiles
	ErrDuplicatePackage = "E204" // package listed twice in one profile
	ErrUnknownFailure   = "E205" // launch failure names an unknown profile
)

// ValidationError is a catalog validation failure.
type ValidationError struct {
	Field   string
	Message string
	Code    string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// CatalogError collects every validation failure of a catalog.
type CatalogError struct {
	Errors []ValidationError
}

func (e *CatalogError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return "invalid catalog: " + strings.Join(msgs, "; ")
}

// DefaultCatalog returns the built-in demo device.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog validates data against the catalog schema and decodes it.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var c Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if errs := Validate(&c); len(errs) > 0 {
		return nil, &CatalogError{Errors: errs}
	}
	return &c, nil
}

// validateSchema unifies the decoded document with #Catalog.
func validateSchema(raw any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return &CatalogError{Errors: []ValidationError{{Field: "catalog", Message: err.Error(), Code: ErrSchema}}}
	}

	unified := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &CatalogError{Errors: []ValidationError{{Field: "catalog", Message: err.Error(), Code: ErrSchema}}}
	}
	return nil
}

// Validate checks the cross-field rules the schema cannot express.
// Returns all errors found.
func Validate(c *Catalog) []ValidationError {
	var errs []ValidationError

	profiles := make(map[string]bool, len(c.Profiles))
	for i, p := range c.Profiles {
		field := fmt.Sprintf("profiles[%d]", i)
		if profiles[p.ID] {
			errs = append(errs, ValidationError{Field: field + ".id", Message: fmt.Sprintf("duplicate profile %q", p.ID), Code: ErrDuplicateProfile})
		}
		profiles[p.ID] = true

		pkgs := make(map[string]bool, len(p.Apps))
		for j, a := range p.Apps {
			if pkgs[a.Package] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.apps[%d].package", field, j),
					Message: fmt.Sprintf("duplicate package %q", a.Package),
					Code:    ErrDuplicatePackage,
				})
			}
			pkgs[a.Package] = true
		}
	}

	if !profiles[c.CurrentProfile] {
		errs = append(errs, ValidationError{Field: "current_profile", Message: fmt.Sprintf("unknown profile %q", c.CurrentProfile), Code: ErrUnknownCurrent})
	}
	for i, f := range c.LaunchFailures {
		if !profiles[f.Profile] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("launch_failures[%d].profile", i),
				Message: fmt.Sprintf("unknown profile %q", f.Profile),
				Code:    ErrUnknownFailure,
			})
		}
	}
	return errs
}
