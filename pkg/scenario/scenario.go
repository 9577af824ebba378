// Package scenario reads YAML session scripts and plays them against a
// project service.
//
// A scenario is a named list of steps. Each step performs exactly one action:
//
//	name: blog
//	steps:
//	  - add: {parent: /app, kind: directory, as: blog}
//	  - update: {target: $blog, name: blog}
//	  - add: {parent: $blog, kind: page}
//	  - expect: {path: /app/blog/page.tsx, endpoint: /blog}
//
// Targets are either full paths or $aliases bound by an earlier "as".
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-routes/pkg/tree"
)

// Scenario is a scripted editing session.
type Scenario struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step holds exactly one action.
type Step struct {
	Add    *AddStep    `yaml:"add,omitempty"`
	Update *UpdateStep `yaml:"update,omitempty"`
	Delete string      `yaml:"delete,omitempty"`
	Select string      `yaml:"select,omitempty"`
	Expect *Expect     `yaml:"expect,omitempty"`
}

// AddStep creates a node of Kind under Parent.
type AddStep struct {
	Parent string    `yaml:"parent" validate:"required,target"`
	Kind   tree.Kind `yaml:"kind" validate:"required,kind"`
	As     string    `yaml:"as,omitempty" validate:"omitempty,alphanum"`
}

// UpdateStep renames, converts or restyles Target.
type UpdateStep struct {
	Target    string          `yaml:"target" validate:"required,target"`
	Name      *string         `yaml:"name,omitempty"`
	RouteType *tree.RouteType `yaml:"route_type,omitempty" validate:"omitempty,route_type"`
	Expanded  *bool           `yaml:"expanded,omitempty"`
	Styles    *tree.Styles    `yaml:"styles,omitempty"`
	As        string          `yaml:"as,omitempty" validate:"omitempty,alphanum"`
}

// Patch converts the step into a tree patch.
func (u *UpdateStep) Patch() *tree.Patch {
	return &tree.Patch{
		Name:         u.Name,
		RouteType:    u.RouteType,
		IsExpanded:   u.Expanded,
		CustomStyles: u.Styles,
	}
}

// Expect asserts the state of the node at Path. A nil Endpoint is not
// checked; use Routable to assert the node has no endpoint.
type Expect struct {
	Path     string  `yaml:"path" validate:"required,target"`
	Endpoint *string `yaml:"endpoint,omitempty"`
	Name     string  `yaml:"name,omitempty"`
	Routable *bool   `yaml:"routable,omitempty"`
	Absent   bool    `yaml:"absent,omitempty"`
}

// Action names the single action a step performs.
func (s Step) Action() string {
	switch {
	case s.Add != nil:
		return "add"
	case s.Update != nil:
		return "update"
	case s.Delete != "":
		return "delete"
	case s.Select != "":
		return "select"
	case s.Expect != nil:
		return "expect"
	}
	return ""
}

func (s Step) actionCount() int {
	n := 0
	for _, set := range []bool{s.Add != nil, s.Update != nil, s.Delete != "", s.Select != "", s.Expect != nil} {
		if set {
			n++
		}
	}
	return n
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Parse decodes and validates a scenario held in memory.
func Parse(data []byte) (*Scenario, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a scenario from r, rejecting unknown fields, and validates it.
func Decode(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse scenario: empty document")
		}
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := Validate(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ValidationError describes a single failed field rule.
type ValidationError struct {
	Field string
	Tag   string
	Param string
}

// ValidationErrors collects every failed rule of a scenario.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "invalid scenario"
	}
	parts := make([]string, len(v))
	for i, e := range v {
		if e.Param != "" {
			parts[i] = e.Field + " failed on " + e.Tag + "=" + e.Param
		} else {
			parts[i] = e.Field + " failed on " + e.Tag
		}
	}
	return "invalid scenario: " + strings.Join(parts, "; ")
}

// Validate checks sc against its field rules.
func Validate(sc *Scenario) error {
	err := getValidator().Struct(sc)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	failures := make(ValidationErrors, 0, len(ve))
	for _, fe := range ve {
		failures = append(failures, ValidationError{
			Field: strings.TrimPrefix(fe.Namespace(), "Scenario."),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return failures
}

var (
	once     sync.Once
	validate *validator.Validate
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
			return tree.Kind(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("route_type", func(fl validator.FieldLevel) bool {
			return tree.RouteType(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("target", func(fl validator.FieldLevel) bool {
			return isTarget(fl.Field().String())
		})
		validate.RegisterStructValidation(func(sl validator.StructLevel) {
			step := sl.Current().Interface().(Step)
			if step.actionCount() != 1 {
				sl.ReportError(step, "action", "Action", "one_action", "")
			}
			if step.Delete != "" && !isTarget(step.Delete) {
				sl.ReportError(step.Delete, "delete", "Delete", "target", "")
			}
			if step.Select != "" && !isTarget(step.Select) {
				sl.ReportError(step.Select, "select", "Select", "target", "")
			}
		}, Step{})
	})
	return validate
}

// isTarget accepts full paths and $aliases.
func isTarget(s string) bool {
	if strings.HasPrefix(s, "$") {
		return len(s) > 1
	}
	return strings.HasPrefix(s, "/") && len(s) > 1
}
