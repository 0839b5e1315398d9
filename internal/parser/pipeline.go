// Package parser turns raw pipeline payloads into models.Pipeline values.
// It rejects payloads whose shape cannot describe a pipeline before any graph
// logic runs.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pipelinescope/core/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformedBody is returned when the payload is empty or not valid JSON/YAML.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrInvalidShape is returned when the payload decodes but does not have
	// the nodes/edges structure of a pipeline.
	ErrInvalidShape = errors.New("invalid request shape")
)

var validate = validator.New()

// Wire types use pointers so that an absent field is distinguishable from an
// empty string identifier.
type pipelinePayload struct {
	Nodes []*nodePayload `json:"nodes" yaml:"nodes" validate:"required,dive,required"`
	Edges []*edgePayload `json:"edges" yaml:"edges" validate:"required,dive,required"`
}

type nodePayload struct {
	ID *string `json:"id" yaml:"id" validate:"required"`
}

type edgePayload struct {
	Source *string `json:"source" yaml:"source" validate:"required"`
	Target *string `json:"target" yaml:"target" validate:"required"`
}

// ParsePipeline decodes a JSON pipeline payload.
func ParsePipeline(data []byte) (*models.Pipeline, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty pipeline data", ErrMalformedBody)
	}

	var payload pipelinePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s must be of type %s", ErrInvalidShape, fieldPath(typeErr), jsonTypeName(typeErr))
		}
		return nil, fmt.Errorf("%w: failed to unmarshal pipeline: %v", ErrMalformedBody, err)
	}

	return payload.toPipeline()
}

// ParsePipelineYAML decodes a YAML pipeline document. JSON documents are valid
// YAML and are accepted as well.
func ParsePipelineYAML(data []byte) (*models.Pipeline, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty pipeline data", ErrMalformedBody)
	}

	var payload pipelinePayload
	if err := yaml.Unmarshal(data, &payload); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidShape, strings.Join(typeErr.Errors, "; "))
		}
		return nil, fmt.Errorf("%w: failed to unmarshal pipeline: %v", ErrMalformedBody, err)
	}

	return payload.toPipeline()
}

func (p *pipelinePayload) toPipeline() (*models.Pipeline, error) {
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidShape, formatValidationError(err))
	}

	pipeline := &models.Pipeline{
		Nodes: make([]models.Node, 0, len(p.Nodes)),
		Edges: make([]models.Edge, 0, len(p.Edges)),
	}
	for _, n := range p.Nodes {
		pipeline.Nodes = append(pipeline.Nodes, models.Node{ID: *n.ID})
	}
	for _, e := range p.Edges {
		pipeline.Edges = append(pipeline.Edges, models.Edge{Source: *e.Source, Target: *e.Target})
	}

	return pipeline, nil
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s is required", namespace(e)))
	}
	return strings.Join(messages, "; ")
}

// namespace renders a field error as a lower-case path such as nodes[2].id.
func namespace(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}

func fieldPath(err *json.UnmarshalTypeError) string {
	if err.Field == "" {
		return "body"
	}
	return err.Field
}

func jsonTypeName(err *json.UnmarshalTypeError) string {
	switch err.Type.Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map, reflect.Pointer:
		return "object"
	default:
		return err.Type.Kind().String()
	}
}
