// Package session keeps the in-progress form data of a resume or portfolio
// workflow between requests.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/nikogura/folio/pkg/profile"
	"github.com/pkg/errors"
)

const (
	// WorkflowResume collects resume data.
	WorkflowResume = "resume"
	// WorkflowPortfolio collects portfolio data.
	WorkflowPortfolio = "portfolio"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session is the form state of one workflow run.
type Session struct {
	ID        string         `json:"id"`
	Workflow  string         `json:"workflow"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store persists sessions.
type Store interface {
	Create(ctx context.Context, workflow string) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}

// ValidWorkflow reports whether workflow names a known workflow.
func ValidWorkflow(workflow string) (ok bool) {
	ok = workflow == WorkflowResume || workflow == WorkflowPortfolio
	return ok
}

// New starts an empty session for workflow.
func New(workflow string) (s Session, err error) {
	if !ValidWorkflow(workflow) {
		err = errors.Errorf("unknown workflow %q (expected %s or %s)", workflow, WorkflowResume, WorkflowPortfolio)
		return s, err
	}

	now := time.Now().UTC()
	s = Session{
		ID:        uuid.NewString(),
		Workflow:  workflow,
		Fields:    map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s, err
}

// Merge applies a partial form update. Nested objects merge key by key,
// a nil value removes the key, and anything else replaces what was there.
func (s *Session) Merge(fields map[string]any) {
	if s.Fields == nil {
		s.Fields = map[string]any{}
	}
	mergeInto(s.Fields, fields)
	s.UpdatedAt = time.Now().UTC()
}

func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		if value == nil {
			delete(dst, key)
			continue
		}

		incoming, isMap := value.(map[string]any)
		existing, wasMap := dst[key].(map[string]any)
		if isMap && wasMap {
			mergeInto(existing, incoming)
			continue
		}

		dst[key] = cloneValue(value)
	}
}

// DecodeResume converts the session fields into resume data. Form values
// are weakly typed: numbers and booleans become strings where the resume
// expects text.
func (s Session) DecodeResume() (r profile.Resume, err error) {
	err = decode(s.Fields, &r)
	if err != nil {
		err = errors.Wrap(err, "failed to decode resume fields")
		return r, err
	}
	return r, err
}

// DecodePortfolio converts the session fields into portfolio data.
func (s Session) DecodePortfolio() (p profile.Portfolio, err error) {
	err = decode(s.Fields, &p)
	if err != nil {
		err = errors.Wrap(err, "failed to decode portfolio fields")
		return p, err
	}
	return p, err
}

func decode(input map[string]any, result any) (err error) {
	var decoder *mapstructure.Decoder
	decoder, err = mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           result,
	})
	if err != nil {
		return err
	}

	err = decoder.Decode(input)
	return err
}

func clone(s Session) (c Session) {
	c = s
	c.Fields = cloneMap(s.Fields)
	return c
}

func cloneMap(in map[string]any) (out map[string]any) {
	if in == nil {
		return out
	}
	out = make(map[string]any, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(in any) (out any) {
	switch v := in.(type) {
	case map[string]any:
		out = cloneMap(v)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = cloneValue(item)
		}
		out = items
	default:
		out = v
	}
	return out
}
