package loots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/FerretBot_Go/internal/domain"
)

// ParsedBatch is one decoded tips response
type ParsedBatch struct {
	Completed []domain.Loots
	Running   *domain.Loots
	// Warnings lists entries that were skipped or only partly understood
	Warnings []error
}

// Candidates returns every tip in the batch, running tip last
func (b *ParsedBatch) Candidates() []domain.Loots {
	out := make([]domain.Loots, 0, len(b.Completed)+1)
	out = append(out, b.Completed...)
	if b.Running != nil {
		out = append(out, *b.Running)
	}
	return out
}

type tipsResponse struct {
	Data *struct {
		OK      []json.RawMessage `json:"ok"`
		Running []json.RawMessage `json:"running"`
	} `json:"data"`
}

type completedTip struct {
	UnderscoreID string `json:"_id"`
	ID           string `json:"id"`
	Type         string `json:"type"`
	Attachments  struct {
		Message string `json:"message"`
	} `json:"attachments"`
	From struct {
		Account struct {
			Name string `json:"name"`
		} `json:"account"`
	} `json:"from"`
}

// Parse decodes a tips response. Automated tips are dropped. Entries that
// cannot be decoded are skipped and reported in Warnings.
func Parse(body []byte) (*ParsedBatch, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: empty body", ErrParse)
	}

	var resp tipsResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrParse)
	}

	batch := &ParsedBatch{}
	for i, raw := range resp.Data.OK {
		var entry completedTip
		if err := json.Unmarshal(raw, &entry); err != nil {
			batch.Warnings = append(batch.Warnings, fmt.Errorf("ok[%d]: %w", i, err))
			continue
		}
		if strings.EqualFold(entry.Type, TipTypeAuto) {
			continue
		}

		id := entry.UnderscoreID
		if id == "" {
			id = entry.ID
		}
		if id == "" {
			batch.Warnings = append(batch.Warnings, fmt.Errorf("ok[%d]: %w", i, &FieldError{Path: "_id", Reason: "missing"}))
			continue
		}

		name, err := ParseAuthor(entry.From.Account.Name)
		if err != nil {
			batch.Warnings = append(batch.Warnings, fmt.Errorf("ok[%d] author: %w", i, err))
		}
		batch.Completed = append(batch.Completed, domain.Loots{
			ID:        id,
			Message:   entry.Attachments.Message,
			LootsName: name,
		})
	}

	if len(resp.Data.Running) > 0 {
		tip, warnings := decodeRunning(resp.Data.Running[0])
		batch.Running = tip
		batch.Warnings = append(batch.Warnings, warnings...)
	}
	return batch, nil
}

// decodeRunning reads the currently showing tip from a loosely shaped object.
// Every problem is reported per field; nil is returned when the tip is unusable.
func decodeRunning(raw json.RawMessage) (*domain.Loots, []error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, []error{&FieldError{Path: "running[0]", Reason: "not an object"}}
	}

	var errs []error
	id, err := idAt(obj, "_id")
	if err != nil {
		if alt, altErr := idAt(obj, "id"); altErr == nil {
			id, err = alt, nil
		}
	}
	if err != nil {
		errs = append(errs, err)
	}

	message, err := stringAt(obj, "attachments", "message")
	if err != nil {
		errs = append(errs, err)
	}

	rawName, err := stringAt(obj, "from", "account", "name")
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	name, err := ParseAuthor(rawName)
	if err != nil {
		errs = append(errs, fmt.Errorf("running[0] author: %w", err))
	}
	return &domain.Loots{ID: id, Message: message, LootsName: name}, errs
}

func valueAt(obj map[string]any, path ...string) (any, error) {
	var cur any = obj
	for i, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, &FieldError{Path: strings.Join(path[:i], "."), Reason: "not an object"}
		}
		next, ok := m[key]
		if !ok || next == nil {
			return nil, &FieldError{Path: strings.Join(path[:i+1], "."), Reason: "missing"}
		}
		cur = next
	}
	return cur, nil
}

func stringAt(obj map[string]any, path ...string) (string, error) {
	v, err := valueAt(obj, path...)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{Path: strings.Join(path, "."), Reason: fmt.Sprintf("unexpected type %T", v)}
	}
	return s, nil
}

// idAt accepts numeric ids as well as strings
func idAt(obj map[string]any, key string) (string, error) {
	v, err := valueAt(obj, key)
	if err != nil {
		return "", err
	}
	switch id := v.(type) {
	case string:
		return id, nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	default:
		return "", &FieldError{Path: key, Reason: fmt.Sprintf("unexpected type %T", v)}
	}
}
