package script

import "fmt"

// The three serialization front-ends all decode to this one generic map
// shape; FromMap and toMap are the single conversion in each direction.

var scriptFields = map[string]bool{
	"output_file":     true,
	"start_delay":     true,
	"end_delay":       true,
	"typing_delay":    true,
	"pre_nl_delay":    true,
	"post_nl_delay":   true,
	"with_comments":   true,
	"comments_at_top": true,
	"actions":         true,
	"filters":         true,
	"cols":            true,
	"rows":            true,
}

// FromMap builds a Script from decoded configuration data, rejecting
// unknown fields and unknown action/filter kinds.
func FromMap(data map[string]any) (*Script, error) {
	for key := range data {
		if !scriptFields[key] {
			return nil, fmt.Errorf("script: unknown field %q", key)
		}
	}

	s := &Script{}
	var err error
	if s.OutputFile, err = stringField(data, "output_file"); err != nil {
		return nil, err
	}
	if s.StartDelay, err = floatField(data, "start_delay"); err != nil {
		return nil, err
	}
	if s.EndDelay, err = floatField(data, "end_delay"); err != nil {
		return nil, err
	}
	if s.TypingDelay, err = delayField(data, "typing_delay"); err != nil {
		return nil, err
	}
	if s.PreNLDelay, err = delayField(data, "pre_nl_delay"); err != nil {
		return nil, err
	}
	if s.PostNLDelay, err = delayField(data, "post_nl_delay"); err != nil {
		return nil, err
	}
	if s.WithComments, err = boolField(data, "with_comments"); err != nil {
		return nil, err
	}
	if s.CommentsAtTop, err = boolField(data, "comments_at_top"); err != nil {
		return nil, err
	}
	if s.Cols, err = optionalIntField(data, "cols"); err != nil {
		return nil, err
	}
	if s.Rows, err = optionalIntField(data, "rows"); err != nil {
		return nil, err
	}

	actions, err := listField(data, "actions")
	if err != nil {
		return nil, err
	}
	for _, raw := range actions {
		action, err := parseAction(raw)
		if err != nil {
			return nil, err
		}
		s.Actions = append(s.Actions, action)
	}

	filters, err := listField(data, "filters")
	if err != nil {
		return nil, err
	}
	for _, raw := range filters {
		spec, err := parseFilterSpec(raw)
		if err != nil {
			return nil, err
		}
		s.Filters = append(s.Filters, spec)
	}
	return s, nil
}

// toMap is the inverse of FromMap. Only fields carrying values appear,
// so absent cols/rows round-trip as absent.
func (s *Script) toMap() map[string]any {
	actions := make([]any, len(s.Actions))
	for i, action := range s.Actions {
		actions[i] = actionToValue(action)
	}
	filters := make([]any, len(s.Filters))
	for i, spec := range s.Filters {
		filters[i] = filterSpecToMap(spec)
	}

	data := map[string]any{
		"output_file":     s.OutputFile,
		"start_delay":     s.StartDelay,
		"end_delay":       s.EndDelay,
		"typing_delay":    []float64{s.TypingDelay.Low, s.TypingDelay.High},
		"pre_nl_delay":    []float64{s.PreNLDelay.Low, s.PreNLDelay.High},
		"post_nl_delay":   []float64{s.PostNLDelay.Low, s.PostNLDelay.High},
		"with_comments":   s.WithComments,
		"comments_at_top": s.CommentsAtTop,
		"actions":         actions,
		"filters":         filters,
	}
	if s.Cols != nil {
		data["cols"] = *s.Cols
	}
	if s.Rows != nil {
		data["rows"] = *s.Rows
	}
	return data
}

func parseAction(raw any) (Action, error) {
	switch v := raw.(type) {
	case string:
		return TextAction(v), nil
	case map[string]any:
		id, err := stringField(v, "action_id")
		if err != nil {
			return Action{}, err
		}
		switch id {
		case "Input":
			text, err := stringField(v, "text")
			if err != nil {
				return Action{}, err
			}
			preNL, err := floatField(v, "pre_nl_delay")
			if err != nil {
				return Action{}, err
			}
			postNL, err := floatField(v, "post_nl_delay")
			if err != nil {
				return Action{}, err
			}
			return InputAction(text, preNL, postNL), nil
		case "Marker":
			label, err := stringField(v, "label")
			if err != nil {
				return Action{}, err
			}
			return MarkerAction(label), nil
		case "Comment":
			text, err := stringField(v, "comment")
			if err != nil {
				return Action{}, err
			}
			return CommentAction(text), nil
		default:
			return Action{}, &ConfigError{Kind: UnknownActionKind, Name: id}
		}
	default:
		return Action{}, fmt.Errorf("script: invalid action %v", raw)
	}
}

func actionToValue(action Action) any {
	switch action.Kind {
	case ActionText:
		return action.Text
	case ActionInput:
		return map[string]any{
			"action_id":     "Input",
			"text":          action.Text,
			"pre_nl_delay":  action.PreNLDelay,
			"post_nl_delay": action.PostNLDelay,
		}
	case ActionMarker:
		return map[string]any{"action_id": "Marker", "label": action.Label}
	case ActionComment:
		return map[string]any{"action_id": "Comment", "comment": action.Comment}
	}
	return nil
}

func parseFilterSpec(raw any) (FilterSpec, error) {
	tbl, ok := raw.(map[string]any)
	if !ok {
		return FilterSpec{}, fmt.Errorf("script: invalid filter %v", raw)
	}
	id, err := stringField(tbl, "filter_id")
	if err != nil {
		return FilterSpec{}, err
	}
	spec := FilterSpec{ID: id}
	switch id {
	case FilterRegexReplacement:
		if spec.Regex, err = stringField(tbl, "regex"); err != nil {
			return FilterSpec{}, err
		}
		if spec.Replacement, err = stringField(tbl, "replacement"); err != nil {
			return FilterSpec{}, err
		}
	case FilterStartMarker:
		if spec.StartLabel, err = stringField(tbl, "start_label"); err != nil {
			return FilterSpec{}, err
		}
	case FilterEndMarker:
		if spec.EndLabel, err = stringField(tbl, "end_label"); err != nil {
			return FilterSpec{}, err
		}
	case FilterComment:
		// No parameters.
	default:
		return FilterSpec{}, &ConfigError{Kind: UnknownFilterKind, Name: id}
	}
	return spec, nil
}

func filterSpecToMap(spec FilterSpec) map[string]any {
	tbl := map[string]any{"filter_id": spec.ID}
	switch spec.ID {
	case FilterRegexReplacement:
		tbl["regex"] = spec.Regex
		tbl["replacement"] = spec.Replacement
	case FilterStartMarker:
		tbl["start_label"] = spec.StartLabel
	case FilterEndMarker:
		tbl["end_label"] = spec.EndLabel
	}
	return tbl
}

// Field helpers tolerant of the numeric types the three decoders
// produce (float64 from JSON, int64 from TOML, int from YAML).

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("script: missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("script: field %q is not a string", key)
	}
	return s, nil
}

func floatField(m map[string]any, key string) (float64, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("script: missing field %q", key)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("script: field %q is not a number", key)
	}
	return f, nil
}

func boolField(m map[string]any, key string) (bool, error) {
	v, ok := m[key]
	if !ok {
		return false, fmt.Errorf("script: missing field %q", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("script: field %q is not a boolean", key)
	}
	return b, nil
}

func optionalIntField(m map[string]any, key string) (*int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil, fmt.Errorf("script: field %q is not an integer", key)
	}
	return &n, nil
}

func listField(m map[string]any, key string) ([]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("script: missing field %q", key)
	}
	switch list := v.(type) {
	case []any:
		return list, nil
	case []map[string]any:
		// TOML array-of-tables syntax decodes to this shape.
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, nil
	}
	return nil, fmt.Errorf("script: field %q is not a list", key)
}

func delayField(m map[string]any, key string) (DelayRange, error) {
	list, err := listField(m, key)
	if err != nil {
		return DelayRange{}, err
	}
	if len(list) != 2 {
		return DelayRange{}, fmt.Errorf("script: field %q must hold two values", key)
	}
	low, ok := toFloat(list[0])
	if !ok {
		return DelayRange{}, fmt.Errorf("script: field %q is not numeric", key)
	}
	high, ok := toFloat(list[1])
	if !ok {
		return DelayRange{}, fmt.Errorf("script: field %q is not numeric", key)
	}
	return DelayRange{Low: low, High: high}, nil
}
