// Package script defines the scripted-session configuration model and its
// three interchangeable serialization front-ends (TOML, JSON, YAML).
package script

import (
	"github.com/robmoss/asciinema-scripted/internal/cast"
	"github.com/robmoss/asciinema-scripted/internal/filter"
)

// DelayRange bounds a randomized delay, in seconds.
type DelayRange struct {
	Low  float64
	High float64
}

// ActionKind discriminates the scripted action variants.
type ActionKind int

const (
	// ActionText is a plain line typed with the script's default delays.
	ActionText ActionKind = iota
	// ActionInput is a typed line with explicit newline delays.
	ActionInput
	// ActionMarker records a named bookmark at its wall-clock offset.
	ActionMarker
	// ActionComment records a status-bar annotation at its wall-clock offset.
	ActionComment
)

// Action is a single step of a scripted session.
type Action struct {
	Kind        ActionKind
	Text        string // ActionText / ActionInput line
	Label       string // ActionMarker label
	Comment     string // ActionComment text
	PreNLDelay  float64
	PostNLDelay float64
}

// TextAction returns a plain-text line action.
func TextAction(text string) Action {
	return Action{Kind: ActionText, Text: text}
}

// InputAction returns a typed line with fixed pre/post newline delays.
func InputAction(text string, preNL, postNL float64) Action {
	return Action{Kind: ActionInput, Text: text, PreNLDelay: preNL, PostNLDelay: postNL}
}

// MarkerAction returns a marker bookmark action.
func MarkerAction(label string) Action {
	return Action{Kind: ActionMarker, Label: label}
}

// CommentAction returns a status-bar comment action.
func CommentAction(text string) Action {
	return Action{Kind: ActionComment, Comment: text}
}

// Filter descriptor wire names, matching the filter_id configuration tag.
const (
	FilterRegexReplacement = "RegexReplacementFilter"
	FilterStartMarker      = "StartMarkerFilter"
	FilterEndMarker        = "EndMarkerFilter"
	FilterComment          = "CommentFilter"
)

// FilterSpec is a tagged filter configuration record. Only the fields
// relevant to ID carry values.
type FilterSpec struct {
	ID          string
	Regex       string
	Replacement string
	StartLabel  string
	EndLabel    string
}

// Build constructs the filter stage this spec describes.
func (fs FilterSpec) Build() (cast.Filter, error) {
	switch fs.ID {
	case FilterRegexReplacement:
		return filter.NewRegexReplacement(fs.Regex, fs.Replacement)
	case FilterStartMarker:
		return filter.StartMarker{Label: fs.StartLabel}, nil
	case FilterEndMarker:
		return filter.EndMarker{Label: fs.EndLabel}, nil
	case FilterComment:
		return filter.Comment{}, nil
	default:
		return nil, &ConfigError{Kind: UnknownFilterKind, Name: fs.ID}
	}
}

// BuildFilters constructs the filter chain in declared order.
func BuildFilters(specs []FilterSpec) ([]cast.Filter, error) {
	filters := make([]cast.Filter, 0, len(specs))
	for _, fs := range specs {
		f, err := fs.Build()
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// Script is a complete scripted-session definition: what to type, how to
// pace it, and how to post-process the resulting cast.
type Script struct {
	OutputFile    string
	StartDelay    float64
	EndDelay      float64
	TypingDelay   DelayRange
	PreNLDelay    DelayRange
	PostNLDelay   DelayRange
	WithComments  bool
	CommentsAtTop bool
	Actions       []Action
	Filters       []FilterSpec
	Cols          *int
	Rows          *int
}

// Default returns a script with the stock pacing parameters.
func Default(outputFile string) *Script {
	return &Script{
		OutputFile:  outputFile,
		StartDelay:  0.3,
		EndDelay:    0.5,
		TypingDelay: DelayRange{Low: 0.05, High: 0.1},
		PreNLDelay:  DelayRange{Low: 0.2, High: 0.2},
		PostNLDelay: DelayRange{Low: 0.8, High: 1.0},
	}
}

// WithActions returns a copy of the script with the given actions.
func (s *Script) WithActions(actions []Action) *Script {
	out := *s
	out.Actions = append([]Action(nil), actions...)
	return &out
}

// WithFilters returns a copy of the script with the given filter specs.
func (s *Script) WithFilters(specs []FilterSpec) *Script {
	out := *s
	out.Filters = append([]FilterSpec(nil), specs...)
	return &out
}

// WithCommentsEnabled returns a copy with status-bar comments enabled,
// appending a CommentFilter stage when the chain lacks one so that
// Comment actions always become serializable output events.
func (s *Script) WithCommentsEnabled(atTop bool) *Script {
	out := *s
	out.WithComments = true
	out.CommentsAtTop = atTop
	out.Filters = append([]FilterSpec(nil), s.Filters...)
	for _, fs := range out.Filters {
		if fs.ID == FilterComment {
			return &out
		}
	}
	out.Filters = append(out.Filters, FilterSpec{ID: FilterComment})
	return &out
}
