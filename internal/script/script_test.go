package script_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/robmoss/asciinema-scripted/internal/filter"
	"github.com/robmoss/asciinema-scripted/internal/script"
)

// demoScript exercises every action and filter kind plus the optional
// geometry fields.
func demoScript() *script.Script {
	cols, rows := 100, 30
	s := script.Default("demo.cast").
		WithActions([]script.Action{
			script.MarkerAction("Start"),
			script.TextAction("ls -la"),
			script.CommentAction("Listing the working directory"),
			script.InputAction("sleep 2", 0.5, 2.5),
			script.MarkerAction("End"),
			script.TextAction("exit"),
		}).
		WithFilters([]script.FilterSpec{
			{ID: script.FilterRegexReplacement, Regex: `\$HOME`, Replacement: "/home/demo"},
			{ID: script.FilterStartMarker, StartLabel: "Start"},
			{ID: script.FilterEndMarker, EndLabel: "End"},
		}).
		WithCommentsEnabled(false)
	s.Cols = &cols
	s.Rows = &rows
	return s
}

func TestDefaultPacing(t *testing.T) {
	s := script.Default("out.cast")
	if s.OutputFile != "out.cast" {
		t.Errorf("output file: got %q", s.OutputFile)
	}
	if s.StartDelay != 0.3 || s.EndDelay != 0.5 {
		t.Errorf("start/end delays: got %v / %v", s.StartDelay, s.EndDelay)
	}
	if s.TypingDelay != (script.DelayRange{Low: 0.05, High: 0.1}) {
		t.Errorf("typing delay: got %+v", s.TypingDelay)
	}
	if s.PostNLDelay != (script.DelayRange{Low: 0.8, High: 1.0}) {
		t.Errorf("post-newline delay: got %+v", s.PostNLDelay)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	want := demoScript()
	dir := t.TempDir()
	for _, ext := range []string{".toml", ".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "demo"+ext)
			if err := want.Save(path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := script.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestLoadFormatOverridesExtension(t *testing.T) {
	want := demoScript()
	path := filepath.Join(t.TempDir(), "demo.conf")
	if err := want.SaveFormat(path, script.FormatJSON); err != nil {
		t.Fatalf("SaveFormat: %v", err)
	}
	if _, err := script.Load(path); err == nil {
		t.Error("Load should reject an unknown extension")
	}
	got, err := script.LoadFormat(path, script.FormatJSON)
	if err != nil {
		t.Fatalf("LoadFormat: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestFromMapRejectsUnknownField(t *testing.T) {
	m := map[string]any{
		"output_file":     "x.cast",
		"start_delay":     0.3,
		"end_delay":       0.5,
		"typing_delay":    []any{0.05, 0.1},
		"pre_nl_delay":    []any{0.2, 0.2},
		"post_nl_delay":   []any{0.8, 1.0},
		"with_comments":   false,
		"comments_at_top": false,
		"actions":         []any{},
		"filters":         []any{},
		"tempo":           "allegro",
	}
	if _, err := script.FromMap(m); err == nil {
		t.Fatal("expected an unknown-field error")
	}
}

func TestFromMapUnknownKinds(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"output_file":     "x.cast",
			"start_delay":     0.3,
			"end_delay":       0.5,
			"typing_delay":    []any{0.05, 0.1},
			"pre_nl_delay":    []any{0.2, 0.2},
			"post_nl_delay":   []any{0.8, 1.0},
			"with_comments":   false,
			"comments_at_top": false,
			"actions":         []any{},
			"filters":         []any{},
		}
	}

	t.Run("unknown action kind", func(t *testing.T) {
		m := base()
		m["actions"] = []any{map[string]any{"action_id": "Teleport"}}
		_, err := script.FromMap(m)
		var cerr *script.ConfigError
		if !errors.As(err, &cerr) || cerr.Kind != script.UnknownActionKind {
			t.Fatalf("expected UnknownActionKind, got %v", err)
		}
		if cerr.Name != "Teleport" {
			t.Errorf("name: got %q", cerr.Name)
		}
	})

	t.Run("unknown filter kind", func(t *testing.T) {
		m := base()
		m["filters"] = []any{map[string]any{"filter_id": "BlurFilter"}}
		_, err := script.FromMap(m)
		var cerr *script.ConfigError
		if !errors.As(err, &cerr) || cerr.Kind != script.UnknownFilterKind {
			t.Fatalf("expected UnknownFilterKind, got %v", err)
		}
	})
}

func TestFilterSpecBuild(t *testing.T) {
	specs := []script.FilterSpec{
		{ID: script.FilterRegexReplacement, Regex: "a", Replacement: "b"},
		{ID: script.FilterStartMarker, StartLabel: "S"},
		{ID: script.FilterEndMarker, EndLabel: "E"},
		{ID: script.FilterComment},
	}
	filters, err := script.BuildFilters(specs)
	if err != nil {
		t.Fatalf("BuildFilters: %v", err)
	}
	if len(filters) != len(specs) {
		t.Fatalf("got %d filters, want %d", len(filters), len(specs))
	}
	if _, ok := filters[0].(*filter.RegexReplacement); !ok {
		t.Errorf("filter 0: got %T", filters[0])
	}
	if f, ok := filters[1].(filter.StartMarker); !ok || f.Label != "S" {
		t.Errorf("filter 1: got %T %+v", filters[1], filters[1])
	}
	if f, ok := filters[2].(filter.EndMarker); !ok || f.Label != "E" {
		t.Errorf("filter 2: got %T %+v", filters[2], filters[2])
	}
	if _, ok := filters[3].(filter.Comment); !ok {
		t.Errorf("filter 3: got %T", filters[3])
	}

	_, err = script.FilterSpec{ID: "NoSuchFilter"}.Build()
	var cerr *script.ConfigError
	if !errors.As(err, &cerr) || cerr.Kind != script.UnknownFilterKind {
		t.Fatalf("expected UnknownFilterKind, got %v", err)
	}
}

func TestFilterSpecBuildBadRegex(t *testing.T) {
	_, err := script.FilterSpec{ID: script.FilterRegexReplacement, Regex: "("}.Build()
	if err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestWithCommentsEnabled(t *testing.T) {
	s := script.Default("x.cast")

	t.Run("appends the comment stage once", func(t *testing.T) {
		first := s.WithCommentsEnabled(true)
		if !first.WithComments || !first.CommentsAtTop {
			t.Errorf("flags not set: %+v", first)
		}
		second := first.WithCommentsEnabled(true)
		count := 0
		for _, fs := range second.Filters {
			if fs.ID == script.FilterComment {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected exactly one comment stage, got %d", count)
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		_ = s.WithCommentsEnabled(false)
		if s.WithComments || len(s.Filters) != 0 {
			t.Errorf("receiver changed: %+v", s)
		}
	})
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]script.Format{
		"toml": script.FormatTOML,
		"JSON": script.FormatJSON,
		"yaml": script.FormatYAML,
		"yml":  script.FormatYAML,
	} {
		got, err := script.ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q): got %v, %v", name, got, err)
		}
	}
	if _, err := script.ParseFormat("ini"); err == nil {
		t.Error("expected an error for an unsupported format name")
	}
}

func TestDetectFormat(t *testing.T) {
	for path, want := range map[string]script.Format{
		"demo.toml":    script.FormatTOML,
		"demo.json":    script.FormatJSON,
		"demo.yaml":    script.FormatYAML,
		"DEMO.YML":     script.FormatYAML,
		"a/b/demo.yml": script.FormatYAML,
	} {
		got, err := script.DetectFormat(path)
		if err != nil || got != want {
			t.Errorf("DetectFormat(%q): got %v, %v", path, got, err)
		}
	}
	if _, err := script.DetectFormat("demo.txt"); err == nil {
		t.Error("expected an error for an unknown extension")
	}
}
