// Package driver runs a script inside a pty-attached asciinema recording
// and reports the wall-clock offsets of marker and comment actions, to be
// merged into the recorded cast afterwards.
package driver

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"

	"github.com/robmoss/asciinema-scripted/internal/cast"
	"github.com/robmoss/asciinema-scripted/internal/script"
)

// rngSeed fixes the typing rhythm so repeated recordings of the same
// script pace identically.
const rngSeed = 12345

// stopTimeout bounds how long we wait for the recorder to exit on its
// own after the final action (scripts normally end with an exit line).
const stopTimeout = 5 * time.Second

// Options adjusts how a recording session is run.
type Options struct {
	// Quiet suppresses per-line progress output.
	Quiet bool
	// Recorder overrides the recording binary; defaults to "asciinema".
	Recorder string
}

// Run records the script and returns the marker and comment events that
// were observed during the session, sorted by time, ready for
// cast.InsertEvents.
func Run(s *script.Script, opts Options) ([]cast.Event, error) {
	recorder := opts.Recorder
	if recorder == "" {
		recorder = "asciinema"
	}

	args := []string{"rec", "--overwrite"}
	if s.Cols != nil {
		args = append(args, "--cols", strconv.Itoa(*s.Cols))
	}
	if s.Rows != nil {
		args = append(args, "--rows", strconv.Itoa(*s.Rows))
	}
	if s.WithComments {
		// Record inside a GNU screen session so that comments have a
		// status line to paint on.
		rcPath, err := writeScreenRC(s.CommentsAtTop)
		if err != nil {
			return nil, err
		}
		defer os.Remove(rcPath)
		args = append(args, "-c", fmt.Sprintf("screen -c %q", rcPath))
	}
	args = append(args, s.OutputFile)

	cmd := exec.Command(recorder, args...)
	f, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("starting recorder: %w", err)
	}
	// Drain recorder output so the child never blocks on a full pty.
	go io.Copy(io.Discard, f)

	rng := rand.New(rand.NewSource(rngSeed))
	t0 := time.Now()
	sleepSeconds(s.StartDelay)

	var pending []cast.Event
	var newlineDelay float64
	for _, action := range s.Actions {
		switch action.Kind {
		case script.ActionMarker:
			pending = append(pending, cast.MarkerEvent(relTime(t0, newlineDelay), action.Label))
			continue
		case script.ActionComment:
			pending = append(pending,
				cast.CommentEvent(relTime(t0, newlineDelay), s.CommentsAtTop, action.Comment))
			continue
		case script.ActionText:
			newlineDelay, err = sendLine(f, action.Text, rng,
				s.TypingDelay, s.PreNLDelay, s.PostNLDelay)
		case script.ActionInput:
			newlineDelay, err = sendLine(f, action.Text, rng,
				s.TypingDelay,
				script.DelayRange{Low: action.PreNLDelay, High: action.PreNLDelay},
				script.DelayRange{Low: action.PostNLDelay, High: action.PostNLDelay})
		}
		if err != nil {
			stop(cmd, f)
			return nil, fmt.Errorf("sending input to recorder: %w", err)
		}
		if !opts.Quiet {
			fmt.Fprint(os.Stderr, ".")
		}
	}

	sleepSeconds(s.EndDelay)
	if !opts.Quiet {
		fmt.Fprintln(os.Stderr)
	}

	if err := waitOrStop(cmd, f); err != nil {
		return nil, err
	}
	return pending, nil
}

// relTime is the wall-clock offset for a marker or comment, pulled back
// by most of the last newline delay so it lands before the next line
// begins, rounded to millisecond precision.
func relTime(t0 time.Time, newlineDelay float64) float64 {
	rel := time.Since(t0).Seconds() - 0.8*newlineDelay
	return math.Round(rel*1000) / 1000
}

// sendLine types text character by character with jittered delays, then
// a newline. It returns the delay slept after the newline.
func sendLine(w io.Writer, text string, rng *rand.Rand, typing, preNL, postNL script.DelayRange) (float64, error) {
	for _, ch := range text {
		if _, err := io.WriteString(w, string(ch)); err != nil {
			return 0, err
		}
		sleepSeconds(uniform(rng, typing))
	}
	sleepSeconds(uniform(rng, preNL))
	if _, err := io.WriteString(w, "\n"); err != nil {
		return 0, err
	}
	final := uniform(rng, postNL)
	sleepSeconds(final)
	return final, nil
}

// uniform draws a delay from [r.Low, r.High).
func uniform(rng *rand.Rand, r script.DelayRange) float64 {
	if r.High <= r.Low {
		return r.Low
	}
	return r.Low + rng.Float64()*(r.High-r.Low)
}

func sleepSeconds(seconds float64) {
	if seconds > 0 {
		time.Sleep(time.Duration(seconds * float64(time.Second)))
	}
}

// writeScreenRC writes a temporary screenrc that reserves a blank
// hardstatus line at the top or bottom of the session.
func writeScreenRC(atTop bool) (string, error) {
	position := "last"
	if atTop {
		position = "first"
	}
	content := fmt.Sprintf("hardstatus always%sline\nhardstatus string \" \"\naltscreen on\n", position)
	path := filepath.Join(os.TempDir(), "ascript-screenrc-"+uuid.NewString())
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("writing screenrc: %w", err)
	}
	return path, nil
}

// waitOrStop waits for the recorder to finish the cast file on its own,
// escalating to a signal if it outlives stopTimeout.
func waitOrStop(cmd *exec.Cmd, f *os.File) error {
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(stopTimeout):
		stop(cmd, f)
		<-done
		return fmt.Errorf("recorder still running after final action; scripts should end the recorded shell")
	}
	return f.Close()
}

func stop(cmd *exec.Cmd, f *os.File) {
	_ = cmd.Process.Signal(syscall.SIGTERM)
	_ = f.Close()
}
