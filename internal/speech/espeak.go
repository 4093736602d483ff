package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBinary is the synthesizer used when none is configured.
const DefaultBinary = "espeak-ng"

// espeak-ng parameter baselines: -s is words per minute (175 = normal),
// -p is pitch 0-99 (50 = normal), -a is amplitude 0-200 (100 = normal).
const (
	espeakBaseRate  = 175
	espeakBasePitch = 50
	espeakBaseAmp   = 100
)

// ESpeakEngine synthesizes speech by shelling out to espeak-ng.
type ESpeakEngine struct {
	binary string
}

// NewESpeakEngine returns an engine backed by the given binary, falling back
// to espeak-ng when empty.
func NewESpeakEngine(binary string) *ESpeakEngine {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ESpeakEngine{binary: binary}
}

// Speak runs the synthesizer and blocks until playback finishes. Empty text
// is a no-op.
func (e *ESpeakEngine) Speak(ctx context.Context, text string, opts Options) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	path, err := exec.LookPath(e.binary)
	if err != nil {
		return fmt.Errorf("%w: %s not found", ErrUnavailable, e.binary)
	}
	args := append(espeakArgs(opts.Clamp()), text)
	cmd := exec.CommandContext(ctx, path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("failed to speak: %v: %s", err, msg)
		}
		return fmt.Errorf("failed to speak: %w", err)
	}
	return nil
}

// Voices lists the synthesizer's available voices.
func (e *ESpeakEngine) Voices(ctx context.Context) ([]Voice, error) {
	path, err := exec.LookPath(e.binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrUnavailable, e.binary)
	}
	out, err := exec.CommandContext(ctx, path, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}
	return parseVoices(out), nil
}

func espeakArgs(opts Options) []string {
	args := []string{
		"-s", strconv.Itoa(int(opts.Rate * espeakBaseRate)),
		"-p", strconv.Itoa(int(opts.Pitch * espeakBasePitch)),
		"-a", strconv.Itoa(int(opts.Volume * espeakBaseAmp)),
	}
	if opts.Voice != "" {
		args = append(args, "-v", opts.Voice)
	}
	return args
}

// parseVoices reads `espeak-ng --voices` table output:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  af              --/M      Afrikaans          gmw/af
func parseVoices(out []byte) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{
			Name:     fields[3],
			Language: fields[1],
		})
	}
	return voices
}
