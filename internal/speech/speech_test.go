package speech

import (
	"reflect"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{
			name: "in range unchanged",
			in:   Options{Rate: 1.2, Pitch: 0.8, Volume: 0.5, Voice: "en"},
			want: Options{Rate: 1.2, Pitch: 0.8, Volume: 0.5, Voice: "en"},
		},
		{
			name: "too low",
			in:   Options{Rate: 0.1, Pitch: 0, Volume: 0},
			want: Options{Rate: 0.5, Pitch: 0.5, Volume: 0.1},
		},
		{
			name: "too high",
			in:   Options{Rate: 5, Pitch: 3, Volume: 2},
			want: Options{Rate: 2, Pitch: 2, Volume: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestESpeakArgs(t *testing.T) {
	got := espeakArgs(Options{Rate: 1, Pitch: 1, Volume: 1})
	want := []string{"-s", "175", "-p", "50", "-a", "100"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}

	got = espeakArgs(Options{Rate: 2, Pitch: 0.5, Volume: 0.1, Voice: "en-US"})
	want = []string{"-s", "350", "-p", "25", "-a", "10", "-v", "en-US"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
}

func TestParseVoices(t *testing.T) {
	out := []byte(`Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-US           --/M      English_(America)  gmw/en-US            (en 10)
 5  de              --/M      German             gmw/de
`)
	voices := parseVoices(out)
	if len(voices) != 3 {
		t.Fatalf("parsed %d voices, want 3", len(voices))
	}
	if voices[1].Name != "English_(America)" || voices[1].Language != "en-US" {
		t.Errorf("voices[1] = %+v", voices[1])
	}
}
