package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTopics(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveTopics(t *testing.T) {
	lines := writeTopics(t, "topics.txt", "# chemistry\nCatalysis\n\n  Atoms  \n")
	list := writeTopics(t, "topics.yaml", "- Catalysis\n- \"  \"\n- Atoms\n")
	empty := writeTopics(t, "empty.yaml", "")

	tests := []struct {
		name    string
		args    []string
		file    string
		want    []string
		wantErr bool
	}{
		{"built-in list", nil, "", DefaultTopics, false},
		{"arguments", []string{"Catalysis", " ", "Atoms"}, "", []string{"Catalysis", "Atoms"}, false},
		{"text file", nil, lines, []string{"Catalysis", "Atoms"}, false},
		{"yaml file", nil, list, []string{"Catalysis", "Atoms"}, false},
		{"file then arguments", []string{"Metals"}, lines, []string{"Catalysis", "Atoms", "Metals"}, false},
		{"empty file", nil, empty, nil, true},
		{"missing file", nil, filepath.Join(t.TempDir(), "nope.txt"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTopics(tt.args, tt.file)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveTopics() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resolveTopics() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultTopics(t *testing.T) {
	if len(DefaultTopics) != 5 {
		t.Fatalf("len(DefaultTopics) = %d, want 5", len(DefaultTopics))
	}
	seen := make(map[string]bool)
	for _, topic := range DefaultTopics {
		if topic == "" || seen[topic] {
			t.Errorf("bad or duplicate topic %q", topic)
		}
		seen[topic] = true
	}
}
