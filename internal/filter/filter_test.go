package filter

import (
	"strings"
	"testing"
)

const doc = `[
	{"id": "save-document", "category": "global", "keys": ["ctrl", "s"]},
	{"id": "undo-action", "category": "editing", "keys": ["ctrl", "z"]},
	{"id": "select-all", "category": "editing", "keys": ["ctrl", "a"]}
]`

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       string
		wantErr    bool
	}{
		{
			name:       "empty expression passes through",
			expression: "",
			want:       doc,
		},
		{
			name:       "projection",
			expression: "[].id",
			want:       "[\n  \"save-document\",\n  \"undo-action\",\n  \"select-all\"\n]",
		},
		{
			name:       "filter by category",
			expression: "[?category=='editing'].id",
			want:       "[\n  \"undo-action\",\n  \"select-all\"\n]",
		},
		{
			name:       "no match is null",
			expression: "[0].missing",
			want:       "null",
		},
		{
			name:       "invalid expression",
			expression: "[?",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(doc, tt.expression)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_InvalidJSON(t *testing.T) {
	_, err := Apply("{not json", "a")
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("Apply() error = %v, want invalid JSON", err)
	}
}

func TestApplyValue(t *testing.T) {
	type row struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}
	got, err := ApplyValue([]row{{"a", 1}, {"b", 3}}, "max_by(@, &count).id")
	if err != nil {
		t.Fatalf("ApplyValue() error = %v", err)
	}
	if got != `"b"` {
		t.Errorf("ApplyValue() = %s, want \"b\"", got)
	}
}

func TestIsValidJMESPath(t *testing.T) {
	if !IsValidJMESPath("[].id") {
		t.Error("[].id should be valid")
	}
	if IsValidJMESPath("[?") {
		t.Error("[? should be invalid")
	}
}
