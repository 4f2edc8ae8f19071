package store

import (
	"testing"
)

func TestDecodeRecordsWeakTyping(t *testing.T) {
	records := []map[string]any{
		{"id": "c1", "name": "Alice", "experience": "3.5", "skills": []any{"Go", "SQL"}},
		{"name": "Bob", "score": int32(70)},
	}

	candidates, err := decodeRecords(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := candidates.Items[0]
	if first.Experience == nil || *first.Experience != 3.5 {
		t.Fatalf("expected string number coerced, got %v", first.Experience)
	}
	if len(first.Skills) != 2 {
		t.Fatalf("unexpected skills: %v", first.Skills)
	}

	second := candidates.Items[1]
	if second.ID == "" {
		t.Fatal("expected generated id")
	}
	if second.Score == nil || *second.Score != 70 {
		t.Fatalf("expected int score coerced, got %v", second.Score)
	}
}

func TestDecodeRecordsRejectsBadShape(t *testing.T) {
	records := []map[string]any{
		{"skills": map[string]any{"bad": "shape"}},
	}

	if _, err := decodeRecords(records); err == nil {
		t.Fatal("expected decode error for malformed record")
	}
}
