package game

import (
	"errors"
	"reflect"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list ProgressList
	}{
		{"defaults", NewDefaultProgress(testCatalog())},
		{"played", NewDefaultProgress(testCatalog()).
			WithInteraction("knb", "19.10.2026").
			WithInteraction("knb", "19.10.2026").
			WithInteraction("hundred-to-one", "10/19/2026")},
		{"numeric-looking date", ProgressList{{ID: "knb", Name: "КНБ", Progress: 100, LastPlayed: "01.02.2026", Score: 1230}}},
		{"empty", ProgressList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeProgress(tt.list)
			if err != nil {
				t.Fatalf("EncodeProgress failed: %v", err)
			}

			decoded, err := DecodeProgress(data)
			if err != nil {
				t.Fatalf("DecodeProgress failed: %v\n%s", err, data)
			}

			if len(tt.list) == 0 && len(decoded) == 0 {
				return
			}
			if !reflect.DeepEqual(decoded, tt.list) {
				t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", tt.list, decoded)
			}
		})
	}
}

// TestDecodeProgress_LegacyJSON 网页版 localStorage 中的 JSON 可以直接解析
func TestDecodeProgress_LegacyJSON(t *testing.T) {
	blob := `[{"id":"knb","name":"КНБ","progress":30,"lastPlayed":"19.10.2026","score":30},` +
		`{"id":"casino","name":"Казино","progress":0,"lastPlayed":"Никогда","score":0}]`

	list, err := DecodeProgress([]byte(blob))
	if err != nil {
		t.Fatalf("DecodeProgress failed: %v", err)
	}

	want := ProgressList{
		{ID: "knb", Name: "КНБ", Progress: 30, LastPlayed: "19.10.2026", Score: 30},
		{ID: "casino", Name: "Казино", Progress: 0, LastPlayed: NeverPlayed, Score: 0},
	}
	if !reflect.DeepEqual(list, want) {
		t.Errorf("want %+v\ngot  %+v", want, list)
	}
}

// TestDecodeProgress_IntegerFields 整数字段接受 JSON 和 YAML 的整数写法
func TestDecodeProgress_IntegerFields(t *testing.T) {
	list, err := DecodeProgress([]byte("- id: knb\n  progress: 40\n  score: 1230\n"))
	if err != nil {
		t.Fatalf("DecodeProgress failed: %v", err)
	}
	if list[0].Progress != 40 || list[0].Score != 1230 {
		t.Errorf("got %+v", list[0])
	}

	if list, err := DecodeProgress(nil); err != nil || len(list) != 0 {
		t.Errorf("empty data: expected empty list, got %+v err=%v", list, err)
	}
}

func TestDecodeProgress_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "[{"},
		{"mapping instead of list", "id: knb\nprogress: 10\n"},
		{"wrong type", `[{"id":"knb","progress":"ten"}]`},
		{"missing id", `[{"name":"КНБ","progress":10}]`},
		{"duplicate id", `[{"id":"knb"},{"id":"knb"}]`},
		{"progress over cap", `[{"id":"knb","progress":110}]`},
		{"negative progress", `[{"id":"knb","progress":-10}]`},
		{"negative score", `[{"id":"knb","score":-1}]`},
		{"fractional progress", `[{"id":"knb","progress":5.5,"score":10}]`},
		{"fractional score", `[{"id":"knb","progress":10,"score":7.9}]`},
		{"exponent score", `[{"id":"knb","score":1e2}]`},
		{"null progress", `[{"id":"knb","progress":null}]`},
		{"quoted score", `[{"id":"knb","score":"10"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProgress([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !errors.Is(err, ErrCorruptProgress) {
				t.Errorf("Expected ErrCorruptProgress, got %v", err)
			}
		})
	}
}

func TestReconcileProgress(t *testing.T) {
	catalog := testCatalog()

	t.Run("matching list is kept verbatim", func(t *testing.T) {
		list := NewDefaultProgress(catalog).WithInteraction("draw", "19.10.2026")
		result := reconcileProgress(list, catalog)
		if result.modified {
			t.Error("Expected no modification")
		}
		if !reflect.DeepEqual(result.list, list) {
			t.Errorf("Expected verbatim list, got %+v", result.list)
		}
	})

	t.Run("stored order is preserved", func(t *testing.T) {
		list := NewDefaultProgress(catalog)
		list[0], list[4] = list[4], list[0]
		result := reconcileProgress(list, catalog)
		if result.modified {
			t.Error("Reordering alone should not count as modification")
		}
		if result.list[0].ID != "hundred-to-one" {
			t.Errorf("Expected stored order, got first=%s", result.list[0].ID)
		}
	})

	t.Run("missing games are appended and unknown dropped", func(t *testing.T) {
		list := ProgressList{
			{ID: "casino", Name: "Казино", Progress: 40, LastPlayed: "18.10.2026", Score: 40},
			{ID: "chess", Name: "Шахматы", Progress: 10, LastPlayed: "18.10.2026", Score: 10},
		}
		result := reconcileProgress(list, catalog)

		if !result.modified {
			t.Error("Expected modification")
		}
		if !reflect.DeepEqual(result.dropped, []string{"chess"}) {
			t.Errorf("dropped: got %v", result.dropped)
		}
		wantAdded := []string{"knb", "emoji-puzzle", "draw", "hundred-to-one"}
		if !reflect.DeepEqual(result.added, wantAdded) {
			t.Errorf("added: got %v", result.added)
		}

		assertMatchesCatalog(t, result.list, catalog)
		if result.list[0] != list[0] {
			t.Errorf("casino record should be kept as stored, got %+v", result.list[0])
		}
		for _, p := range result.list[1:] {
			assertDefaults(t, p)
		}
	})

	t.Run("missing name and lastPlayed are filled", func(t *testing.T) {
		list := NewDefaultProgress(catalog)
		list[1] = GameProgress{ID: "casino", Progress: 20, Score: 20}
		list[2].Name = ""

		result := reconcileProgress(list, catalog)

		if !result.modified {
			t.Error("Expected modification")
		}
		if !reflect.DeepEqual(result.filled, []string{"casino", "emoji-puzzle"}) {
			t.Errorf("filled: got %v", result.filled)
		}
		casino := result.list[1]
		if casino.Name != "Казино" || casino.LastPlayed != NeverPlayed {
			t.Errorf("casino: expected catalog name and sentinel, got %+v", casino)
		}
		if casino.Progress != 20 || casino.Score != 20 {
			t.Errorf("casino: stored values should be kept, got %+v", casino)
		}
		if result.list[2].Name != "Эмодзи-пазл" || result.list[2].LastPlayed != NeverPlayed {
			t.Errorf("emoji-puzzle: got %+v", result.list[2])
		}
	})

	t.Run("empty list becomes defaults", func(t *testing.T) {
		result := reconcileProgress(nil, catalog)
		if !reflect.DeepEqual(result.list, NewDefaultProgress(catalog)) {
			t.Errorf("Expected defaults, got %+v", result.list)
		}
	})
}
