package catalog

import "testing"

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		cat  Catalog
		want []string
	}{
		{
			name: "no duplicates",
			cat: Catalog{
				{Country: "Italy", Image: "https://example.com/1.jpg"},
				{Country: "Chile", Image: "https://example.com/2.jpg"},
			},
			want: []string{"https://example.com/1.jpg", "https://example.com/2.jpg"},
		},
		{
			name: "first occurrence wins",
			cat: Catalog{
				{Country: "Italy", Image: "https://example.com/1.jpg"},
				{Country: "Chile", Image: "https://example.com/1.jpg"},
				{Country: "Peru", Image: "https://example.com/2.jpg"},
				{Country: "Italy", Image: "https://example.com/2.jpg"},
			},
			want: []string{"https://example.com/1.jpg", "https://example.com/2.jpg"},
		},
		{
			name: "empty catalog",
			cat:  Catalog{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cat.Dedupe()
			if len(got) != len(tt.want) {
				t.Fatalf("Dedupe() kept %d records, want %d", len(got), len(tt.want))
			}
			for i, rec := range got {
				if rec.Image != tt.want[i] {
					t.Errorf("Dedupe()[%d].Image = %q, want %q", i, rec.Image, tt.want[i])
				}
			}
		})
	}
}

func TestDedupeKeepsFirstRecord(t *testing.T) {
	cat := Catalog{
		{Country: "Italy", Image: "https://example.com/1.jpg", Region: "Tuscany"},
		{Country: "Chile", Image: "https://example.com/1.jpg", Region: "Atacama"},
	}

	got := cat.Dedupe()
	if len(got) != 1 {
		t.Fatalf("Dedupe() kept %d records, want 1", len(got))
	}
	if got[0].Country != "Italy" || got[0].Region != "Tuscany" {
		t.Errorf("Dedupe() kept %+v, want the first record", got[0])
	}
}

func TestByCountry(t *testing.T) {
	cat := Catalog{
		{Country: "Italy", Image: "https://example.com/1.jpg"},
		{Country: "", Image: "https://example.com/2.jpg"},
		{Country: "Italy", Image: "https://example.com/1.jpg"},
	}

	pairs := cat.ByCountry()
	if len(pairs) != 2 {
		t.Fatalf("ByCountry() returned %d pairs, want 2", len(pairs))
	}
	if pairs[0].Country != "Italy" || pairs[0].Image != "https://example.com/1.jpg" {
		t.Errorf("unexpected first pair: %+v", pairs[0])
	}
	if pairs[1].Country != "" {
		t.Errorf("empty country should be preserved in pairs, got %q", pairs[1].Country)
	}
}
