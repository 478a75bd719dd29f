package fop_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/jrazmi/zentask/core/scaffolding/fop"
	"github.com/jrazmi/zentask/sdk/validation"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		want       fop.Page
		wantErr    string
		wantOffset int
	}{
		{name: "defaults", want: fop.Page{Number: 1, Limit: 20}},
		{name: "explicit", page: "3", limit: "10", want: fop.Page{Number: 3, Limit: 10}, wantOffset: 20},
		{name: "limit clamped", limit: "150", want: fop.Page{Number: 1, Limit: 100}},
		{name: "page zero rejected", page: "0", wantErr: "page must be at least 1"},
		{name: "negative limit rejected", limit: "-1", wantErr: "limit must be at least 1"},
		{name: "garbage", page: "two", wantErr: "page must be a whole number"},
		{name: "offset overflow", page: "288230376151711745", limit: "64", wantErr: "page is too large"},
		{name: "largest page", page: strconv.Itoa(math.MaxInt/100 + 1), limit: "100", want: fop.Page{Number: math.MaxInt/100 + 1, Limit: 100}, wantOffset: math.MaxInt / 100 * 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fop.ParsePage(tt.page, tt.limit)
			if tt.wantErr != "" {
				var fe validation.FieldErrors
				if !errors.As(err, &fe) {
					t.Fatalf("error = %v, want FieldErrors", err)
				}
				if msgs := fe.Messages(); len(msgs) != 1 || msgs[0] != tt.wantErr {
					t.Errorf("messages = %q, want %q", msgs, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePage() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePage() = %+v, want %+v", got, tt.want)
			}
			if got.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	r := fop.PageResult[int]{Total: 41, Page: fop.Page{Number: 1, Limit: 20}}
	if r.TotalPages() != 3 {
		t.Errorf("TotalPages() = %d, want 3", r.TotalPages())
	}
	r.Total = 0
	if r.TotalPages() != 0 {
		t.Errorf("TotalPages() = %d, want 0", r.TotalPages())
	}
}

func TestParseOrder(t *testing.T) {
	mappings := map[string]string{"createdAt": "t.created_at", "sortOrder": "t.sort_order"}
	def := fop.NewBy("t.sort_order", fop.ASC)

	got, err := fop.ParseOrder(mappings, "", "", def)
	if err != nil || got != def {
		t.Fatalf("defaults: got %+v, %v", got, err)
	}

	got, err = fop.ParseOrder(mappings, "createdAt", "desc", def)
	if err != nil {
		t.Fatal(err)
	}
	if got.Field != "t.created_at" || got.Direction != fop.DESC {
		t.Errorf("got %+v", got)
	}

	if _, err := fop.ParseOrder(mappings, "title", "", def); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, err := fop.ParseOrder(mappings, "", "up", def); err == nil {
		t.Error("expected error for unknown direction")
	}
}
