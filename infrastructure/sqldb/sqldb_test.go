package sqldb_test

import (
	"bytes"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/jrazmi/zentask/infrastructure/sqldb"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "sort_order", want: `"sort_order"`},
		{in: "t.sort_order", want: `"t"."sort_order"`},
		{in: "tasks t", want: `"tasks" "t"`},
		{in: "a.b.c", wantErr: true},
		{in: "name; DROP TABLE x", wantErr: true},
		{in: "1col", wantErr: true},
		{in: "a b c", wantErr: true},
	}
	for _, tt := range tests {
		got, err := sqldb.QuoteIdentifier(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("QuoteIdentifier(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("QuoteIdentifier(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestWriteOrderBy(t *testing.T) {
	var buf bytes.Buffer
	if err := sqldb.WriteOrderBy(&buf, "t.due_date", "t.task_id", "desc"); err != nil {
		t.Fatal(err)
	}
	want := ` ORDER BY "t"."due_date" DESC NULLS LAST, "t"."task_id" DESC`
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := sqldb.WriteOrderBy(&buf, "t.task_id", "t.task_id", "ASC"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != ` ORDER BY "t"."task_id" ASC NULLS LAST` {
		t.Errorf("got %q", buf.String())
	}

	if err := sqldb.WriteOrderBy(&buf, "x", "", "sideways"); err == nil {
		t.Error("expected error for bad direction")
	}
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_second.sql": {Data: []byte("SELECT 2;")},
		"m/001_first.sql":  {Data: []byte("SELECT 1;")},
		"m/README.md":      {Data: []byte("ignored")},
	}
	migs, err := sqldb.LoadMigrations(fsys, "m")
	if err != nil {
		t.Fatal(err)
	}
	if len(migs) != 2 || migs[0].Version != "001_first.sql" || migs[1].Version != "002_second.sql" {
		t.Fatalf("unexpected migrations %+v", migs)
	}
	if err := migs[0].Verify(migs[0].Checksum); err != nil {
		t.Errorf("Verify() same checksum error = %v", err)
	}
	var mismatch *sqldb.ErrChecksumMismatch
	if err := migs[0].Verify("deadbeef"); !errors.As(err, &mismatch) {
		t.Errorf("Verify() error = %v, want checksum mismatch", err)
	}
}
