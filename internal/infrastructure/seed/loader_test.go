package seed

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `
- account_id: ACC-1001
  customer_name: Jane Doe
  data:
    customer_name: Jane Doe
    balance: 1000
    rate: 0.5
    vip: true
    tags: [gold, early]
    address:
      city: Lyon
      zip: "69001"
- account_id: ACC-1002
  customer_name: "  JOHN   smith "
  data:
    balance: 12
`

func TestLoad_KeepsDataOrder(t *testing.T) {
	recs, err := Load(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	first := recs[0]
	if first.AccountID != "ACC-1001" || first.CustomerName != "Jane Doe" {
		t.Fatalf("unexpected record %+v", first)
	}
	if diff := cmp.Diff([]string{"customer_name", "balance", "rate", "vip", "tags", "address"}, first.Data.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	b, err := json.Marshal(first.Data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"customer_name":"Jane Doe","balance":1000,"rate":0.5,"vip":true,"tags":["gold","early"],"address":{"city":"Lyon","zip":"69001"}}`
	if string(b) != want {
		t.Fatalf("unexpected json:\nwant %s\ngot  %s", want, b)
	}

	if recs[1].CustomerName != "  JOHN   smith " {
		t.Fatalf("customer name should be kept verbatim, got %q", recs[1].CustomerName)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":        ``,
		"empty list":   `[]`,
		"no account":   "- customer_name: x\n  data: {a: 1}\n",
		"scalar data":  "- account_id: A\n  customer_name: x\n  data: 5\n",
		"missing data": "- account_id: A\n  customer_name: x\n",
		"not a list":   "account_id: A\n",
	}
	for name, in := range cases {
		if _, err := Load(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Load(strings.NewReader(``)); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestFake_Deterministic(t *testing.T) {
	a := Fake(3, 42)
	b := Fake(3, 42)
	if len(a) != 3 {
		t.Fatalf("expected 3 records, got %d", len(a))
	}
	for i := range a {
		ja, _ := json.Marshal(a[i].Data)
		jb, _ := json.Marshal(b[i].Data)
		if string(ja) != string(jb) || a[i].AccountID != b[i].AccountID {
			t.Fatalf("record %d differs between runs", i)
		}
		if a[i].Data.Keys()[0] != "account_id" {
			t.Fatalf("unexpected first key %v", a[i].Data.Keys())
		}
	}
}
