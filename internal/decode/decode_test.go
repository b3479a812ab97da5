package decode

import "testing"

func TestHeaderJSONObject(t *testing.T) {
	res := HeaderJSON(`{"Content-Type": "application/json", "X-Retry": 3, "X-Debug": true, "X-Empty": null, "X-Meta": {"a": 1}}`)
	if res.FellBack() {
		t.Fatalf("expected clean decode, got fallback: %s", res.Reason)
	}
	if got := res.Values.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type header, got %q", got)
	}
	if got := res.Values.Get("X-Retry"); got != "3" {
		t.Fatalf("expected numeric value stringified, got %q", got)
	}
	if got := res.Values.Get("X-Debug"); got != "true" {
		t.Fatalf("expected boolean value stringified, got %q", got)
	}
	if got := res.Values.Get("X-Meta"); got != `{"a":1}` {
		t.Fatalf("expected nested value as compact JSON, got %q", got)
	}
	if _, ok := res.Values["X-Empty"]; !ok {
		t.Fatalf("expected null value to survive as empty header")
	}
}

func TestHeaderJSONBlankIsNotFallback(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		res := HeaderJSON(raw)
		if res.FellBack() {
			t.Fatalf("blank input %q should not fall back", raw)
		}
		if len(res.Values) != 0 {
			t.Fatalf("expected empty header set for blank input, got %v", res.Values)
		}
	}
}

func TestHeaderJSONFallsBack(t *testing.T) {
	cases := []string{
		"not-json",
		`{"a": }`,
		`[1, 2]`,
		`"just a string"`,
		`{"a": "b"} trailing`,
	}
	for _, raw := range cases {
		res := HeaderJSON(raw)
		if !res.FellBack() {
			t.Fatalf("expected fallback for %q", raw)
		}
		if res.Reason == "" {
			t.Fatalf("expected a reason for %q", raw)
		}
		if len(res.Values) != 0 {
			t.Fatalf("expected empty header set for %q, got %v", raw, res.Values)
		}
	}
}

func TestJSONTextIndents(t *testing.T) {
	res := JSONText([]byte(`{"a":1}`))
	if res.FellBack() {
		t.Fatalf("expected clean indent, got fallback: %s", res.Reason)
	}
	want := "{\n  \"a\": 1\n}"
	if res.Text != want {
		t.Fatalf("expected %q, got %q", want, res.Text)
	}
}

func TestJSONTextIdempotent(t *testing.T) {
	first := JSONText([]byte(`{"b": [1, 2], "a": "x"}`))
	second := JSONText([]byte(first.Text))
	if second.FellBack() {
		t.Fatalf("re-formatting formatted output fell back: %s", second.Reason)
	}
	if first.Text != second.Text {
		t.Fatalf("expected idempotent formatting, got %q then %q", first.Text, second.Text)
	}
}

func TestJSONTextPreservesNumberLiterals(t *testing.T) {
	res := JSONText([]byte(`{"id": 9007199254740993}`))
	if res.FellBack() {
		t.Fatalf("unexpected fallback: %s", res.Reason)
	}
	if got, want := res.Text, "{\n  \"id\": 9007199254740993\n}"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestJSONTextFallsBackToVerbatim(t *testing.T) {
	body := []byte("plain text, not json")
	res := JSONText(body)
	if !res.FellBack() {
		t.Fatalf("expected fallback for plain text")
	}
	if res.Text != string(body) {
		t.Fatalf("expected verbatim body, got %q", res.Text)
	}
}

func TestJSONTextEmpty(t *testing.T) {
	res := JSONText(nil)
	if res.FellBack() || res.Text != "" {
		t.Fatalf("expected empty ok result, got %+v", res)
	}
}
