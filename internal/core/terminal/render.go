package terminal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/securevault/vault-system/internal/core/domain"
)

const (
	NotFoundMessage   = "SEARCH_UNSUCCESSFUL: RECORD_NOT_FOUND"
	RestrictedMessage = "Access Restricted: Decrypted content hidden for standard users."
)

// ViewKind selects which of the result views is shown.
type ViewKind int

const (
	ViewEmpty ViewKind = iota
	ViewError
	ViewNotFound
	ViewDisclosed
	ViewRestricted
)

func (k ViewKind) String() string {
	switch k {
	case ViewError:
		return "error"
	case ViewNotFound:
		return "not_found"
	case ViewDisclosed:
		return "disclosed"
	case ViewRestricted:
		return "restricted"
	default:
		return "empty"
	}
}

// Row is one disclosed field.
type Row struct {
	Label string
	Value string
}

func (r Row) String() string {
	return r.Label + ": " + r.Value
}

// ResultView is everything the result panel needs to draw.
type ResultView struct {
	Kind     ViewKind
	Headline string
	Rows     []Row
	Notice   string
}

// Lines flattens the view into display lines without styling.
func (v ResultView) Lines() []string {
	var out []string
	switch v.Kind {
	case ViewError:
		out = append(out, "! "+v.Headline)
	case ViewNotFound:
		out = append(out, "✗ "+v.Headline)
	case ViewDisclosed, ViewRestricted:
		out = append(out, "✓ "+v.Headline)
		for _, r := range v.Rows {
			out = append(out, r.String())
		}
		if v.Notice != "" {
			out = append(out, v.Notice)
		}
	}
	return out
}

// Render maps an outcome to its view. Success bodies are only shown when
// their status is "ok"; data is shown when present, otherwise the
// restricted notice is.
func Render(o domain.Outcome) ResultView {
	switch o.Kind {
	case domain.OutcomeFailure:
		return ResultView{Kind: ViewError, Headline: o.Error}
	case domain.OutcomeNotFound:
		return ResultView{Kind: ViewNotFound, Headline: NotFoundMessage}
	case domain.OutcomeSuccess:
		return renderSuccess(o.Body)
	default:
		return ResultView{}
	}
}

func renderSuccess(body any) ResultView {
	obj, ok := asObject(body)
	if !ok {
		return ResultView{}
	}
	if status, _ := obj.Get("status"); status != "ok" {
		return ResultView{}
	}

	var headline string
	if msg, ok := obj.Get("message"); ok {
		headline = strings.ToUpper(stringify(msg))
	}

	data, _ := obj.Get("data")
	if !truthy(data) {
		return ResultView{Kind: ViewRestricted, Headline: headline, Notice: RestrictedMessage}
	}
	return ResultView{Kind: ViewDisclosed, Headline: headline, Rows: rows(data)}
}

// asObject accepts the top-level ordered map and the values nested in it.
func asObject(v any) (*orderedmap.OrderedMap, bool) {
	switch t := v.(type) {
	case *orderedmap.OrderedMap:
		return t, t != nil
	case orderedmap.OrderedMap:
		return &t, true
	default:
		return nil, false
	}
}

func rows(data any) []Row {
	if obj, ok := asObject(data); ok {
		keys := obj.Keys()
		out := make([]Row, 0, len(keys))
		for _, k := range keys {
			v, _ := obj.Get(k)
			out = append(out, Row{Label: FieldLabel(k), Value: FormatValue(v)})
		}
		return out
	}
	switch d := data.(type) {
	case []any:
		out := make([]Row, 0, len(d))
		for i, v := range d {
			out = append(out, Row{Label: strconv.Itoa(i), Value: FormatValue(v)})
		}
		return out
	default:
		return nil
	}
}

// FieldLabel turns a record key into its row label: underscores become
// spaces and the result is uppercased.
func FieldLabel(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "_", " "))
}

var printer = message.NewPrinter(language.English)

// FormatValue renders a decoded JSON value for a result row. Numbers are
// grouped with at most three fraction digits.
func FormatValue(v any) string {
	switch t := v.(type) {
	case float64:
		return printer.Sprint(number.Decimal(t, number.MaxFractionDigits(3)))
	default:
		return stringify(v)
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case *orderedmap.OrderedMap, orderedmap.OrderedMap, map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// truthy follows the presence test applied to "data": null, false, zero and
// the empty string count as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
