package hostenv

import (
	"encoding/json"
	"fmt"

	"github.com/profiles/metaes/internal/interp"
)

func newJSONObject() interp.Value {
	j := interp.NewRecord()
	j.SetProperty(interp.String("stringify"), interp.NewHostFunc("JSON.stringify", func(this interp.Value, args []interp.Value) (interp.Value, error) {
		if len(args) == 0 {
			return interp.Undefined(), nil
		}
		raw, err := json.Marshal(toPlain(args[0]))
		if err != nil {
			return interp.Value{}, fmt.Errorf("JSON.stringify: %w", err)
		}
		return interp.String(string(raw)), nil
	}))
	j.SetProperty(interp.String("parse"), interp.NewHostFunc("JSON.parse", func(this interp.Value, args []interp.Value) (interp.Value, error) {
		if len(args) == 0 {
			return interp.Value{}, fmt.Errorf("JSON.parse expects a string argument")
		}
		var decoded interface{}
		if err := json.Unmarshal([]byte(interp.ToDisplayString(args[0])), &decoded); err != nil {
			return interp.Value{}, fmt.Errorf("JSON.parse: %w", err)
		}
		return fromPlain(decoded), nil
	}))
	return interp.FromHost(j)
}

// toPlain converts an interpreted Value into plain Go data so
// encoding/json can marshal it.
func toPlain(v interp.Value) interface{} {
	switch v.Kind() {
	case interp.KindUndefined:
		return nil
	case interp.KindNull:
		return nil
	case interp.KindBoolean:
		return v.AsBool()
	case interp.KindNumber:
		return v.AsNumber()
	case interp.KindString:
		return v.AsString()
	case interp.KindHostObject:
		switch host := v.AsHost().(type) {
		case *interp.Array:
			out := make([]interface{}, len(host.Elements))
			for i, el := range host.Elements {
				out[i] = toPlain(el)
			}
			return out
		case *interp.Record:
			out := map[string]interface{}{}
			for _, k := range host.Keys() {
				el, _ := host.GetProperty(interp.String(k))
				out[k] = toPlain(el)
			}
			return out
		default:
			return host.TypeName()
		}
	default:
		return nil
	}
}

// fromPlain is toPlain's inverse, rebuilding interpreted Values (and
// Array/Record host objects) from decoded JSON data.
func fromPlain(data interface{}) interp.Value {
	switch d := data.(type) {
	case nil:
		return interp.Null()
	case bool:
		return interp.Bool(d)
	case float64:
		return interp.Number(d)
	case string:
		return interp.String(d)
	case []interface{}:
		items := make([]interp.Value, len(d))
		for i, el := range d {
			items[i] = fromPlain(el)
		}
		return interp.NewArray(items)
	case map[string]interface{}:
		rec := interp.NewRecord()
		for k, el := range d {
			rec.SetProperty(interp.String(k), fromPlain(el))
		}
		return interp.FromHost(rec)
	default:
		return interp.Undefined()
	}
}
