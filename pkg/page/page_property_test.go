package page

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPayloadProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("embedded form decodes to an equal payload", prop.ForAll(
		func(component, url, key, value string) bool {
			p := &Page{Component: component, Props: Props{key: value}, URL: url}
			encoded, err := Encode(p)
			if err != nil {
				return false
			}
			got, err := Decode(encoded)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(got, p)
		},
		gen.Identifier(),
		gen.AnyString(),
		gen.AlphaString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
