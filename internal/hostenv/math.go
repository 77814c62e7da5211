package hostenv

import (
	"fmt"
	"math"

	"github.com/profiles/metaes/internal/interp"
)

func newMathObject() interp.Value {
	m := interp.NewRecord()
	m.SetProperty(interp.String("PI"), interp.Number(math.Pi))
	m.SetProperty(interp.String("E"), interp.Number(math.E))

	unary := func(name string, fn func(float64) float64) {
		m.SetProperty(interp.String(name), interp.NewHostFunc("Math."+name, func(this interp.Value, args []interp.Value) (interp.Value, error) {
			if len(args) == 0 {
				return interp.Number(math.NaN()), nil
			}
			return interp.Number(fn(interp.ToNumber(args[0]))), nil
		}))
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("sqrt", math.Sqrt)
	unary("trunc", math.Trunc)

	m.SetProperty(interp.String("pow"), interp.NewHostFunc("Math.pow", func(this interp.Value, args []interp.Value) (interp.Value, error) {
		if len(args) < 2 {
			return interp.Value{}, fmt.Errorf("Math.pow expects 2 arguments")
		}
		return interp.Number(math.Pow(interp.ToNumber(args[0]), interp.ToNumber(args[1]))), nil
	}))

	m.SetProperty(interp.String("max"), interp.NewHostFunc("Math.max", func(this interp.Value, args []interp.Value) (interp.Value, error) {
		return interp.Number(reduceNumbers(args, math.Inf(-1), math.Max)), nil
	}))
	m.SetProperty(interp.String("min"), interp.NewHostFunc("Math.min", func(this interp.Value, args []interp.Value) (interp.Value, error) {
		return interp.Number(reduceNumbers(args, math.Inf(1), math.Min)), nil
	}))

	return interp.FromHost(m)
}

func reduceNumbers(args []interp.Value, seed float64, combine func(a, b float64) float64) float64 {
	acc := seed
	for _, a := range args {
		acc = combine(acc, interp.ToNumber(a))
	}
	return acc
}
