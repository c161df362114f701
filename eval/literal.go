package eval

import (
	"math"
	"math/big"

	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
	"github.com/xenharmonic-devs/sonic-weave-sub001/monzo"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rational"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

// fractionMonzo factors num/den exactly against root's prime basis,
// charging one gas unit for every trial division spent; there is no free
// base amount of trials.
func fractionMonzo(root *rootctx.RootContext, num, den int64) (monzo.TimeMonzo, error) {
	m, trials := monzo.FromBigRat(big.NewInt(num), big.NewInt(den), root.Primes(), int(root.Remaining()), rational.Zero)
	if err := root.Spend(int64(trials)); err != nil {
		return monzo.TimeMonzo{}, err
	}
	return m.WithComponents(root.NumComponents(), root.Primes()), nil
}

func evalLiteral(root *rootctx.RootContext, n ast.Node) (value.Interval, error) {
	switch lit := n.(type) {
	case ast.IntegerLiteral:
		m, err := fractionMonzo(root, lit.Value, 1)
		if err != nil {
			return value.Interval{}, err
		}
		iv := value.FromMonzo(m)
		iv.Node = value.Node{Kind: value.NodeFraction, Num: lit.Value, Den: 1}
		return iv, nil

	case ast.DecimalLiteral:
		iv := value.FromReal(monzo.TimeReal{Value: lit.Value})
		return iv, nil

	case ast.FractionLiteral:
		if lit.Den == 0 {
			return value.Interval{}, sweerr.NewValueError("division by zero in fraction literal")
		}
		m, err := fractionMonzo(root, lit.Num, lit.Den)
		if err != nil {
			return value.Interval{}, err
		}
		iv := value.FromMonzo(m)
		iv.Node = value.Node{Kind: value.NodeFraction, Num: lit.Num, Den: lit.Den}
		return iv, nil

	case ast.CentsLiteral:
		iv := value.FromReal(monzo.TimeReal{Value: math.Pow(2, lit.Value/1200)})
		iv.Domain = value.Logarithmic
		iv.Node = value.Node{Kind: value.NodeCents, Cents: lit.Value}
		return iv, nil

	case ast.MonzoLiteral:
		m := monzo.Unity(root.NumComponents())
		for i, e := range lit.Exponents {
			if i < len(m.PrimeExponents) {
				m.PrimeExponents[i] = e
			}
		}
		iv := value.FromMonzo(m)
		iv.Node = value.Node{Kind: value.NodeMonzoLiteral}
		return iv, nil

	case ast.NedjiLiteral:
		equaveNum, equaveDen := int64(2), int64(1)
		if lit.Equave != nil {
			equaveNum, equaveDen = lit.Equave.Num, lit.Equave.Den
		}
		equave, err := fractionMonzo(root, equaveNum, equaveDen)
		if err != nil {
			return value.Interval{}, err
		}
		if lit.B == 0 {
			return value.Interval{}, sweerr.NewValueError("nedji literal has zero divisions")
		}
		p, err := monzo.PowRational(equave, rational.New(lit.A, lit.B))
		if err != nil {
			ef := float64(lit.A) / float64(lit.B)
			iv := value.FromReal(monzo.PowReal(monzo.FromMonzo(equave), ef))
			iv.Domain = value.Logarithmic
			iv.Steps = lit.A
			iv.Node = value.Node{Kind: value.NodeNedji, NedjiA: lit.A, NedjiB: lit.B}
			return iv, nil
		}
		iv := value.FromMonzo(p)
		iv.Domain = value.Logarithmic
		iv.Steps = lit.A
		iv.Node = value.Node{Kind: value.NodeNedji, NedjiA: lit.A, NedjiB: lit.B}
		return iv, nil

	case ast.RadicalLiteral:
		radicand, err := fractionMonzo(root, lit.Radicand.Num, lit.Radicand.Den)
		if err != nil {
			return value.Interval{}, err
		}
		if lit.Degree == 0 {
			return value.Interval{}, sweerr.NewValueError("radical literal has zero degree")
		}
		p, err := monzo.PowRational(radicand, rational.New(1, lit.Degree))
		if err != nil {
			ef := 1 / float64(lit.Degree)
			iv := value.FromReal(monzo.PowReal(monzo.FromMonzo(radicand), ef))
			iv.Node = value.Node{Kind: value.NodeRadical}
			return iv, nil
		}
		iv := value.FromMonzo(p)
		iv.Node = value.Node{Kind: value.NodeRadical}
		return iv, nil

	case ast.Pythagorean:
		m, err := pythagoreanMonzo(root, lit)
		if err != nil {
			return value.Interval{}, err
		}
		return value.FromMonzo(m), nil

	case ast.FJS:
		base, err := pythagoreanMonzo(root, lit.Base)
		if err != nil {
			return value.Interval{}, err
		}
		m, err := applyFJSAccidentals(root, base, lit.Accidentals)
		if err != nil {
			return value.Interval{}, err
		}
		return value.FromMonzo(m), nil

	case ast.AbsoluteFJS:
		m, err := absoluteFJSMonzo(root, lit)
		if err != nil {
			return value.Interval{}, err
		}
		iv := value.FromMonzo(m)
		iv.Echelon = value.Absolute
		return iv, nil

	case ast.MOSLiteral:
		m, err := root.MOS().Resolve(lit.Degree)
		if err != nil {
			return value.Interval{}, err
		}
		if lit.Accidentals != 0 {
			mos := root.MOS()
			chroma, err := monzo.Div(mos.LargeSize, mos.SmallSize)
			if err != nil {
				return value.Interval{}, err
			}
			pw, err := monzo.PowRational(chroma, rational.FromInt(int64(lit.Accidentals)))
			if err != nil {
				return value.Interval{}, err
			}
			m = monzo.Mul(m, pw)
		}
		return value.FromMonzo(m), nil

	default:
		return value.Interval{}, sweerr.NewTypeError("not a literal node")
	}
}

// pythagoreanFifths maps a generic interval number + quality to a signed
// count of perfect fifths, the standard three-limit (2.3) Pythagorean
// spelling (e.g. P5 = +1 fifth, P1 = 0, P4 = -1 fifth, M2 = +2 fifths,
// m7 = -2 fifths). Augmented/diminished shift by 7 fifths per degree of
// alteration, matching FJS's convention. A compound degree shares its simple
// degree's count; pythagoreanMonzo supplies the octaves.
func pythagoreanFifths(degree int, quality string) (int, error) {
	base := map[int]int{1: 0, 2: 2, 3: 4, 4: -1, 5: 1, 6: 3, 7: 5}
	mod := ((degree - 1) % 7) + 1
	if mod <= 0 {
		mod += 7
	}
	fifths, ok := base[mod]
	if !ok {
		return 0, sweerr.NewValueError("invalid Pythagorean degree %d", degree)
	}
	switch {
	case quality == "P" || quality == "M" || quality == "m":
		if quality == "m" {
			fifths -= 7
		}
	case len(quality) > 0 && quality[0] == 'A':
		fifths += 7 * len(quality)
	case len(quality) > 0 && quality[0] == 'd':
		fifths -= 7 * len(quality)
		if mod != 1 && mod != 4 && mod != 5 {
			// an imperfect degree's diminished form lies below its minor one
			fifths -= 7
		}
	default:
		return 0, sweerr.NewValueError("unrecognized Pythagorean quality %q", quality)
	}
	return fifths, nil
}

func pythagoreanMonzo(root *rootctx.RootContext, p ast.Pythagorean) (monzo.TimeMonzo, error) {
	fifths, err := pythagoreanFifths(p.Degree, p.Quality)
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	three, err := fractionMonzo(root, 3, 1)
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	two, err := fractionMonzo(root, 2, 1)
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	fifth, err := monzo.Div(three, two)
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	m, err := monzo.PowRational(fifth, rational.FromInt(int64(fifths)))
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	// each fifth spans four diatonic steps; octaves make up the rest of the
	// degree's steps
	octaves := (p.Degree-1-4*fifths)/7 + p.Octave
	if octaves != 0 {
		oct, err := monzo.PowRational(two, rational.FromInt(int64(octaves)))
		if err != nil {
			return monzo.TimeMonzo{}, err
		}
		m = monzo.Mul(m, oct)
	}
	return m, nil
}

// fjsCommas gives the FJS formal comma for each prime beyond 3, expressed
// as the comma's own prime-limit monzo generator (spec-neutral: FJS fixes
// one canonical comma per prime so that otonal/utonal accidentals cancel
// the Pythagorean approximation's error against the prime's just value).
var fjsCommaRatio = map[int64][2]int64{
	5:  {80, 81},
	7:  {63, 64},
	11: {33, 32},
	13: {1053, 1024},
	17: {4131, 4096},
	19: {513, 512},
	23: {736, 729},
}

func applyFJSAccidentals(root *rootctx.RootContext, base monzo.TimeMonzo, accs []ast.Accidental) (monzo.TimeMonzo, error) {
	m := base
	for _, a := range accs {
		ratio, ok := fjsCommaRatio[a.Prime]
		if !ok {
			return monzo.TimeMonzo{}, sweerr.NewValueError("no FJS comma known for prime %d", a.Prime)
		}
		comma, err := fractionMonzo(root, ratio[0], ratio[1])
		if err != nil {
			return monzo.TimeMonzo{}, err
		}
		if !a.Super {
			comma, err = monzo.Inv(comma)
			if err != nil {
				return monzo.TimeMonzo{}, err
			}
		}
		pw, err := monzo.PowRational(comma, rational.FromInt(int64(a.Count)))
		if err != nil {
			return monzo.TimeMonzo{}, err
		}
		m = monzo.Mul(m, pw)
	}
	return m, nil
}

var nominalFifths = map[byte]int{'F': -1, 'C': 0, 'G': 1, 'D': 2, 'A': 3, 'E': 4, 'B': 5}

func absoluteFJSMonzo(root *rootctx.RootContext, a ast.AbsoluteFJS) (monzo.TimeMonzo, error) {
	fifths, ok := nominalFifths[a.Nominal]
	if !ok {
		return monzo.TimeMonzo{}, sweerr.NewValueError("unrecognized note nominal %q", string(a.Nominal))
	}
	fifths += 7 * a.Sharps
	three, err := fractionMonzo(root, 3, 1)
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	two, err := fractionMonzo(root, 2, 1)
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	fifth, err := monzo.Div(three, two)
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	m, err := monzo.PowRational(fifth, rational.FromInt(int64(fifths)))
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	steps := map[byte]int{'C': 0, 'D': 1, 'E': 2, 'F': 3, 'G': 4, 'A': 5, 'B': 6}[a.Nominal]
	octaves := (steps-4*fifths)/7 + a.Octave - 4
	oct, err := monzo.PowRational(two, rational.FromInt(int64(octaves)))
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	m = monzo.Mul(m, oct)
	m, err = applyFJSAccidentals(root, m, a.Accidentals)
	if err != nil {
		return monzo.TimeMonzo{}, err
	}
	m = monzo.Mul(m, root.C4())
	return m, nil
}
