package lesson

import "math"

// Hypotenuse returns the length of the side opposite the right angle.
func Hypotenuse(a, b float64) float64 { return math.Hypot(a, b) }

// Label turns a slider position into the length shown to the student, two
// decimals on a scale where 50 points make one unit.
func Label(v float64) float64 { return math.Round(v*2) / 100 }

// SquareArea is the area of a square of side s.
func SquareArea(s float64) float64 { return s * s }

// RightTriangleArea is the area of a right triangle with legs a and b.
func RightTriangleArea(a, b float64) float64 { return a * b / 2 }

// Verify checks a² + b² = c² for the triangle with legs a and b.
func Verify(a, b float64) bool {
	c := Hypotenuse(a, b)
	return nearlyEqual(SquareArea(c), SquareArea(a)+SquareArea(b))
}

// ProofHolds checks the area argument of the proof: the big square of side
// a+b is the red square plus four copies of the triangle.
func ProofHolds(a, b float64) bool {
	c := Hypotenuse(a, b)
	return nearlyEqual(SquareArea(a+b), SquareArea(c)+4*RightTriangleArea(a, b))
}

func nearlyEqual(x, y float64) bool {
	scale := math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
	return math.Abs(x-y) <= 1e-9*scale
}
