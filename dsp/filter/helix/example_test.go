package helix_test

import (
	"fmt"

	"github.com/cwbudde/algo-helix/dsp/filter/helix"
	"github.com/cwbudde/algo-helix/dsp/grid"
)

func ExampleFilter_ApplyInverse() {
	// The inverse of (1, -0.5) is the all-pole recursion with geometric
	// impulse response.
	f, _ := helix.New([]int{0, 1}, []float64{1, -0.5})

	x := grid.FromSlice([]float64{1, 0, 0, 0})
	y := grid.Zeros(4)
	if err := f.ApplyInverse(y, x); err != nil {
		panic(err)
	}
	fmt.Println(y.Data())
	// Output: [1 0.5 0.25 0.125]
}

func ExampleFactor() {
	// A white-noise autocorrelation factors to the identity filter.
	r := []float64{0, 0, 1, 0, 0}
	f, err := helix.Factor(r, []int{0, 1, 2})
	if err != nil {
		panic(err)
	}
	fmt.Println(f.Coefficients())
	// Output: [1 0 0]
}

func ExampleFilter_Apply() {
	f, _ := helix.New2([]int{0, 1, -1}, []int{0, 0, 1}, []float64{1, -0.4, 0.2})

	x := grid.Zeros2(4, 3)
	x.Set2(1, 1, 1)
	y := grid.Zeros2(4, 3)
	if err := f.Apply(y, x); err != nil {
		panic(err)
	}
	for i2 := 0; i2 < 3; i2++ {
		for i1 := 0; i1 < 4; i1++ {
			fmt.Printf("%5.1f", y.At2(i1, i2))
		}
		fmt.Println()
	}
	// Output:
	//   0.0  0.0  0.0  0.0
	//   0.0  1.0 -0.4  0.0
	//   0.2  0.0  0.0  0.0
}
