package grid_test

import (
	"fmt"

	"github.com/cwbudde/algo-helix/dsp/grid"
)

func ExampleCopyCentered() {
	dst := grid.Zeros(7)
	src := grid.FromSlice([]float64{1, 2, 3})
	if err := grid.CopyCentered(dst, src); err != nil {
		panic(err)
	}
	fmt.Println(dst.Data())
	// Output: [0 0 1 2 3 0 0]
}

func ExampleMinMax() {
	min, max := grid.MinMax([]int{0, 1, -1, 3})
	fmt.Println(min, max)
	// Output: -1 3
}
